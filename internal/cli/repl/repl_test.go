package repl

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/resp"
)

// fakeExec replies from a fixed table of wire replies keyed by line.
type fakeExec struct {
	replies map[string]string
	lines   []string
	err     error
}

func (f *fakeExec) DoLine(ctx context.Context, line string) (resp.Value, error) {
	f.lines = append(f.lines, line)
	if f.err != nil {
		return resp.Value{}, f.err
	}
	wire, ok := f.replies[line]
	if !ok {
		wire = "-ERR unknown command\r\n"
	}
	v, _, err := resp.NewReader(strings.NewReader(wire)).ReadValue()
	return v, err
}

func newTestREPL(exec Executor, input string, out *bytes.Buffer) *REPL {
	return New(exec,
		WithIO(strings.NewReader(input), out),
		WithHistory(NewFileHistory("")),
		WithPrompt("test"),
		WithCommands([]string{"GET", "SET"}),
	)
}

func TestREPL_Run_Exit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exit command", "exit\n"},
		{"quit command", "QUIT\n"},
		{"EOF", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExec{}
			out := &bytes.Buffer{}
			if err := newTestREPL(exec, tt.input, out).Run(context.Background()); err != nil {
				t.Errorf("Run() returned error: %v", err)
			}
			if len(exec.lines) != 0 {
				t.Errorf("executor called with %v, want nothing", exec.lines)
			}
		})
	}
}

func TestREPL_Run_Commands(t *testing.T) {
	exec := &fakeExec{replies: map[string]string{
		"SET k v": "+OK\r\n",
		"GET k":   "$1\r\nv\r\n",
		"GET x":   "$-1\r\n",
		"DEL k":   "-ERR unknown command 'DEL'\r\n",
	}}
	out := &bytes.Buffer{}

	input := "SET k v\n\n  GET k  \nGET x\nDEL k\nexit\n"
	if err := newTestREPL(exec, input, out).Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	wantLines := []string{"SET k v", "GET k", "GET x", "DEL k"}
	if strings.Join(exec.lines, "|") != strings.Join(wantLines, "|") {
		t.Errorf("sent %q, want %q", exec.lines, wantLines)
	}

	for _, want := range []string{"test> ", "OK\n", "\"v\"\n", "(nil)\n", "(error) ERR unknown command 'DEL'\n"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestREPL_Run_Help(t *testing.T) {
	exec := &fakeExec{}
	out := &bytes.Buffer{}

	if err := newTestREPL(exec, "help\nexit\n", out).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Server commands: GET, SET") {
		t.Errorf("help output = %q", out.String())
	}
	if len(exec.lines) != 0 {
		t.Errorf("help was sent to the server: %v", exec.lines)
	}
}

func TestREPL_Run_TransportError(t *testing.T) {
	boom := errors.New("connection reset")
	exec := &fakeExec{err: boom}
	out := &bytes.Buffer{}

	err := newTestREPL(exec, "GET k\nGET j\n", out).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("Run() = %v, want %v", err, boom)
	}
	if len(exec.lines) != 1 {
		t.Errorf("sent %d lines after failure, want 1", len(exec.lines))
	}
}

func TestREPL_Run_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	if err := newTestREPL(exec, "GET k\n", &bytes.Buffer{}).Run(ctx); err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
	if len(exec.lines) != 0 {
		t.Errorf("sent %v after cancel", exec.lines)
	}
}

func TestREPL_Run_SavesHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	exec := &fakeExec{replies: map[string]string{"GET k": "$-1\r\n"}}

	r := New(exec,
		WithIO(strings.NewReader("GET k\nexit\n"), &bytes.Buffer{}),
		WithHistory(NewFileHistory(path)),
	)
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	h := NewFileHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}
	if h.Len() != 2 || h.Get(0) != "exit" || h.Get(1) != "GET k" {
		t.Errorf("history = %d entries, latest %q", h.Len(), h.Get(0))
	}
}
