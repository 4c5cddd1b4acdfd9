package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/resp"

	"github.com/yndnr/memkv/internal/cli/output"
)

// Executor sends one request line and returns the reply.
type Executor interface {
	DoLine(ctx context.Context, line string) (resp.Value, error)
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	exec      Executor
	input     io.Reader
	output    io.Writer
	formatter output.Formatter
	history   *History
	prompt    string
	commands  []string
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO overrides stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithFormatter sets the reply formatter.
func WithFormatter(f output.Formatter) Option {
	return func(r *REPL) { r.formatter = f }
}

// WithHistory sets the history store.
func WithHistory(h *History) Option {
	return func(r *REPL) { r.history = h }
}

// WithPrompt sets the prompt, typically the server address.
func WithPrompt(p string) Option {
	return func(r *REPL) { r.prompt = p }
}

// WithCommands sets the names listed by "help".
func WithCommands(names []string) Option {
	return func(r *REPL) { r.commands = names }
}

// New creates a REPL that sends lines to exec.
func New(exec Executor, opts ...Option) *REPL {
	r := &REPL{
		exec:      exec,
		input:     os.Stdin,
		output:    os.Stdout,
		formatter: output.NewFormatter(output.FormatText),
		history:   NewHistory(),
		prompt:    "memkv",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads lines until EOF, "exit", "quit" or ctx is done.
// Transport errors end the loop; error replies are printed and the loop
// continues.
func (r *REPL) Run(ctx context.Context) error {
	_ = r.history.Load()
	defer r.history.Save()

	scanner := bufio.NewScanner(r.input)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprintf(r.output, "%s> ", r.prompt)

		if !scanner.Scan() {
			fmt.Fprintln(r.output)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		r.history.Add(line)

		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		case "help":
			r.printHelp()
			continue
		}

		v, err := r.exec.DoLine(ctx, line)
		if err != nil {
			return err
		}
		if err := r.formatter.Format(r.output, v); err != nil {
			return err
		}
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.output, "Commands are sent to the server as typed.")
	if len(r.commands) > 0 {
		fmt.Fprintf(r.output, "Server commands: %s\n", strings.Join(r.commands, ", "))
	}
	fmt.Fprintln(r.output, "Local commands: help, exit, quit")
}
