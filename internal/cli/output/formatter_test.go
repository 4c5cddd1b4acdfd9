package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tidwall/resp"
)

// parse decodes a single wire reply.
func parse(t *testing.T, wire string) resp.Value {
	t.Helper()
	v, _, err := resp.NewReader(strings.NewReader(wire)).ReadValue()
	if err != nil {
		t.Fatalf("ReadValue(%q): %v", wire, err)
	}
	return v
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		wire string
		want string
	}{
		{"status", "+OK\r\n", "OK"},
		{"bulk", "$7\r\nmyvalue\r\n", `"myvalue"`},
		{"bulk with quote", "$3\r\na\"b\r\n", `"a\"b"`},
		{"empty bulk", "$0\r\n\r\n", `""`},
		{"null bulk", "$-1\r\n", "(nil)"},
		{"error", "-ERR unknown command 'DEL'\r\n", "(error) ERR unknown command 'DEL'"},
		{"integer", ":42\r\n", "(integer) 42"},
		{"empty array", "*0\r\n", "(empty array)"},
		{"array", "*2\r\n$1\r\na\r\n$-1\r\n", "1) \"a\"\n2) (nil)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(parse(t, tt.wire)); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatText).Format(&buf, parse(t, "$-1\r\n")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "(nil)\n" {
		t.Errorf("output = %q, want %q", buf.String(), "(nil)\n")
	}
}

func TestJSONFormatter(t *testing.T) {
	tests := []struct {
		name      string
		wire      string
		wantType  string
		wantValue *string
	}{
		{"status", "+OK\r\n", "status", ptr("OK")},
		{"bulk", "$1\r\nv\r\n", "bulk", ptr("v")},
		{"null", "$-1\r\n", "bulk", nil},
		{"error", "-ERR boom\r\n", "error", ptr("ERR boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewFormatter(FormatJSON).Format(&buf, parse(t, tt.wire)); err != nil {
				t.Fatal(err)
			}
			var got Reply
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("unmarshal %q: %v", buf.String(), err)
			}
			if got.Type != tt.wantType {
				t.Errorf("type = %q, want %q", got.Type, tt.wantType)
			}
			switch {
			case tt.wantValue == nil && got.Value != nil:
				t.Errorf("value = %q, want null", *got.Value)
			case tt.wantValue != nil && (got.Value == nil || *got.Value != *tt.wantValue):
				t.Errorf("value = %v, want %q", got.Value, *tt.wantValue)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"table", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsError(t *testing.T) {
	if !IsError(parse(t, "-ERR x\r\n")) {
		t.Error("IsError(-ERR) = false")
	}
	if IsError(parse(t, "+OK\r\n")) {
		t.Error("IsError(+OK) = true")
	}
}

func ptr(s string) *string { return &s }
