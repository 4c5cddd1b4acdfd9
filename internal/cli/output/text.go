package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/resp"
)

// TextFormatter renders replies the way redis-cli does.
type TextFormatter struct{}

// Format writes v followed by a newline.
func (f *TextFormatter) Format(w io.Writer, v resp.Value) error {
	_, err := fmt.Fprintln(w, Text(v))
	return err
}

// Text returns the redis-cli rendering of v without a trailing newline.
func Text(v resp.Value) string {
	var b strings.Builder
	writeText(&b, v, "")
	return b.String()
}

func writeText(b *strings.Builder, v resp.Value, indent string) {
	switch v.Type() {
	case resp.SimpleString:
		b.WriteString(v.String())
	case resp.Error:
		b.WriteString("(error) ")
		b.WriteString(v.String())
	case resp.Integer:
		b.WriteString("(integer) ")
		b.WriteString(strconv.Itoa(v.Integer()))
	case resp.BulkString:
		if v.IsNull() {
			b.WriteString("(nil)")
			return
		}
		b.WriteString(strconv.Quote(v.String()))
	case resp.Array:
		if v.IsNull() {
			b.WriteString("(nil)")
			return
		}
		items := v.Array()
		if len(items) == 0 {
			b.WriteString("(empty array)")
			return
		}
		for i, item := range items {
			if i > 0 {
				b.WriteString("\n")
				b.WriteString(indent)
			}
			prefix := strconv.Itoa(i+1) + ") "
			b.WriteString(prefix)
			writeText(b, item, indent+strings.Repeat(" ", len(prefix)))
		}
	default:
		b.WriteString(v.String())
	}
}
