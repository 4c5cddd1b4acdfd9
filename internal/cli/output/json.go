package output

import (
	"encoding/json"
	"io"

	"github.com/tidwall/resp"
)

// JSONFormatter formats replies as one JSON object per line.
type JSONFormatter struct{}

// Reply is the JSON shape of a server reply.
type Reply struct {
	Type  string  `json:"type"`
	Value *string `json:"value"`
	Items []Reply `json:"items,omitempty"`
}

// Format writes v as JSON.
func (f *JSONFormatter) Format(w io.Writer, v resp.Value) error {
	return json.NewEncoder(w).Encode(toReply(v))
}

func toReply(v resp.Value) Reply {
	r := Reply{}
	switch v.Type() {
	case resp.SimpleString:
		r.Type = "status"
	case resp.Error:
		r.Type = "error"
	case resp.Integer:
		r.Type = "integer"
	case resp.BulkString:
		r.Type = "bulk"
	case resp.Array:
		r.Type = "array"
	default:
		r.Type = "unknown"
	}

	if v.IsNull() {
		return r
	}
	if v.Type() == resp.Array {
		for _, item := range v.Array() {
			r.Items = append(r.Items, toReply(item))
		}
		return r
	}
	s := v.String()
	r.Value = &s
	return r
}
