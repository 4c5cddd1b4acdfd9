package command

import (
	"strings"
	"unicode/utf8"
)

// ParseRequest tokenizes one request into a command name and arguments.
//
// Invalid UTF-8 is replaced rather than rejected, one U+FFFD for each
// maximal ill-formed subsequence. The first whitespace-separated token is
// uppercased to form the name; the rest are returned in their original
// case. An empty or blank request yields an empty name and no arguments.
func ParseRequest(b []byte) (string, []string) {
	parts := strings.Fields(decodeLossy(b))
	if len(parts) == 0 {
		return "", nil
	}
	return strings.ToUpper(parts[0]), parts[1:]
}

// decodeLossy converts b to a valid UTF-8 string. Each ill-formed
// subsequence becomes a single U+FFFD, so "\xff\xfe" yields two
// replacements while a truncated "\xe2\x82" yields one.
func decodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b) + 8)
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r != utf8.RuneError || size > 1 {
			sb.Write(b[i : i+size])
			i += size
			continue
		}
		sb.WriteRune(utf8.RuneError)
		i += invalidPrefixLen(b[i:])
	}
	return sb.String()
}

// invalidPrefixLen returns the length of the maximal ill-formed
// subsequence at the start of b: a lead byte plus the continuation bytes
// that could still have completed it.
func invalidPrefixLen(b []byte) int {
	need, lo, hi := 0, byte(0x80), byte(0xBF)
	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c == 0xED:
		need, hi = 2, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 2
	case c == 0xF0:
		need, lo = 3, 0x90
	case c == 0xF4:
		need, hi = 3, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	default:
		return 1
	}

	n := 1
	for ; n <= need && n < len(b); n++ {
		if b[n] < lo || b[n] > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return n
}

// Execute runs the command registered under name with args against store
// and returns the reply.
//
// For an unregistered name the reply echoes name exactly as passed in.
// On the transport path ParseRequest has already uppercased it.
func Execute(name string, args []string, store Store, reg *Registry) string {
	c, ok := reg.Lookup(name)
	if !ok {
		return Error("ERR unknown command '" + name + "'")
	}
	return c.Execute(args, store)
}
