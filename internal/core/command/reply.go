package command

import "strconv"

const crlf = "\r\n"

// OK is the reply for a successful command with no value.
var OK = SimpleString("OK")

// SimpleString formats a status reply: +<s>\r\n.
func SimpleString(s string) string {
	return "+" + s + crlf
}

// Error formats an error reply: -<msg>\r\n.
func Error(msg string) string {
	return "-" + msg + crlf
}

// NullBulk is the reply for a missing key.
func NullBulk() string {
	return "$-1" + crlf
}

// Bulk formats a length-prefixed reply. The length is in bytes.
func Bulk(s string) string {
	return "$" + strconv.Itoa(len(s)) + crlf + s + crlf
}

func wrongArity(name string) string {
	return Error("ERR wrong number of arguments for '" + name + "' command")
}
