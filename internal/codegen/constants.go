// Package codegen turns a compiled automaton into a standalone Go match
// function, written with jennifer.
package codegen

// Variable names used in generated code
const (
	InputName      = "input"
	CurrentName    = "current"
	NextName       = "next"
	RuneName       = "c"
	AcceptMaskName = "acceptMask"
)

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}
