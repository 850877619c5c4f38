package parser

import (
	"fmt"
	"strings"
)

// Failure describes why a parse did not succeed: the furthest byte
// offset any alternative reached and what was expected there.
type Failure struct {
	Offset   int
	Expected []string
	// Found describes the token at Offset.
	Found string
	// Message is set for lexical errors such as an unterminated name.
	Message string
}

// Error renders the failure without position information.
func (f *Failure) Error() string {
	var b strings.Builder
	if f.Message != "" {
		b.WriteString(f.Message)
		b.WriteString(": ")
	}
	if len(f.Expected) > 0 {
		b.WriteString("expected ")
		b.WriteString(JoinExpected(f.Expected))
		b.WriteString(", ")
	}
	fmt.Fprintf(&b, "found %s", f.Found)
	return b.String()
}

// JoinExpected renders a list as "a", "a or b" and "a, b or c".
func JoinExpected(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
