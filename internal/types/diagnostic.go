package types

import "fmt"

// Diagnostic is a lexical problem found while tokenizing.
type Diagnostic struct {
	Span    Span
	Message string
}

// String returns "offset: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s", d.Span.Start, d.Message)
}

// LineCol converts a byte offset into a 1-based line and column.
// Offsets past the end of source clamp to the position after the last byte.
func LineCol(source []byte, offset ByteOffset) (line, col int) {
	end := min(int(offset), len(source))
	line, col = 1, 1
	for i := 0; i < end; i++ {
		switch source[i] {
		case '\n':
			line++
			col = 1
		case '\r':
			if i+1 < len(source) && source[i+1] == '\n' {
				continue
			}
			line++
			col = 1
		default:
			col++
		}
	}
	return line, col
}
