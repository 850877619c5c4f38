package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLiteral is returned when text is not a well-formed literal of
// the requested kind.
var ErrInvalidLiteral = errors.New("invalid literal")

func invalid(kind, s string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidLiteral, kind, s)
}

// scanDigits returns the index after the run of ASCII digits starting at pos.
func scanDigits(s string, pos int) int {
	for pos < len(s) && isDigit(s[pos]) {
		pos++
	}
	return pos
}

// scanSign returns the index after an optional '+' or '-' at pos.
func scanSign(s string, pos int) int {
	if pos < len(s) && (s[pos] == '+' || s[pos] == '-') {
		return pos + 1
	}
	return pos
}

// ScanExactNumericLiteral matches digits? ('.' digits?)? at pos, requiring at
// least one digit in the integer or fraction part. Returns the end index.
func ScanExactNumericLiteral(s string, pos int) (int, bool) {
	intEnd := scanDigits(s, pos)
	end := intEnd
	fracDigits := 0
	if end < len(s) && s[end] == '.' {
		fracEnd := scanDigits(s, end+1)
		fracDigits = fracEnd - (end + 1)
		if intEnd > pos || fracDigits > 0 {
			end = fracEnd
		}
	}
	if intEnd == pos && fracDigits == 0 {
		return pos, false
	}
	return end, true
}

// ScanApproximateNumericLiteral matches an exact numeric literal followed by
// an optional exponent ('e' | 'E') signed_integer. An exponent marker with no
// digits after it is not consumed.
func ScanApproximateNumericLiteral(s string, pos int) (int, bool) {
	end, ok := ScanExactNumericLiteral(s, pos)
	if !ok {
		return pos, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		digitsStart := scanSign(s, end+1)
		if digitsEnd := scanDigits(s, digitsStart); digitsEnd > digitsStart {
			end = digitsEnd
		}
	}
	return end, true
}

// ScanSignedNumericLiteral matches an optional sign followed by an exact or
// approximate numeric literal. Surrounding whitespace is not consumed.
func ScanSignedNumericLiteral(s string, pos int) (int, bool) {
	end, ok := ScanApproximateNumericLiteral(s, scanSign(s, pos))
	if !ok {
		return pos, false
	}
	return end, true
}

// ParseUnsignedInteger parses one or more decimal digits.
func ParseUnsignedInteger(s string) (uint64, error) {
	if s == "" || scanDigits(s, 0) != len(s) {
		return 0, invalid("unsigned integer", s)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unsigned integer %q: %v", ErrInvalidLiteral, s, err)
	}
	return v, nil
}

// ParseSignedInteger parses an optional sign followed by unsigned digits.
// The sign prefixes the digit string before conversion, so "-0" is 0.
func ParseSignedInteger(s string) (int64, error) {
	digits := scanSign(s, 0)
	if digits == len(s) || scanDigits(s, digits) != len(s) {
		return 0, invalid("signed integer", s)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: signed integer %q: %v", ErrInvalidLiteral, s, err)
	}
	return v, nil
}

// ParseExactNumericLiteral parses digits? ('.' digits?)? with at least one
// digit present. The integer and fraction digits are combined as a decimal
// before conversion, so the result is the float64 nearest the exact decimal.
func ParseExactNumericLiteral(s string) (float64, error) {
	end, ok := ScanExactNumericLiteral(s, 0)
	if !ok || end != len(s) {
		return 0, invalid("exact numeric literal", s)
	}
	return decimalValue(s, "")
}

// ParseApproximateNumericLiteral parses an exact numeric literal mantissa
// with an optional exponent and returns mantissa * 10^exponent.
func ParseApproximateNumericLiteral(s string) (float64, error) {
	end, ok := ScanApproximateNumericLiteral(s, 0)
	if !ok || end != len(s) {
		return 0, invalid("approximate numeric literal", s)
	}
	mantissa, exponent := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exponent = s[:i], s[i+1:]
	}
	return decimalValue(mantissa, exponent)
}

// ParseSignedNumericLiteral parses an optional sign followed by an exact or
// approximate numeric literal. Leading and trailing whitespace is ignored.
func ParseSignedNumericLiteral(s string) (float64, error) {
	t := strings.Trim(s, " \t\r\n")
	body := scanSign(t, 0)
	v, err := ParseApproximateNumericLiteral(t[body:])
	if err != nil {
		return 0, invalid("signed numeric literal", s)
	}
	if body > 0 && t[0] == '-' {
		v = -v
	}
	return v, nil
}

// ParseQuotedName parses a double-quoted run of non-quote characters and
// returns the run verbatim. No escape processing is done.
func ParseQuotedName(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", invalid("quoted name", s)
	}
	inner := s[1 : len(s)-1]
	if strings.IndexByte(inner, '"') >= 0 {
		return "", invalid("quoted name", s)
	}
	return inner, nil
}

// decimalValue converts a validated mantissa and optional signed exponent.
func decimalValue(mantissa, exponent string) (float64, error) {
	intPart, fracPart, _ := strings.Cut(mantissa, ".")
	if intPart == "" {
		intPart = "0"
	}
	if fracPart == "" {
		fracPart = "0"
	}
	text := intPart + "." + fracPart
	if exponent != "" {
		text += "e" + exponent
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: numeric literal %q out of range", ErrInvalidLiteral, mantissa)
	}
	return v, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentStart(b byte) bool {
	return isAlpha(b) || b == '_'
}

func isIdentPart(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '_'
}
