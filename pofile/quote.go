package pofile

import (
	"fmt"
	"strings"
)

// unquote parses a line remainder consisting of one or more
// whitespace-separated double-quoted strings and returns their decoded
// concatenation:
//
//	"Hello, " "world!"  ->  Hello, world!
//
// An empty remainder yields "". Anything other than a run of quoted
// strings is a syntax error. Escape sequences inside the strings are
// decoded; sequences outside the allowed set are rejected.
func unquote(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(s) {
		if s[i] != '"' {
			return "", fmt.Errorf("syntax error: %s", s)
		}
		i++

		closed := false
		for i < len(s) {
			c := s[i]
			if c == '"' {
				i++
				closed = true
				break
			}
			if c != '\\' {
				b.WriteByte(c)
				i++
				continue
			}
			n, err := decodeEscape(&b, s[i:])
			if err != nil {
				return "", err
			}
			i += n
		}
		if !closed {
			return "", fmt.Errorf("syntax error: %s", s)
		}

		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
	}
	return b.String(), nil
}

// decodeEscape decodes one escape sequence at the start of s (which begins
// with the backslash), writes the resulting byte to b, and returns the
// number of input bytes consumed.
//
// The allowed escapes are \n \r \t \\ \" \a \b \f \v, octal \ooo (1-3
// digits) and hex \xHH (one or more digits). Anything else is fatal.
func decodeEscape(b *strings.Builder, s string) (int, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf(`invalid escape sequence: '\'`)
	}
	c := s[1]
	switch c {
	case 'n':
		b.WriteByte('\n')
		return 2, nil
	case 'r':
		b.WriteByte('\r')
		return 2, nil
	case 't':
		b.WriteByte('\t')
		return 2, nil
	case '\\':
		b.WriteByte('\\')
		return 2, nil
	case '"':
		b.WriteByte('"')
		return 2, nil
	case 'a':
		b.WriteByte('\a')
		return 2, nil
	case 'b':
		b.WriteByte('\b')
		return 2, nil
	case 'f':
		b.WriteByte('\f')
		return 2, nil
	case 'v':
		b.WriteByte('\v')
		return 2, nil
	}

	if c >= '0' && c <= '7' {
		val := 0
		n := 1
		for n < len(s) && n < 4 && s[n] >= '0' && s[n] <= '7' {
			val = val<<3 | int(s[n]-'0')
			n++
		}
		b.WriteByte(byte(val))
		return n, nil
	}

	if c == 'x' {
		val := 0
		n := 2
		for n < len(s) && isHexDigit(s[n]) {
			val = val<<4 | hexValue(s[n])
			n++
		}
		if n == 2 {
			bad := `\x`
			if n < len(s) {
				bad += string(s[n])
			}
			return 0, fmt.Errorf("invalid escape sequence: '%s'", bad)
		}
		b.WriteByte(byte(val))
		return n, nil
	}

	return 0, fmt.Errorf(`invalid escape sequence: '\%c'`, c)
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// Quote renders s as a PO-style quoted string, escaping backslashes,
// double quotes, newlines and tabs. It is the inverse of unquote for text
// written with the standard escapes.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return `"` + s + `"`
}
