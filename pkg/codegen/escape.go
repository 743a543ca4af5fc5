package codegen

import (
	"fmt"
	"strconv"
	"strings"
)

// unescapeCEscapeString decodes a C-style escaped default-value literal
// into raw bytes. Supported escapes: octal \N, \NN, \NNN, hex \xNN, and
// the named escapes \a \b \f \n \r \t \v \\ \? \' \". Any other escape,
// or a truncated one, is a fatal schema fault.
func unescapeCEscapeString(s string) ([]byte, error) {
	src := []byte(s)
	dst := make([]byte, 0, len(src))

	for p := 0; p < len(src); {
		if src[p] != '\\' {
			dst = append(dst, src[p])
			p++
			continue
		}
		p++
		if p == len(src) {
			return nil, fmt.Errorf("invalid c-escaped default value %q: ends with '\\'", s)
		}
		switch c := src[p]; {
		case c == 'a':
			dst = append(dst, 0x07)
			p++
		case c == 'b':
			dst = append(dst, 0x08)
			p++
		case c == 'f':
			dst = append(dst, 0x0C)
			p++
		case c == 'n':
			dst = append(dst, 0x0A)
			p++
		case c == 'r':
			dst = append(dst, 0x0D)
			p++
		case c == 't':
			dst = append(dst, 0x09)
			p++
		case c == 'v':
			dst = append(dst, 0x0B)
			p++
		case c == '\\':
			dst = append(dst, '\\')
			p++
		case c == '?':
			dst = append(dst, '?')
			p++
		case c == '\'':
			dst = append(dst, '\'')
			p++
		case c == '"':
			dst = append(dst, '"')
			p++
		case c >= '0' && c <= '7':
			octal := byte(0)
			for i := 0; i < 3 && p < len(src) && src[p] >= '0' && src[p] <= '7'; i++ {
				octal = octal*8 + (src[p] - '0')
				p++
			}
			dst = append(dst, octal)
		case c == 'x' || c == 'X':
			if p+2 >= len(src) {
				return nil, fmt.Errorf("invalid c-escaped default value %q: incomplete hex escape", s)
			}
			b, err := strconv.ParseUint(s[p+1:p+3], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid c-escaped default value %q: bad hex escape %q", s, s[p:p+3])
			}
			dst = append(dst, byte(b))
			p += 3
		default:
			return nil, fmt.Errorf("invalid c-escaped default value %q: unknown escape '\\%c'", s, c)
		}
	}
	return dst, nil
}

// escapeBytes renders raw bytes as the body of a Rust byte-string
// literal. The output round-trips through unescapeCEscapeString.
func escapeBytes(b []byte) string {
	var out strings.Builder
	for _, c := range b {
		switch c {
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		case '\\':
			out.WriteString(`\\`)
		case '\'':
			out.WriteString(`\'`)
		case '"':
			out.WriteString(`\"`)
		default:
			if c >= 0x20 && c <= 0x7e {
				out.WriteByte(c)
			} else {
				fmt.Fprintf(&out, `\x%02x`, c)
			}
		}
	}
	return out.String()
}

// embedEscaped re-escapes a literal body for embedding inside the
// double-quoted attribute string, where backslashes and quotes need a
// second level of escaping.
func embedEscaped(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
