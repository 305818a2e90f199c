package literal

import "strings"

// SplitTop splits s on any byte of seps that is not inside double
// quotes, brackets, braces or parentheses. Parts are trimmed; empty parts
// are kept so callers can report them.
func SplitTop(s string, seps string) []string {
	var (
		res   []string
		depth int
		inQ   bool
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQ {
			switch c {
			case '\\':
				i++
			case '"':
				inQ = false
			}
			continue
		}
		switch c {
		case '"':
			inQ = true
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && strings.IndexByte(seps, c) >= 0 {
				res = append(res, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(res, strings.TrimSpace(s[start:]))
}

// IsQuoted reports whether s is a double quoted string.
func IsQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// Unquote strips the quotes of a double quoted string and resolves the
// escapes \" \\ \n \t and \r. Other backslashes are kept.
func Unquote(s string) string {
	if IsQuoted(s) {
		s = s[1 : len(s)-1]
	}
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '"', '\\':
			b.WriteByte(s[i])
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
