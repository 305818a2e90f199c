package token

import (
	"strings"
)

// Cursor is a position in an ordered sequence of source lines.
//
// A Cursor is a value: compilers take one, advance their copy, and hand
// the advanced copy back to the caller. The lines themselves are shared
// and never modified.
type Cursor struct {
	lines []string
	i     int
}

func NewCursor(lines []string) Cursor {
	return Cursor{lines: lines}
}

// FromString splits text into lines, accepting \n and \r\n endings.
func FromString(text string) Cursor {
	return NewCursor(SplitLines(text))
}

func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines
}

// Done reports whether all lines were consumed.
func (c Cursor) Done() bool {
	return c.i >= len(c.lines)
}

// Line returns the current line and its 1-based number, without
// advancing.
func (c Cursor) Line() (string, int) {
	if c.Done() {
		return "", c.i + 1
	}
	return c.lines[c.i], c.i + 1
}

// LineNo is the 1-based number of the current line.
func (c Cursor) LineNo() int {
	return c.i + 1
}

// Next returns the current line, its 1-based number, and the cursor
// advanced past it.
func (c Cursor) Next() (string, int, Cursor) {
	ln, no := c.Line()
	if !c.Done() {
		c.i++
	}
	return ln, no, c
}

// Advance skips the current line.
func (c Cursor) Advance() Cursor {
	if !c.Done() {
		c.i++
	}
	return c
}

// Len is the total number of lines.
func (c Cursor) Len() int {
	return len(c.lines)
}
