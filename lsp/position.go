package lsp

import (
	"unicode/utf16"
	"unicode/utf8"
)

// utf16Len is the length of s in UTF-16 code units, the unit of LSP
// character offsets.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// byteOffset converts a UTF-16 character offset in line to a byte offset.
func byteOffset(line string, char int) int {
	n := 0
	for i, r := range line {
		if n >= char {
			return i
		}
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}
		n += w
	}
	return len(line)
}

func lineAt(lines []string, n int) string {
	if n < 0 || n >= len(lines) {
		return ""
	}
	return lines[n]
}

// wordBefore returns the bytes of line before off, trimmed to the
// start of the current word.
func wordBefore(line string, off int) string {
	if off > len(line) {
		off = len(line)
	}
	i := off
	for i > 0 {
		r, w := utf8.DecodeLastRuneInString(line[:i])
		if !isWordRune(r) {
			break
		}
		i -= w
	}
	return line[i:off]
}

func isWordRune(r rune) bool {
	switch r {
	case ' ', '\t', '(', ')', '[', ']', '{', '}', ';', ',', '=', '|', '"', '>':
		return false
	}
	return true
}

func lineColToOffset(content string, line, col int) int {
	currentLine := 0
	currentCol := 0
	for i, r := range content {
		if currentLine == line && currentCol == col {
			return i
		}
		if r == '\n' {
			currentLine++
			currentCol = 0
		} else {
			currentCol += utf16.RuneLen(r)
		}
	}
	return len(content)
}
