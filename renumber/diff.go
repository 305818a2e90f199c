package renumber

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders the lines that differ between from and to, prefixed with
// `-` and `+` and grouped under `@@ line n @@` headers.
func Diff(name, from, to string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\n+++ %s\n", name, name)
	line := 1
	inHunk := false
	for _, d := range diffs {
		ls := splitLines(d.Text)
		switch d.Type {
		case diffpatch.DiffEqual:
			line += len(ls)
			inHunk = false
			continue
		case diffpatch.DiffDelete:
			if !inHunk {
				fmt.Fprintf(&out, "@@ line %d @@\n", line)
				inHunk = true
			}
			for _, l := range ls {
				out.WriteString("-" + l + "\n")
			}
			line += len(ls)
		case diffpatch.DiffInsert:
			if !inHunk {
				fmt.Fprintf(&out, "@@ line %d @@\n", line)
				inHunk = true
			}
			for _, l := range ls {
				out.WriteString("+" + l + "\n")
			}
		}
	}
	return out.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
