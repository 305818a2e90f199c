// Package diag holds the diagnostics produced by the ldoc compilers and
// the runtime validator.
package diag

import (
	"fmt"
	"strings"
)

// DefaultCap is the number of diagnostics kept per section.
const DefaultCap = 50

// Diagnostic is a recoverable problem found while compiling a section.
// Line is 1-based; 0 means the diagnostic has no line.
type Diagnostic struct {
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func New(line int, msg string, args ...any) Diagnostic {
	if len(args) != 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return Diagnostic{Line: line, Message: msg}
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return d.Message
	}
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// List accumulates diagnostics up to a cap. Diagnostics past the cap are
// dropped without notice.
type List struct {
	cap   int
	items []Diagnostic
}

// NewList returns a list holding at most n diagnostics; n <= 0 selects
// DefaultCap.
func NewList(n int) *List {
	if n <= 0 {
		n = DefaultCap
	}
	return &List{cap: n}
}

func (l *List) Addf(line int, msg string, args ...any) {
	l.Add(New(line, msg, args...))
}

func (l *List) Add(ds ...Diagnostic) {
	for _, d := range ds {
		if len(l.items) >= l.cap {
			return
		}
		l.items = append(l.items, d)
	}
}

// At reports whether a diagnostic was recorded for line.
func (l *List) At(line int) bool {
	for i := range l.items {
		if l.items[i].Line == line {
			return true
		}
	}
	return false
}

func (l *List) Len() int {
	return len(l.items)
}

// Items returns the recorded diagnostics.
func (l *List) Items() []Diagnostic {
	return l.items
}

// Join renders diagnostics one per line.
func Join(ds []Diagnostic) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.String()
	}
	return strings.Join(parts, "\n")
}
