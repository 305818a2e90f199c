package parse

import "errors"

var (
	// ErrStructural is a misuse of the document structure that aborts the
	// parse, such as a misplaced `*STRICT=` directive.
	ErrStructural = errors.New("structural error")
	// ErrSection is an unknown section name.
	ErrSection = errors.New("unknown section")
)
