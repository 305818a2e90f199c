package token

import "strings"

const (
	SchemaMarker      = "@schema"
	ValidationsMarker = "@validations"
	RecordsMarker     = "@records"
	EndMarker         = "@end"

	CommentPrefix = "!#"
	StrictPrefix  = "*STRICT="

	// Arrow separates keys from declarations in every section.
	Arrow = "->"
)

// Kind classifies a physical line.
type Kind int

const (
	KBlank Kind = iota
	KComment
	KSchema
	KValidations
	KRecords
	KEnd
	KStrict
	KOther
)

func (k Kind) String() string {
	switch k {
	case KBlank:
		return "blank"
	case KComment:
		return "comment"
	case KSchema:
		return SchemaMarker
	case KValidations:
		return ValidationsMarker
	case KRecords:
		return RecordsMarker
	case KEnd:
		return EndMarker
	case KStrict:
		return "*STRICT"
	}
	return "line"
}

// Classify returns the kind of a line; leading and trailing space is
// ignored.
func Classify(line string) Kind {
	s := strings.TrimSpace(line)
	switch {
	case s == "":
		return KBlank
	case strings.HasPrefix(s, CommentPrefix):
		return KComment
	case s == SchemaMarker:
		return KSchema
	case s == ValidationsMarker:
		return KValidations
	case s == RecordsMarker:
		return KRecords
	case s == EndMarker:
		return KEnd
	case strings.HasPrefix(s, "*STRICT"):
		return KStrict
	}
	return KOther
}

// IsMarker reports whether k is a section marker or @end.
func (k Kind) IsMarker() bool {
	switch k {
	case KSchema, KValidations, KRecords, KEnd:
		return true
	}
	return false
}

// Skippable reports whether compilers ignore lines of kind k.
func (k Kind) Skippable() bool {
	return k == KBlank || k == KComment
}

// SplitArrow splits a line on its first `->`.
func SplitArrow(line string) (string, string, bool) {
	l, r, ok := strings.Cut(line, Arrow)
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(l), strings.TrimSpace(r), true
}
