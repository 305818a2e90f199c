package parse

import (
	"fmt"
	"time"

	"github.com/ldoc-format/ldoc/diag"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/token"
	"github.com/ldoc-format/ldoc/validate"
)

// Section names a document section.
type Section int

const (
	AllSections Section = iota
	SchemaSection
	ValidationsSection
	RecordsSection
)

func (s Section) String() string {
	switch s {
	case AllSections:
		return "all"
	case SchemaSection:
		return "schema"
	case ValidationsSection:
		return "validations"
	case RecordsSection:
		return "records"
	}
	return "<unknown section>"
}

// Marker returns the line opening s.
func (s Section) Marker() string {
	switch s {
	case SchemaSection:
		return token.SchemaMarker
	case ValidationsSection:
		return token.ValidationsMarker
	case RecordsSection:
		return token.RecordsMarker
	}
	return ""
}

// ParseSectionName maps "schema", "validations", "records" and "all" (or
// "") to a Section.
func ParseSectionName(v string) (Section, error) {
	switch v {
	case "", "all":
		return AllSections, nil
	case "schema":
		return SchemaSection, nil
	case "validations":
		return ValidationsSection, nil
	case "records":
		return RecordsSection, nil
	}
	return AllSections, fmt.Errorf("%w: %q", ErrSection, v)
}

func sectionOf(k token.Kind) Section {
	switch k {
	case token.KSchema:
		return SchemaSection
	case token.KValidations:
		return ValidationsSection
	case token.KRecords:
		return RecordsSection
	}
	return AllSections
}

// FileRules holds the document level directives.
type FileRules struct {
	Strict bool `json:"strict" yaml:"strict"`
}

// Errors holds the diagnostics of a parse by section. Document holds
// those about the section structure itself.
type Errors struct {
	Schema      []diag.Diagnostic `json:"schema,omitempty" yaml:"schema,omitempty"`
	Validations []diag.Diagnostic `json:"validations,omitempty" yaml:"validations,omitempty"`
	Records     []diag.Diagnostic `json:"records,omitempty" yaml:"records,omitempty"`
	Document    []diag.Diagnostic `json:"document,omitempty" yaml:"document,omitempty"`
}

func (e *Errors) Len() int {
	return len(e.Schema) + len(e.Validations) + len(e.Records) + len(e.Document)
}

// All returns every diagnostic, section by section.
func (e *Errors) All() []diag.Diagnostic {
	res := make([]diag.Diagnostic, 0, e.Len())
	res = append(res, e.Document...)
	res = append(res, e.Schema...)
	res = append(res, e.Validations...)
	return append(res, e.Records...)
}

type Metadata struct {
	File     string        `json:"file,omitempty" yaml:"file,omitempty"`
	Size     int           `json:"size" yaml:"size"`
	Lines    int           `json:"lines" yaml:"lines"`
	Records  int           `json:"records" yaml:"records"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Document is the result of parsing an ldoc document.
type Document struct {
	FileRules   FileRules    `json:"fileRules" yaml:"fileRules"`
	Schema      ir.Schema    `json:"schema" yaml:"schema"`
	Validations ir.RuleSet   `json:"validations" yaml:"validations"`
	Records     []*ir.Record `json:"records" yaml:"records"`
	Errors      Errors       `json:"errors" yaml:"errors"`
	Metadata    Metadata     `json:"metadata" yaml:"metadata"`
}

// Valid reports whether the parse produced no diagnostics.
func (d *Document) Valid() bool {
	return d.Errors.Len() == 0
}

// Validate checks the document records against its schema and rules.
func (d *Document) Validate(opts ...validate.Option) *validate.Result {
	return validate.New(opts...).ValidateRecords(d.Schema, d.Validations, d.Records)
}

// Data returns the records as plain Go data.
func (d *Document) Data() []map[string]any {
	res := make([]map[string]any, len(d.Records))
	for i, r := range d.Records {
		res[i] = r.Data()
	}
	return res
}

