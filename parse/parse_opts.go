package parse

import (
	"github.com/ldoc-format/ldoc/records"
)

type parseOpts struct {
	section   Section
	limit     int
	maxErrors int
	filename  string
}

type ParseOption func(*parseOpts)

// ParseSection restricts parsing to one section; the parse returns as
// soon as that section closes.
func ParseSection(s Section) ParseOption {
	return func(o *parseOpts) { o.section = s }
}

func ParseSchemaOnly() ParseOption {
	return ParseSection(SchemaSection)
}

func ParseValidationsOnly() ParseOption {
	return ParseSection(ValidationsSection)
}

func ParseRecordsOnly() ParseOption {
	return ParseSection(RecordsSection)
}

// ParseRecordLimit sets the number of records compiled, records.DefaultLimit
// by default. A negative limit compiles every record.
func ParseRecordLimit(n int) ParseOption {
	return func(o *parseOpts) { o.limit = n }
}

// ParseMaxErrors sets the number of diagnostics kept per section,
// diag.DefaultCap by default.
func ParseMaxErrors(n int) ParseOption {
	return func(o *parseOpts) { o.maxErrors = n }
}

// ParseFilename names the source in the document metadata.
func ParseFilename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}

func newOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{limit: records.DefaultLimit}
	for _, f := range opts {
		f(o)
	}
	return o
}
