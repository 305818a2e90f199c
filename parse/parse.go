package parse

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/ldoc-format/ldoc/debug"
	"github.com/ldoc-format/ldoc/diag"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/records"
	"github.com/ldoc-format/ldoc/rules"
	"github.com/ldoc-format/ldoc/schema"
	"github.com/ldoc-format/ldoc/token"
)

// Parse parses an ldoc document. Recoverable problems are reported in
// Document.Errors; the returned error is non-nil only for structural
// misuse (wrapping ErrStructural) or bad options.
func Parse(d []byte, opts ...ParseOption) (*Document, error) {
	start := time.Now()
	o := newOpts(opts)
	if o.section < AllSections || o.section > RecordsSection {
		return nil, fmt.Errorf("%w: %d", ErrSection, o.section)
	}
	lines := token.SplitLines(string(d))
	p := &parser{
		opts: o,
		cur:  token.NewCursor(lines),
		doc: &Document{
			Schema:      ir.Schema{},
			Validations: ir.RuleSet{},
		},
		schemaDiags: diag.NewList(o.maxErrors),
		rulesDiags:  diag.NewList(o.maxErrors),
		recDiags:    diag.NewList(o.maxErrors),
		docDiags:    diag.NewList(o.maxErrors),
		seen:        map[Section]bool{},
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	doc := p.doc
	doc.Errors = Errors{
		Schema:      p.schemaDiags.Items(),
		Validations: p.rulesDiags.Items(),
		Records:     p.recDiags.Items(),
		Document:    p.docDiags.Items(),
	}
	doc.Metadata = Metadata{
		File:     o.filename,
		Size:     len(d),
		Lines:    len(lines),
		Records:  len(doc.Records),
		Duration: time.Since(start),
	}
	if debug.Parse() {
		debug.Logf("parsed %q: %d records, %d diagnostics in %s\n",
			o.filename, len(doc.Records), doc.Errors.Len(), doc.Metadata.Duration)
	}
	return doc, nil
}

func ParseString(s string, opts ...ParseOption) (*Document, error) {
	return Parse([]byte(s), opts...)
}

// ParseReader reads r to the end and parses it.
func ParseReader(r io.Reader, opts ...ParseOption) (*Document, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return Parse(buf.Bytes(), opts...)
}

// ParseFile parses the document at path, naming it in the metadata.
func ParseFile(path string, opts ...ParseOption) (*Document, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(d, append([]ParseOption{ParseFilename(path)}, opts...)...)
}

type parser struct {
	opts *parseOpts
	cur  token.Cursor
	doc  *Document

	schemaDiags *diag.List
	rulesDiags  *diag.List
	recDiags    *diag.List
	docDiags    *diag.List

	open     []Section
	seen     map[Section]bool
	sections bool
	strict   bool
}

func (p *parser) fatalf(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrStructural, line, fmt.Sprintf(format, args...))
}

func (p *parser) run() error {
	for !p.cur.Done() {
		ln, no := p.cur.Line()
		k := token.Classify(ln)
		switch k {
		case token.KBlank, token.KComment:
			p.cur = p.cur.Advance()
		case token.KStrict:
			if err := p.directive(strings.TrimSpace(ln), no); err != nil {
				return err
			}
			p.cur = p.cur.Advance()
		case token.KSchema, token.KValidations, token.KRecords:
			p.cur = p.cur.Advance()
			p.section(sectionOf(k), no)
		case token.KEnd:
			p.cur = p.cur.Advance()
			if len(p.open) == 0 {
				p.docDiags.Addf(no, "'%s' without an open section", token.EndMarker)
				continue
			}
			closed := p.open[len(p.open)-1]
			p.open = p.open[:len(p.open)-1]
			if debug.Parse() {
				debug.Logf("line %d: closed %s\n", no, closed.Marker())
			}
			if p.opts.section != AllSections && closed == p.opts.section {
				return nil
			}
		default:
			p.docDiags.Addf(no, "Unexpected line outside of a section: '%s'", strings.TrimSpace(ln))
			p.cur = p.cur.Advance()
		}
	}
	p.finish()
	return nil
}

func (p *parser) directive(line string, no int) error {
	if p.opts.section != AllSections {
		return p.fatalf(no, "*STRICT can not be used when parsing only the %s section", p.opts.section)
	}
	if p.sections {
		return p.fatalf(no, "*STRICT must come before any section")
	}
	if p.strict {
		return p.fatalf(no, "duplicate *STRICT directive")
	}
	v, ok := strings.CutPrefix(line, token.StrictPrefix)
	if !ok {
		return p.fatalf(no, "invalid directive '%s': expected *STRICT=TRUE or *STRICT=FALSE", line)
	}
	switch strings.TrimSpace(v) {
	case "TRUE":
		p.doc.FileRules.Strict = true
	case "FALSE":
		p.doc.FileRules.Strict = false
	default:
		return p.fatalf(no, "invalid *STRICT value '%s': expected TRUE or FALSE", v)
	}
	p.strict = true
	return nil
}

// section handles a section marker at line no; the cursor is already past
// it. The section body is compiled, or skipped when it is out of order or
// not requested.
func (p *parser) section(s Section, no int) {
	p.sections = true
	if slices.Contains(p.open, s) {
		p.docDiags.Addf(no, "'%s' is already open", s.Marker())
		p.skip()
		return
	}
	if s != SchemaSection && !p.seen[SchemaSection] {
		p.docDiags.Addf(no, "'%s' must come after '%s'", s.Marker(), token.SchemaMarker)
		p.skipSection()
		return
	}
	p.open = append(p.open, s)
	p.seen[s] = true
	if debug.Parse() {
		debug.Logf("line %d: opened %s\n", no, s.Marker())
	}
	if !p.wants(s) {
		p.skip()
		return
	}
	switch s {
	case SchemaSection:
		var (
			sch ir.Schema
			ds  []diag.Diagnostic
		)
		sch, p.cur, ds = schema.Compile(p.cur, schema.MaxErrors(p.opts.maxErrors))
		p.doc.Schema.Merge(sch)
		if p.reports(s) {
			p.schemaDiags.Add(ds...)
		}
	case ValidationsSection:
		var (
			rs ir.RuleSet
			ds []diag.Diagnostic
		)
		rs, p.cur, ds = rules.Compile(p.cur, p.doc.Schema, rules.MaxErrors(p.opts.maxErrors))
		mergeRules(p.doc.Validations, rs, "")
		p.rulesDiags.Add(ds...)
	case RecordsSection:
		limit := p.opts.limit
		if limit >= 0 {
			limit = max(limit-len(p.doc.Records), 0)
		}
		var (
			recs []*ir.Record
			ds   []diag.Diagnostic
		)
		recs, p.cur, ds = records.Compile(p.cur, records.Limit(limit), records.MaxErrors(p.opts.maxErrors))
		p.doc.Records = append(p.doc.Records, recs...)
		p.recDiags.Add(ds...)
	}
}

// wants reports whether section s is compiled. In single section mode the
// schema is still compiled for the validations to be checked against.
func (p *parser) wants(s Section) bool {
	switch p.opts.section {
	case AllSections:
		return true
	case ValidationsSection:
		return s == SchemaSection || s == ValidationsSection
	}
	return s == p.opts.section
}

func (p *parser) reports(s Section) bool {
	return p.opts.section == AllSections || p.opts.section == s
}

// skip advances to the next marker.
func (p *parser) skip() {
	for !p.cur.Done() {
		ln, _ := p.cur.Line()
		if k := token.Classify(ln); k.IsMarker() || k == token.KStrict {
			return
		}
		p.cur = p.cur.Advance()
	}
}

// skipSection advances past the `@end` closing a section that was not
// opened.
func (p *parser) skipSection() {
	p.skip()
	if p.cur.Done() {
		return
	}
	if ln, _ := p.cur.Line(); token.Classify(ln) == token.KEnd {
		p.cur = p.cur.Advance()
	}
}

func (p *parser) finish() {
	for _, s := range p.open {
		p.docDiags.Addf(0, "Section '%s' is not closed by '%s'", s.Marker(), token.EndMarker)
	}
	if p.opts.section != AllSections {
		if !p.seen[p.opts.section] {
			p.docDiags.Addf(0, "No '%s' section found", p.opts.section.Marker())
		}
		return
	}
	if len(p.doc.Schema) == 0 {
		p.docDiags.Addf(0, "No schema defined")
	}
	if len(p.doc.Records) == 0 {
		p.docDiags.Addf(0, "No records defined")
	}
}

// mergeRules merges the rules of src into dst.
func mergeRules(dst, src ir.RuleSet, prefix string) {
	for k, n := range src {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if len(n.Rules) != 0 {
			dst.Merge(path, n.Rules)
		}
		mergeRules(dst, n.Children, path)
	}
}
