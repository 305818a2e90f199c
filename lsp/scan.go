package lsp

import (
	"regexp"
	"slices"
	"strings"

	"github.com/ldoc-format/ldoc/encode"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/literal"
	"github.com/ldoc-format/ldoc/parse"
	"github.com/ldoc-format/ldoc/token"
)

// span is a highlighted piece of one line. start and end are byte
// offsets into the line.
type span struct {
	line       int
	start, end int
	attr       encode.ColorAttr
	kind       ir.Kind
	section    parse.Section
	// path is the field dot-path of field, rule and value spans.
	path string
	text string
}

var (
	headRe  = regexp.MustCompile(`^(\s*)(#\d+)(\s*)(->)`)
	identRe = regexp.MustCompile(`^[^\s()\[\]{};"=,|]+`)
)

type frame struct {
	name  string
	array bool
}

type scanner struct {
	spans   []span
	section parse.Section
	// schema block keys
	keys []string
	// open record terms
	terms []frame
}

// scan splits content into spans, section by section.
func scan(content string) []span {
	sc := &scanner{}
	for i, ln := range token.SplitLines(content) {
		sc.line(i, ln)
	}
	slices.SortStableFunc(sc.spans, func(a, b span) int {
		if a.line != b.line {
			return a.line - b.line
		}
		return a.start - b.start
	})
	return sc.spans
}

func (sc *scanner) add(line, start, end int, attr encode.ColorAttr, kind ir.Kind, path, text string) {
	if end <= start {
		return
	}
	sc.spans = append(sc.spans, span{
		line:    line,
		start:   start,
		end:     end,
		attr:    attr,
		kind:    kind,
		section: sc.section,
		path:    path,
		text:    text,
	})
}

func (sc *scanner) whole(line int, ln string, attr encode.ColorAttr) {
	start := len(ln) - len(strings.TrimLeft(ln, " \t"))
	end := len(strings.TrimRight(ln, " \t"))
	sc.add(line, start, end, attr, ir.StringKind, "", ln[start:end])
}

func (sc *scanner) line(no int, ln string) {
	switch k := token.Classify(ln); k {
	case token.KBlank:
		return
	case token.KComment:
		sc.whole(no, ln, encode.CommentColor)
		return
	case token.KSchema, token.KValidations, token.KRecords:
		sc.section = sectionOf(k)
		sc.keys = nil
		sc.terms = nil
		sc.whole(no, ln, encode.MarkerColor)
		return
	case token.KEnd:
		sc.whole(no, ln, encode.MarkerColor)
		sc.section = parse.AllSections
		return
	case token.KStrict:
		sc.whole(no, ln, encode.MarkerColor)
		return
	}
	switch sc.section {
	case parse.SchemaSection:
		sc.schemaLine(no, ln)
	case parse.ValidationsSection:
		sc.rulesLine(no, ln)
	case parse.RecordsSection:
		sc.recordLine(no, ln)
	}
}

func sectionOf(k token.Kind) parse.Section {
	switch k {
	case token.KSchema:
		return parse.SchemaSection
	case token.KValidations:
		return parse.ValidationsSection
	case token.KRecords:
		return parse.RecordsSection
	}
	return parse.AllSections
}

func (sc *scanner) schemaLine(no int, ln string) {
	trimmed := strings.TrimSpace(ln)
	if trimmed == "}" {
		if len(sc.keys) != 0 {
			sc.keys = sc.keys[:len(sc.keys)-1]
		}
		i := strings.IndexByte(ln, '}')
		sc.add(no, i, i+1, encode.SepColor, ir.ObjectKind, "", "}")
		return
	}
	arrow := strings.Index(ln, token.Arrow)
	if arrow < 0 {
		return
	}
	key := strings.TrimSpace(ln[:arrow])
	start := strings.Index(ln, key)
	path := strings.Join(append(append([]string{}, sc.keys...), key), ".")
	sc.add(no, start, start+len(key), encode.FieldColor, ir.ObjectKind, path, key)
	sc.add(no, arrow, arrow+len(token.Arrow), encode.SepColor, ir.StringKind, "", token.Arrow)

	off := arrow + len(token.Arrow)
	rest := ln[off:]
	if body, ok := strings.CutSuffix(strings.TrimRight(rest, " \t"), "{"); ok {
		brace := off + len(body)
		sc.add(no, brace, brace+1, encode.SepColor, ir.ObjectKind, "", "{")
		rest = body
		sc.keys = append(sc.keys, key)
	}
	pos := off
	for t := range strings.SplitSeq(rest, "|") {
		name := strings.TrimSpace(t)
		if name != "" {
			at := pos + strings.Index(t, name)
			sc.add(no, at, at+len(name), encode.TypeColor, ir.StringKind, path, name)
		}
		pos += len(t) + 1
	}
}

func (sc *scanner) rulesLine(no int, ln string) {
	arrow := strings.Index(ln, token.Arrow)
	if arrow < 0 {
		return
	}
	path := strings.TrimSpace(ln[:arrow])
	start := strings.Index(ln, path)
	sc.add(no, start, start+len(path), encode.FieldColor, ir.ObjectKind, path, path)
	sc.add(no, arrow, arrow+len(token.Arrow), encode.SepColor, ir.StringKind, "", token.Arrow)

	i := arrow + len(token.Arrow)
	for i < len(ln) {
		for i < len(ln) && (ln[i] == ' ' || ln[i] == '\t' || strings.IndexByte(",;", ln[i]) >= 0) {
			i++
		}
		name := identRe.FindString(ln[i:])
		if name == "" {
			i = clauseEnd(ln, i)
			continue
		}
		sc.add(no, i, i+len(name), encode.RuleColor, ir.StringKind, path, name)
		i += len(name)
		if i >= len(ln) || ln[i] != '=' {
			i = clauseEnd(ln, i)
			continue
		}
		sc.add(no, i, i+1, encode.SepColor, ir.StringKind, "", "=")
		i++
		end := clauseEnd(ln, i)
		val := strings.TrimSpace(ln[i:end])
		if val != "" {
			at := i + strings.Index(ln[i:end], val)
			sc.add(no, at, at+len(val), encode.ValueColor, ruleKind(val), path, val)
		}
		i = end
	}
}

// clauseEnd returns the offset of the next top level clause separator
// at or after i, or len(ln).
func clauseEnd(ln string, i int) int {
	depth := 0
	inQ := false
	for ; i < len(ln); i++ {
		c := ln[i]
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
			depth--
		case ',', ';':
			if depth <= 0 {
				return i
			}
		}
	}
	return len(ln)
}

func ruleKind(v string) ir.Kind {
	switch {
	case strings.HasPrefix(v, `"`):
		return ir.StringKind
	case strings.HasPrefix(v, "["):
		return ir.ArrayKind
	case strings.HasPrefix(v, "{"):
		return ir.ObjectKind
	case v == "true" || v == "false" || v == "TRUE" || v == "FALSE":
		return ir.BooleanKind
	case v == "null" || v == "NULL":
		return ir.NullKind
	case v == "undefined":
		return ir.UndefinedKind
	case v[0] >= '0' && v[0] <= '9':
		return ir.NumberKind
	}
	return ir.StringKind
}

func valueKind(v string) ir.Kind {
	val, err := literal.Infer(v)
	if err != nil {
		return ir.StringKind
	}
	return val.Kind
}

func (sc *scanner) path(name string) string {
	var segs []string
	for _, f := range sc.terms {
		if f.name != "" {
			segs = append(segs, f.name)
		}
	}
	if name != "" {
		segs = append(segs, name)
	}
	return strings.Join(segs, ".")
}

func (sc *scanner) recordLine(no int, ln string) {
	i := 0
	if m := headRe.FindStringSubmatchIndex(ln); m != nil {
		sc.terms = nil
		sc.add(no, m[4], m[5], encode.MarkerColor, ir.NumberKind, "", ln[m[4]:m[5]])
		sc.add(no, m[8], m[9], encode.SepColor, ir.StringKind, "", token.Arrow)
		i = m[1]
	}
	for i < len(ln) {
		c := ln[i]
		switch {
		case c == ' ' || c == '\t' || c == ';':
			i++
			continue
		case c == '}' || c == ']':
			if len(sc.terms) != 0 {
				sc.terms = sc.terms[:len(sc.terms)-1]
			}
			sc.add(no, i, i+1, encode.SepColor, ir.ObjectKind, "", string(c))
			i++
			continue
		}
		name := identRe.FindString(ln[i:])
		if name == "" {
			i++
			continue
		}
		seg := name
		if n := len(sc.terms); n != 0 && sc.terms[n-1].array {
			seg = ""
		}
		path := sc.path(seg)
		sc.add(no, i, i+len(name), encode.FieldColor, ir.ObjectKind, path, name)
		i += len(name)
		for i < len(ln) && (ln[i] == ' ' || ln[i] == '\t') {
			i++
		}
		if i >= len(ln) {
			return
		}
		switch ln[i] {
		case '{', '[':
			sc.add(no, i, i+1, encode.SepColor, ir.ObjectKind, "", ln[i:i+1])
			sc.terms = append(sc.terms, frame{name: seg, array: ln[i] == '['})
			i++
		case '(':
			end := closeParen(ln, i+1)
			val := strings.TrimSpace(ln[i+1 : end])
			if val != "" {
				at := i + 1 + strings.Index(ln[i+1:end], val)
				sc.add(no, at, at+len(val), encode.ValueColor, valueKind(val), path, val)
			}
			i = end + 1
		}
	}
}

func closeParen(ln string, i int) int {
	inQ := false
	for ; i < len(ln); i++ {
		c := ln[i]
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
		case ')':
			return i
		}
	}
	return len(ln)
}

// spanAt returns the span covering byte offset col of line, or nil.
func spanAt(spans []span, line, col int) *span {
	for i := range spans {
		s := &spans[i]
		if s.line == line && s.start <= col && col < s.end {
			return s
		}
	}
	return nil
}
