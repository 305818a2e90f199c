package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ldoc-format/ldoc/diag"
	"github.com/ldoc-format/ldoc/format"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/parse"
	"github.com/ldoc-format/ldoc/rules"
	"github.com/ldoc-format/ldoc/token"
	"github.com/ldoc-format/ldoc/validate"

	"github.com/goccy/go-yaml"
)

var ErrUnsupported = errors.New("unsupported value")

type EncState struct {
	indent   int
	format   format.Format
	filename string
	buf      bytes.Buffer

	Color func(ir.Kind, ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

func (es *EncState) color(k ir.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

// Encode writes v to w. YAML and JSON accept any value and render ldoc
// types as plain data. Text renders documents, schemas, rule sets and
// records in ldoc notation, and validation results and diagnostics as
// listings.
func Encode(v any, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	switch es.format {
	case format.JSONFormat:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", strings.Repeat(" ", es.indent))
		return enc.Encode(es.plain(v))
	case format.YAMLFormat:
		d, err := yaml.MarshalWithOptions(es.plain(v), yaml.Indent(es.indent))
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	}
	if err := es.text(v); err != nil {
		return err
	}
	_, err := w.Write(es.buf.Bytes())
	return err
}

// EncodeDiagnostics writes ds as `name:line: message`.
func EncodeDiagnostics(name string, ds []diag.Diagnostic, w io.Writer, opts ...EncodeOption) error {
	return Encode(ds, w, append([]EncodeOption{EncodeFilename(name)}, opts...)...)
}

func (es *EncState) text(v any) error {
	switch x := v.(type) {
	case *parse.Document:
		es.document(x)
	case ir.Schema:
		es.schema(x, 0)
	case ir.RuleSet:
		es.rules(x)
	case []*ir.Record:
		for _, r := range x {
			es.record(r)
		}
	case *ir.Record:
		es.record(x)
	case *validate.Result:
		es.result(x)
	case []diag.Diagnostic:
		es.diagnostics(x)
	case parse.Errors:
		es.diagnostics(x.All())
	default:
		return fmt.Errorf("%w: %T as text", ErrUnsupported, v)
	}
	return nil
}

func (es *EncState) write(parts ...string) {
	for _, p := range parts {
		es.buf.WriteString(p)
	}
}

func (es *EncState) pad(depth int) {
	es.buf.WriteString(strings.Repeat(" ", depth*es.indent))
}

func (es *EncState) comment(s string) {
	es.write(es.color(ir.StringKind, CommentColor, token.CommentPrefix+" "+s), "\n")
}

func (es *EncState) marker(m string) {
	es.write(es.color(ir.StringKind, MarkerColor, m), "\n")
}

func (es *EncState) arrow() string {
	return " " + es.color(ir.StringKind, SepColor, token.Arrow) + " "
}

func (es *EncState) document(doc *parse.Document) {
	md := doc.Metadata
	if md.File != "" {
		es.comment(md.File)
	}
	es.comment(fmt.Sprintf("%d records, %d lines, %d diagnostics", md.Records, md.Lines, doc.Errors.Len()))
	if doc.FileRules.Strict {
		es.write(es.color(ir.BooleanKind, MarkerColor, token.StrictPrefix+"TRUE"), "\n")
	}
	if doc.Schema != nil {
		es.marker(token.SchemaMarker)
		es.schema(doc.Schema, 0)
		es.marker(token.EndMarker)
	}
	if len(doc.Validations) != 0 {
		es.marker(token.ValidationsMarker)
		es.rules(doc.Validations)
		es.marker(token.EndMarker)
	}
	if len(doc.Records) != 0 {
		es.marker(token.RecordsMarker)
		for _, r := range doc.Records {
			es.record(r)
		}
		es.marker(token.EndMarker)
	}
	for _, d := range doc.Errors.All() {
		es.write(es.color(ir.StringKind, ErrorColor, token.CommentPrefix+" "+d.String()), "\n")
	}
}

func (es *EncState) schema(s ir.Schema, depth int) {
	for _, k := range s.Keys() {
		n := s[k]
		es.pad(depth)
		es.write(es.color(ir.ObjectKind, FieldColor, k), es.arrow(), es.color(ir.StringKind, TypeColor, n.Types.String()))
		nested := n.Properties
		if n.Items != nil {
			nested = n.Items.Properties
		}
		if nested == nil {
			es.write("\n")
			continue
		}
		es.write(" {\n")
		es.schema(nested, depth+1)
		es.pad(depth)
		es.write("}\n")
	}
}

func (es *EncState) rules(rs ir.RuleSet) {
	walkRules(rs, "", func(path string, n *ir.RuleNode) {
		var clauses []string
		for _, r := range rules.All() {
			rv, ok := n.Rules[r.String()]
			if !ok {
				continue
			}
			clauses = append(clauses, es.color(ir.StringKind, RuleColor, r.String())+
				es.color(ir.StringKind, SepColor, "=")+
				es.color(ruleValueKind(rv), ValueColor, RuleText(r, rv)))
		}
		if len(clauses) == 0 {
			return
		}
		es.write(es.color(ir.ObjectKind, FieldColor, path), es.arrow(), strings.Join(clauses, es.color(ir.StringKind, SepColor, ", ")), "\n")
	})
}

func walkRules(rs ir.RuleSet, prefix string, f func(string, *ir.RuleNode)) {
	for _, k := range slices.Sorted(maps.Keys(rs)) {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		n := rs[k]
		f(path, n)
		walkRules(n.Children, path, f)
	}
}

func ruleValueKind(rv ir.RuleValue) ir.Kind {
	switch rv.Kind {
	case ir.RuleBool:
		return ir.BooleanKind
	case ir.RuleNull:
		return ir.NullKind
	case ir.RuleUndefined:
		return ir.UndefinedKind
	case ir.RuleInt, ir.RuleFloat:
		return ir.NumberKind
	case ir.RuleList:
		return ir.ArrayKind
	case ir.RuleMap:
		return ir.ObjectKind
	}
	return ir.StringKind
}

// RuleText renders rv the way it is written after `r=` in a
// validations section.
func RuleText(r rules.Rule, rv ir.RuleValue) string {
	switch rv.Kind {
	case ir.RuleBool, ir.RuleNull:
		s := rv.Text()
		if r == rules.Default {
			s = strings.ToUpper(s)
		}
		return s
	case ir.RuleString:
		return strconv.Quote(rv.String)
	case ir.RuleList:
		parts := make([]string, len(rv.List))
		for i, s := range rv.List {
			if strings.ContainsAny(s, `,"[]{}()`) {
				s = strconv.Quote(s)
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ir.RuleMap:
		keys := slices.Sorted(maps.Keys(rv.Map))
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + ValueText(rv.Map[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return rv.Text()
}

// ValueText renders v as it is written inside `field(...)`.
func ValueText(v *ir.Value) string {
	if v == nil || v.Kind == ir.UndefinedKind {
		return ""
	}
	if v.Kind == ir.StringKind {
		return strconv.Quote(v.String)
	}
	return v.Text()
}

func (es *EncState) record(r *ir.Record) {
	head := es.color(ir.NumberKind, MarkerColor, "#"+strconv.Itoa(r.Index))
	es.write(head, es.arrow())
	es.object(r.Fields)
	es.write("\n")
}

func (es *EncState) object(o *ir.Object) {
	first := true
	for k, v := range o.All() {
		if !first {
			es.write(" ")
		}
		first = false
		es.term(k, v)
	}
}

func (es *EncState) term(name string, v *ir.Value) {
	es.write(es.color(ir.ObjectKind, FieldColor, name))
	sep := func(s string) { es.write(es.color(ir.StringKind, SepColor, s)) }
	switch {
	case v != nil && v.Kind == ir.ArrayKind:
		sep("[")
		for i, c := range v.Values {
			es.write(" ")
			label := "_" + strconv.Itoa(i)
			if i < len(v.Labels) {
				label = v.Labels[i]
			}
			es.term(label, c)
		}
		es.write(" ")
		sep("]")
	case v != nil && v.Kind == ir.ObjectKind:
		sep("{")
		if v.Object != nil && v.Object.Len() != 0 {
			es.write(" ")
			es.object(v.Object)
		}
		es.write(" ")
		sep("}")
	default:
		k := ir.UndefinedKind
		if v != nil {
			k = v.Kind
		}
		sep("(")
		es.write(es.color(k, ValueColor, ValueText(v)))
		sep(")")
	}
	sep(";")
}

func (es *EncState) result(res *validate.Result) {
	if res.Valid {
		es.write(es.color(ir.BooleanKind, ValueColor, "valid"), "\n")
		return
	}
	for _, e := range res.Errors {
		if e.Record != nil {
			es.write(es.color(ir.NumberKind, MarkerColor, "#"+strconv.Itoa(*e.Record)), " ")
		}
		es.write(es.color(ir.ObjectKind, FieldColor, e.Field))
		if e.Rule != "" {
			es.write(" ", es.color(ir.StringKind, RuleColor, "("+e.Rule+")"))
		}
		es.write(": ", es.color(ir.StringKind, ErrorColor, e.Message), "\n")
	}
}

func (es *EncState) diagnostics(ds []diag.Diagnostic) {
	for _, d := range ds {
		var loc []string
		if es.filename != "" {
			loc = append(loc, es.filename)
		}
		if d.Line != 0 {
			loc = append(loc, strconv.Itoa(d.Line))
		}
		if len(loc) != 0 {
			es.write(es.color(ir.NumberKind, CommentColor, strings.Join(loc, ":")+":"), " ")
		}
		es.write(es.color(ir.StringKind, ErrorColor, d.Message), "\n")
	}
}

// plain converts ldoc types to data that encoding/json and go-yaml
// render directly.
func (es *EncState) plain(v any) any {
	switch x := v.(type) {
	case *parse.Document:
		return map[string]any{
			"fileRules":   x.FileRules,
			"schema":      es.plain(x.Schema),
			"validations": es.plain(x.Validations),
			"records":     es.plain(x.Records),
			"errors":      x.Errors,
			"metadata": map[string]any{
				"file":     x.Metadata.File,
				"size":     x.Metadata.Size,
				"lines":    x.Metadata.Lines,
				"records":  x.Metadata.Records,
				"duration": x.Metadata.Duration.String(),
			},
		}
	case ir.Schema:
		return SchemaData(x)
	case ir.RuleSet:
		res := map[string]any{}
		for path, m := range RulesData(x) {
			res[path] = es.data(m)
		}
		return res
	case []*ir.Record:
		res := make([]any, len(x))
		for i, r := range x {
			res[i] = es.plain(r)
		}
		return res
	case *ir.Record:
		return map[string]any{
			"index":  x.Index,
			"line":   x.Line,
			"fields": es.data(x.Data()),
		}
	case *ir.Value:
		return es.data(x.Data())
	case []diag.Diagnostic, parse.Errors, *validate.Result:
		return v
	}
	return es.data(v)
}

func (es *EncState) data(v any) any {
	switch x := v.(type) {
	case ir.UndefinedValue:
		return nil
	case *big.Int:
		if es.format == format.JSONFormat {
			return json.Number(x.String())
		}
		return x.String()
	case []byte:
		return BufferText(x)
	case time.Time:
		return x
	case []any:
		res := make([]any, len(x))
		for i, c := range x {
			res[i] = es.data(c)
		}
		return res
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, c := range x {
			res[k] = es.data(c)
		}
		return res
	}
	return v
}

// BufferText renders bytes as a `<Buffer ..>` literal.
func BufferText(b []byte) string {
	if len(b) == 0 {
		return "<Buffer>"
	}
	return fmt.Sprintf("<Buffer % x>", b)
}

// SchemaData converts a schema to nested maps: a field without nested
// declarations maps to its type union, others to
// {types, properties|items}.
func SchemaData(s ir.Schema) map[string]any {
	res := make(map[string]any, len(s))
	for k, n := range s {
		switch {
		case n.Properties != nil:
			res[k] = map[string]any{"types": n.Types.String(), "properties": SchemaData(n.Properties)}
		case n.Items != nil:
			res[k] = map[string]any{"types": n.Types.String(), "items": SchemaData(n.Items.Properties)}
		default:
			res[k] = n.Types.String()
		}
	}
	return res
}

// RulesData flattens a rule set to dot-paths mapping rule names to
// their values.
func RulesData(rs ir.RuleSet) map[string]map[string]any {
	res := map[string]map[string]any{}
	walkRules(rs, "", func(path string, n *ir.RuleNode) {
		if len(n.Rules) == 0 {
			return
		}
		m := make(map[string]any, len(n.Rules))
		for name, rv := range n.Rules {
			m[name] = rv.Data()
		}
		res[path] = m
	})
	return res
}
