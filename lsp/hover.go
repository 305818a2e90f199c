package lsp

import (
	"context"
	"fmt"
	"strings"

	"github.com/ldoc-format/ldoc/encode"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/rules"

	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	line := int(params.Position.Line)
	col := byteOffset(lineAt(doc.lines, line), int(params.Position.Character))
	sp := spanAt(doc.spans, line, col)
	if sp == nil {
		return nil, nil
	}
	hoverText := buildHoverText(doc, sp)
	if hoverText == "" {
		return nil, nil
	}
	start := utf16Len(doc.lines[line][:sp.start])
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
		Range: &protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: uint32(start)},
			End:   protocol.Position{Line: uint32(line), Character: uint32(start + utf16Len(sp.text))},
		},
	}, nil
}

func buildHoverText(doc *document, sp *span) string {
	var (
		schema ir.Schema
		rs     ir.RuleSet
	)
	if doc.parsed != nil {
		schema = doc.parsed.Schema
		rs = doc.parsed.Validations
	}
	var parts []string
	switch sp.attr {
	case encode.FieldColor:
		if sp.path == "" {
			return ""
		}
		parts = append(parts, fmt.Sprintf("**Field:** `%s`", sp.path))
		n := schema.Resolve(sp.path)
		if n == nil {
			parts = append(parts, "not declared in the schema")
			break
		}
		parts = append(parts, fmt.Sprintf("**Type:** `%s`", n.Types))
		if rn := rs.Lookup(sp.path); rn != nil && len(rn.Rules) != 0 {
			parts = append(parts, fmt.Sprintf("**Rules:** `%s`", ruleList(rn)))
		}
	case encode.RuleColor:
		r, ok := rules.Lookup(sp.text)
		if !ok {
			return fmt.Sprintf("unknown rule `%s`", sp.text)
		}
		applies := "any type"
		if ts := r.Types(); ts != nil {
			applies = "`" + ts.String() + "`"
		}
		parts = append(parts, fmt.Sprintf("**Rule:** `%s`", r), "**Applies to:** "+applies)
	case encode.TypeColor:
		t, ok := ir.ParseType(sp.text)
		if !ok {
			return fmt.Sprintf("unknown type `%s`", sp.text)
		}
		parts = append(parts, fmt.Sprintf("**Type:** `%s`", t))
		if e, ok := t.Elem(); ok {
			parts = append(parts, fmt.Sprintf("array of `%s`", e))
		}
	case encode.MarkerColor:
		if sp.kind != ir.NumberKind || doc.parsed == nil {
			return ""
		}
		return recordHover(doc, sp)
	case encode.ValueColor:
		parts = append(parts, fmt.Sprintf("**Value:** %s", sp.kind))
	default:
		return ""
	}
	return strings.Join(parts, "\n\n")
}

func ruleList(rn *ir.RuleNode) string {
	var clauses []string
	for _, r := range rules.All() {
		if rv, ok := rn.Rules[r.String()]; ok {
			clauses = append(clauses, r.String()+"="+encode.RuleText(r, rv))
		}
	}
	return strings.Join(clauses, ", ")
}

func recordHover(doc *document, sp *span) string {
	for _, rec := range doc.parsed.Records {
		if rec.Line != sp.line+1 {
			continue
		}
		parts := []string{
			fmt.Sprintf("**Record:** `#%d`", rec.Index),
			fmt.Sprintf("%d fields", rec.Fields.Len()),
		}
		if doc.result != nil {
			n := 0
			for _, e := range doc.result.Errors {
				if e.Record != nil && *e.Record == rec.Index {
					n++
				}
			}
			if n != 0 {
				parts = append(parts, fmt.Sprintf("%d validation errors", n))
			}
		}
		return strings.Join(parts, "\n\n")
	}
	return ""
}
