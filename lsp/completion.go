package lsp

import (
	"context"
	"strings"

	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/parse"
	"github.com/ldoc-format/ldoc/rules"
	"github.com/ldoc-format/ldoc/token"

	"go.lsp.dev/protocol"
)

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	line := int(params.Position.Line)
	text := lineAt(doc.lines, line)
	prefix := text[:byteOffset(text, int(params.Position.Character))]
	return &protocol.CompletionList{Items: complete(doc, sectionAt(doc.lines, line), prefix)}, nil
}

// sectionAt returns the section open at line, by scanning the markers
// before it.
func sectionAt(lines []string, line int) parse.Section {
	sec := parse.AllSections
	for i := 0; i < line && i < len(lines); i++ {
		switch k := token.Classify(lines[i]); k {
		case token.KSchema, token.KValidations, token.KRecords:
			sec = sectionOf(k)
		case token.KEnd:
			sec = parse.AllSections
		}
	}
	return sec
}

func complete(doc *document, sec parse.Section, prefix string) []protocol.CompletionItem {
	word := wordBefore(prefix, len(prefix))
	items := []protocol.CompletionItem{}
	add := func(label string, kind protocol.CompletionItemKind, detail, insert string) {
		if !strings.HasPrefix(label, word) {
			return
		}
		items = append(items, protocol.CompletionItem{
			Label:      label,
			Kind:       kind,
			Detail:     detail,
			InsertText: insert,
		})
	}
	var schema ir.Schema
	if doc.parsed != nil {
		schema = doc.parsed.Schema
	}
	afterArrow := strings.Contains(prefix, token.Arrow)
	trimmed := strings.TrimSpace(prefix)

	switch {
	case sec == parse.AllSections || strings.HasPrefix(trimmed, "@"):
		for _, m := range []string{token.SchemaMarker, token.ValidationsMarker, token.RecordsMarker, token.EndMarker} {
			add(m, protocol.CompletionItemKindKeyword, "section marker", m)
		}
		if sec == parse.AllSections {
			add(token.StrictPrefix+"TRUE", protocol.CompletionItemKindKeyword, "strict mode", token.StrictPrefix+"TRUE")
		}
	case sec == parse.SchemaSection && afterArrow:
		for _, t := range ir.Types() {
			add(t.String(), protocol.CompletionItemKindTypeParameter, "type", t.String())
		}
	case sec == parse.ValidationsSection && afterArrow:
		path, _, _ := token.SplitArrow(prefix)
		n := schema.Resolve(strings.TrimSpace(path))
		for _, r := range rules.All() {
			if n != nil && !r.ApplicableTo(n.Types) {
				continue
			}
			detail := "any type"
			if ts := r.Types(); ts != nil {
				detail = ts.String()
			}
			add(r.String(), protocol.CompletionItemKindFunction, detail, r.String()+"=")
		}
	case sec == parse.ValidationsSection:
		walkSchema(schema, "", func(path string, n *ir.SchemaNode) {
			add(path, protocol.CompletionItemKindField, n.Types.String(), path+" "+token.Arrow+" ")
		})
	case sec == parse.RecordsSection:
		for _, k := range schema.Keys() {
			n := schema[k]
			insert := k + "()"
			switch {
			case n.Properties != nil:
				insert = k + "{ }"
			case n.Items != nil || n.Types.HasAny(arrayTypes...):
				insert = k + "[ ]"
			}
			add(k, protocol.CompletionItemKindField, n.Types.String(), insert)
		}
	}
	return items
}

var arrayTypes = func() []ir.Type {
	var res []ir.Type
	for _, t := range ir.Types() {
		if t.IsArray() {
			res = append(res, t)
		}
	}
	return res
}()

func walkSchema(s ir.Schema, prefix string, f func(string, *ir.SchemaNode)) {
	for _, k := range s.Keys() {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		n := s[k]
		f(path, n)
		walkSchema(n.Children(), path, f)
	}
}
