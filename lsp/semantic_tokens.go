package lsp

import (
	"context"
	"slices"

	"github.com/ldoc-format/ldoc/encode"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/parse"

	"go.lsp.dev/protocol"
)

var tokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenComment,
	protocol.SemanticTokenKeyword,
	protocol.SemanticTokenString,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenOperator,
	protocol.SemanticTokenProperty,
	protocol.SemanticTokenType,
	protocol.SemanticTokenFunction,
}

var tokenModifiers = []protocol.SemanticTokenModifiers{
	protocol.SemanticTokenModifierDefinition,
}

func mapColorToSemanticTokenType(kind ir.Kind, attr encode.ColorAttr) protocol.SemanticTokenTypes {
	switch attr {
	case encode.CommentColor:
		return protocol.SemanticTokenComment
	case encode.MarkerColor:
		return protocol.SemanticTokenKeyword
	case encode.FieldColor:
		return protocol.SemanticTokenProperty
	case encode.TypeColor:
		return protocol.SemanticTokenType
	case encode.RuleColor:
		return protocol.SemanticTokenFunction
	case encode.SepColor:
		return protocol.SemanticTokenOperator
	case encode.ValueColor:
		switch kind {
		case ir.NumberKind:
			return protocol.SemanticTokenNumber
		case ir.BooleanKind, ir.NullKind, ir.UndefinedKind:
			return protocol.SemanticTokenKeyword
		}
		return protocol.SemanticTokenString
	}
	return protocol.SemanticTokenString
}

// schema field keys are definitions
func tokenModifierBits(sp *span) uint32 {
	if sp.attr == encode.FieldColor && sp.section == parse.SchemaSection {
		return 1
	}
	return 0
}

func (s *Server) collectSemanticTokens(doc *document, from, to int) []uint32 {
	tokens := []uint32{}
	prevLine, prevChar := 0, 0
	for i := range doc.spans {
		sp := &doc.spans[i]
		if sp.line < from || sp.line > to {
			continue
		}
		line := lineAt(doc.lines, sp.line)
		char := utf16Len(line[:sp.start])
		length := utf16Len(line[sp.start:sp.end])
		tokenType := uint32(slices.Index(tokenTypes, mapColorToSemanticTokenType(sp.kind, sp.attr)))

		deltaLine := sp.line - prevLine
		deltaChar := char
		if deltaLine == 0 {
			deltaChar = char - prevChar
		}
		tokens = append(tokens, uint32(deltaLine), uint32(deltaChar), uint32(length), tokenType, tokenModifierBits(sp))
		prevLine = sp.line
		prevChar = char
	}
	return tokens
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{Data: s.collectSemanticTokens(doc, 0, len(doc.lines))}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	rng := params.Range
	return &protocol.SemanticTokens{Data: s.collectSemanticTokens(doc, int(rng.Start.Line), int(rng.End.Line))}, nil
}
