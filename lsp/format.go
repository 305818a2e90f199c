package lsp

import (
	"context"
	"strings"

	"github.com/ldoc-format/ldoc/renumber"

	"go.lsp.dev/protocol"
)

// Formatting renumbers the record heads of the document.
func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	res := renumber.Renumber(doc.content)
	if len(res.Changes) == 0 {
		return []protocol.TextEdit{}, nil
	}
	s.log.Debug("renumbered", "uri", doc.uri, "changes", len(res.Changes))

	lines := strings.Split(doc.content, "\n")
	edits := make([]protocol.TextEdit, 0, len(res.Changes))
	newLines := strings.Split(res.Text, "\n")
	for _, c := range res.Changes {
		i := c.Line - 1
		edits = append(edits, protocol.TextEdit{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(i), Character: 0},
				End:   protocol.Position{Line: uint32(i), Character: uint32(utf16Len(lines[i]))},
			},
			NewText: newLines[i],
		})
	}
	return edits, nil
}
