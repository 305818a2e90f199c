package lsp

import (
	"context"
	"regexp"
	"strconv"
	"sync"

	"github.com/ldoc-format/ldoc/diag"
	"github.com/ldoc-format/ldoc/parse"
	"github.com/ldoc-format/ldoc/token"
	"github.com/ldoc-format/ldoc/validate"

	"go.lsp.dev/protocol"
)

const source = "ldoc"

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	lines   []string
	spans   []span
	// parsed is nil when parsing failed with err.
	parsed *parse.Document
	result *validate.Result
	err    error
}

func newDocumentStore() *documentStore {
	return &documentStore{docs: map[string]*document{}}
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	doc := &document{
		uri:     uri,
		content: content,
		version: version,
		lines:   token.SplitLines(content),
		spans:   scan(content),
	}
	doc.parsed, doc.err = parse.ParseString(content, parse.ParseFilename(uri))
	if doc.parsed != nil {
		doc.result = doc.parsed.Validate()
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	return doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, doc *document) {
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(doc.uri),
		Diagnostics: diagnostics(doc),
	})
	if err != nil {
		s.log.Error("publish diagnostics", "uri", doc.uri, "error", err)
	}
}

var fatalLineRe = regexp.MustCompile(`line (\d+):`)

// diagnostics converts parse diagnostics, the structural error and
// validation errors of the records to LSP diagnostics.
func diagnostics(doc *document) []protocol.Diagnostic {
	res := []protocol.Diagnostic{}
	if doc.err != nil {
		line := 0
		if m := fatalLineRe.FindStringSubmatch(doc.err.Error()); m != nil {
			line, _ = strconv.Atoi(m[1])
		}
		return append(res, lineDiagnostic(doc, line, protocol.DiagnosticSeverityError, doc.err.Error()))
	}
	for _, d := range doc.parsed.Errors.All() {
		res = append(res, lineDiagnostic(doc, d.Line, protocol.DiagnosticSeverityError, d.Message))
	}
	if doc.result == nil {
		return res
	}
	lines := map[int]int{}
	for _, r := range doc.parsed.Records {
		lines[r.Index] = r.Line
	}
	for _, e := range doc.result.Errors {
		res = append(res, lineDiagnostic(doc, recordLine(lines, e), protocol.DiagnosticSeverityWarning, e.Message))
	}
	return res
}

func recordLine(lines map[int]int, e diag.FieldError) int {
	if e.Record == nil {
		return 0
	}
	return lines[*e.Record]
}

// lineDiagnostic covers the whole of a 1-based line; 0 selects the first
// line.
func lineDiagnostic(doc *document, line int, sev protocol.DiagnosticSeverity, msg string) protocol.Diagnostic {
	if line > 0 {
		line--
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: 0},
			End:   protocol.Position{Line: uint32(line), Character: uint32(utf16Len(lineAt(doc.lines, line)))},
		},
		Severity: sev,
		Message:  msg,
		Source:   source,
	}
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.log.Debug("open", "uri", doc.uri, "version", doc.version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}

	content := doc.content
	for _, change := range params.ContentChanges {
		rng := change.Range
		if rng.Start.Line == 0 && rng.Start.Character == 0 && rng.End.Line == 0 && rng.End.Character == 0 {
			content = change.Text
			continue
		}
		start := lineColToOffset(content, int(rng.Start.Line), int(rng.Start.Character))
		end := lineColToOffset(content, int(rng.End.Line), int(rng.End.Character))
		if start <= end && end <= len(content) {
			content = content[:start] + change.Text + content[end:]
		}
	}

	doc = s.docs.put(doc.uri, content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}
