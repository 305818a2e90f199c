package records

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/ldoc-format/ldoc/debug"
	"github.com/ldoc-format/ldoc/diag"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/token"
)

var headRe = regexp.MustCompile(`^#(\d+)\s*->(.*)$`)

// IsHead reports whether line starts a record, as in `#3 -> ...`.
func IsHead(line string) bool {
	return headRe.MatchString(strings.TrimSpace(line))
}

// Compile reads records from cur, which must be positioned after
// `@records`, up to the next section marker. A record may span several
// physical lines while any bracket, brace or parenthesis is open. A
// malformed record is reported and dropped; compilation resumes at the
// next record head.
func Compile(cur token.Cursor, opts ...Option) ([]*ir.Record, token.Cursor, []diag.Diagnostic) {
	o := &options{limit: DefaultLimit, maxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(o)
	}
	diags := diag.NewList(o.maxErrors)
	var (
		recs    []*ir.Record
		skipped int
	)
	for !cur.Done() {
		ln, no := cur.Line()
		k := token.Classify(ln)
		if k.IsMarker() || k == token.KStrict {
			break
		}
		cur = cur.Advance()
		if k.Skippable() {
			continue
		}
		line := strings.TrimSpace(ln)
		m := headRe.FindStringSubmatch(line)
		if m == nil {
			diags.Addf(no, "Invalid record line '%s': expected '#<n> -> field(value);'", line)
			continue
		}
		var (
			text string
			ok   bool
		)
		text, cur, ok = gather(m[2], cur)
		if !ok {
			diags.Addf(no, "Unterminated record #%s", m[1])
			continue
		}
		if o.limit >= 0 && len(recs) >= o.limit {
			skipped++
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			diags.Addf(no, "Invalid record index '#%s'", m[1])
			continue
		}
		rec := ir.NewRecord(idx, no)
		p := &parser{s: text, maxDepth: o.maxDepth}
		if err := p.terms(0, 0, rec.Fields.Set); err != nil {
			var se *syntaxError
			at := no
			if errors.As(err, &se) {
				at += strings.Count(text[:min(se.off, len(text))], "\n")
			}
			diags.Addf(at, "Invalid record #%d: %v", idx, err)
			continue
		}
		recs = append(recs, rec)
	}
	if debug.Records() {
		debug.Logf("compiled %d records (%d over limit) to line %d\n", len(recs), skipped, cur.LineNo())
	}
	return recs, cur, diags.Items()
}

// gather joins continuation lines to the text of a record head until its
// structure is closed. It stops without consuming at a section marker or
// at the next record head, returning false.
func gather(text string, cur token.Cursor) (string, token.Cursor, bool) {
	var b strings.Builder
	b.WriteString(text)
	for OpenDepth(b.String()) > 0 {
		if cur.Done() {
			return "", cur, false
		}
		ln, _ := cur.Line()
		k := token.Classify(ln)
		if k.IsMarker() || k == token.KStrict || IsHead(ln) {
			return "", cur, false
		}
		cur = cur.Advance()
		if k == token.KComment {
			continue
		}
		b.WriteByte('\n')
		b.WriteString(ln)
	}
	return b.String(), cur, true
}
