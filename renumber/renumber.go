package renumber

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ldoc-format/ldoc/records"
	"github.com/ldoc-format/ldoc/token"
)

var headRe = regexp.MustCompile(`^(\s*#)(\d+)(\s*->)(.*)$`)

// Change is one rewritten record head.
type Change struct {
	Line int `json:"line" yaml:"line"`
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

type Result struct {
	Text    string   `json:"-" yaml:"-"`
	Records int      `json:"records" yaml:"records"`
	Changes []Change `json:"changes,omitempty" yaml:"changes,omitempty"`
}

type options struct {
	start int
}

type Option func(*options)

// Start sets the index of the first record, 0 by default.
func Start(n int) Option {
	return func(o *options) { o.start = n }
}

// Renumber renumbers the record heads of text. Line endings and all
// other lines are preserved.
func Renumber(text string, opts ...Option) *Result {
	o := &options{}
	for _, f := range opts {
		f(o)
	}
	lines := strings.SplitAfter(text, "\n")
	res := &Result{}
	next := o.start
	inRecords := false
	depth := 0
	var pending strings.Builder
	for i, ln := range lines {
		body := strings.TrimRight(ln, "\r\n")
		k := token.Classify(body)
		if depth > 0 && !k.IsMarker() && k != token.KStrict && !records.IsHead(body) {
			pending.WriteString("\n")
			pending.WriteString(body)
			depth = records.OpenDepth(pending.String())
			continue
		}
		depth = 0
		switch {
		case k == token.KRecords:
			inRecords = true
			continue
		case k.IsMarker() || k == token.KStrict:
			inRecords = false
			continue
		case !inRecords:
			continue
		}
		m := headRe.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		res.Records++
		from, err := strconv.Atoi(m[2])
		if err != nil || from != next {
			res.Changes = append(res.Changes, Change{Line: i + 1, From: from, To: next})
			lines[i] = m[1] + strconv.Itoa(next) + m[3] + m[4] + ln[len(body):]
		}
		next++
		pending.Reset()
		pending.WriteString(m[4])
		depth = records.OpenDepth(m[4])
	}
	res.Text = strings.Join(lines, "")
	return res
}
