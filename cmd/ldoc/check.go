package main

import (
	"errors"
	"fmt"

	"github.com/ldoc-format/ldoc/diag"
	"github.com/ldoc-format/ldoc/encode"
	"github.com/ldoc-format/ldoc/parse"

	"github.com/scott-cotton/cli"
)

var errProblems = errors.New("problems found")

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	total := 0
	for _, file := range inputs(args) {
		d, err := readInput(cc, file)
		if err != nil {
			return err
		}
		ds := checkDoc(d, cfg.Limit, file)
		total += len(ds)
		if cfg.Quiet || len(ds) == 0 {
			continue
		}
		if err := encode.EncodeDiagnostics(file, ds, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	if total != 0 {
		return fmt.Errorf("%w: %d", errProblems, total)
	}
	return nil
}

// checkDoc returns the parse diagnostics of d followed by the
// validation errors of its records, placed at the record head lines.
func checkDoc(d []byte, limit int, file string) []diag.Diagnostic {
	doc, err := parse.Parse(d, parse.ParseRecordLimit(limit), parse.ParseFilename(file))
	if err != nil {
		return []diag.Diagnostic{diag.New(0, err.Error())}
	}
	ds := doc.Errors.All()
	lines := make(map[int]int, len(doc.Records))
	for _, r := range doc.Records {
		lines[r.Index] = r.Line
	}
	for _, e := range doc.Validate().Errors {
		line := 0
		if e.Record != nil {
			line = lines[*e.Record]
		}
		msg := e.Message
		if e.Rule != "" {
			msg = fmt.Sprintf("%s (%s): %s", e.Field, e.Rule, e.Message)
		}
		ds = append(ds, diag.New(line, msg))
	}
	return ds
}
