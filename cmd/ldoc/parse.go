package main

import (
	"fmt"

	"github.com/ldoc-format/ldoc/encode"
	"github.com/ldoc-format/ldoc/parse"

	"github.com/scott-cotton/cli"
)

func parseFiles(cfg *ParseConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	for i, file := range files {
		opts, err := cfg.parseOpts(file)
		if err != nil {
			return err
		}
		d, err := readInput(cc, file)
		if err != nil {
			return err
		}
		doc, err := parse.Parse(d, opts...)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", file, err)
		}
		if err := encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
		if i < len(files)-1 {
			cc.Out.Write([]byte("\n"))
		}
	}
	return nil
}
