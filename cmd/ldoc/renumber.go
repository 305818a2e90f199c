package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ldoc-format/ldoc/encode"
	"github.com/ldoc-format/ldoc/renumber"

	"github.com/scott-cotton/cli"
)

func renumberFiles(cfg *RenumberConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Renumber.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires files", cli.ErrUsage)
	}
	log := newLog(os.Stderr, slog.LevelInfo)
	for _, file := range inputs(args) {
		d, err := readInput(cc, file)
		if err != nil {
			return err
		}
		res := renumber.Renumber(string(d), renumber.Start(cfg.Start))
		switch {
		case cfg.Diff:
			io.WriteString(cc.Out, renumber.Diff(file, string(d), res.Text))
		case cfg.Write:
			if len(res.Changes) == 0 {
				continue
			}
			if err := writeFile(file, res.Text); err != nil {
				return err
			}
			log.Info("renumbered", "file", file, "records", res.Records, "changes", len(res.Changes))
		case cfg.format().IsText():
			io.WriteString(cc.Out, res.Text)
		default:
			if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeFile(file, text string) error {
	fi, err := os.Stat(file)
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, []byte(text), fi.Mode().Perm()); err != nil {
		return fmt.Errorf("could not write %q: %w", file, err)
	}
	return nil
}
