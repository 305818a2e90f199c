package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/ldoc-format/ldoc/format"

	"github.com/scott-cotton/cli"
)

// exitFailed is the status of a run that found diagnostics or invalid
// data. Its report has already been written.
const exitFailed = 1

func ldocMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer cfg.closeOut()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.settleFormat(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	switch {
	case errors.Is(err, cli.ErrUsage):
		sub.Usage(cc, err)
		cfg.closeOut()
		os.Exit(sub.Exit(cc, err))
	case failed(err):
		fmt.Fprintf(os.Stderr, "ldoc %s: %v\n", args[0], err)
		cfg.closeOut()
		os.Exit(exitFailed)
	}
	return err
}

// failed reports whether err only says that documents or data did not
// pass, as opposed to the command not running.
func failed(err error) bool {
	return errors.Is(err, errProblems) || errors.Is(err, errInvalid)
}

// settleFormat turns the -t, -j and -y flags into OutFormat. At most one
// may be given and it must agree with -O.
func (cfg *MainConfig) settleFormat() error {
	var names []string
	for name, on := range map[string]bool{"text": cfg.T, "json": cfg.J, "yaml": cfg.Y} {
		if on {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	switch len(names) {
	case 0:
		return nil
	case 1:
	default:
		return fmt.Errorf("%w: conflicting output formats %v", cli.ErrUsage, names)
	}
	f, err := format.ParseFormat(names[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if cfg.OutFormat != nil && *cfg.OutFormat != f {
		return fmt.Errorf("%w: -%s conflicts with -O %s", cli.ErrUsage, names[0][:1], cfg.OutFormat)
	}
	cfg.OutFormat = &f
	return nil
}

func (cfg *MainConfig) closeOut() {
	if cfg.CloseOut == nil {
		return
	}
	cfg.CloseOut()
	cfg.CloseOut = nil
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.Create(a)
	if err != nil {
		return nil, fmt.Errorf("could not create output %q: %w", a, err)
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
