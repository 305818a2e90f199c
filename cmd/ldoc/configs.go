package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ldoc-format/ldoc/encode"
	"github.com/ldoc-format/ldoc/format"
	"github.com/ldoc-format/ldoc/parse"
	"github.com/ldoc-format/ldoc/records"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='encode with color'"`
	Indent int  `cli:"name=indent desc='indentation of nested output'"`

	T bool `cli:"name=t aliases=text desc='output text'"`
	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// format is the output format settled by ldocMain, text by default.
func (cfg *MainConfig) format() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return format.TextFormat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.format()),
	}
	if cfg.Indent > 0 {
		res = append(res, encode.Indent(cfg.Indent))
	}
	if !cfg.format().IsText() {
		return res
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ParseConfig struct {
	*MainConfig
	Section string `cli:"name=section aliases=s desc='parse only this section: schema, validations or records'"`
	Limit   int    `cli:"name=limit aliases=n desc='max records compiled, negative for no limit'"`
	Errors  int    `cli:"name=errors desc='max diagnostics kept per section'"`

	Parse *cli.Command
}

func (cfg *ParseConfig) parseOpts(file string) ([]parse.ParseOption, error) {
	sec, err := parse.ParseSectionName(cfg.Section)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	res := []parse.ParseOption{
		parse.ParseSection(sec),
		parse.ParseRecordLimit(cfg.Limit),
		parse.ParseFilename(file),
	}
	if cfg.Errors > 0 {
		res = append(res, parse.ParseMaxErrors(cfg.Errors))
	}
	return res, nil
}

type CheckConfig struct {
	*MainConfig
	Limit int  `cli:"name=limit aliases=n desc='max records compiled, negative for no limit'"`
	Quiet bool `cli:"name=q aliases=quiet desc='only set the exit status'"`

	Check *cli.Command
}

type ValidateConfig struct {
	*MainConfig
	Strict    bool   `cli:"name=strict desc='report fields the schema does not declare'"`
	Patch     string `cli:"name=patch aliases=p desc='json patch file applied to each data file'"`
	MaxErrors int    `cli:"name=max desc='stop after this many errors per input'"`

	Validate *cli.Command
}

type RenumberConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write result to the file instead of output'"`
	Diff  bool `cli:"name=diff desc='show the changed lines as a diff'"`
	Start int  `cli:"name=start desc='index of the first record'"`

	Renumber *cli.Command
}

type LSPConfig struct {
	*MainConfig
	Gops    bool `cli:"name=gops desc='start a gops agent'"`
	Verbose bool `cli:"name=v desc='log requests to stderr'"`

	LSP *cli.Command
}

func newParseConfig(mainCfg *MainConfig) *ParseConfig {
	return &ParseConfig{MainConfig: mainCfg, Limit: records.DefaultLimit}
}
