package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: text/t, json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "ldoc").
		WithSynopsis("ldoc [opts] command [opts]").
		WithDescription("ldoc is a tool for working with ldoc documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ldocMain(cfg, cc, args)
		}).
		WithSubs(
			ParseCommand(cfg),
			CheckCommand(cfg),
			ValidateCommand(cfg),
			RenumberCommand(cfg),
			LSPCommand(cfg))
}

func ParseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := newParseConfig(mainCfg)
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Parse, "parse").
		WithAliases("p").
		WithSynopsis("parse [-section s] [-limit n] [files]").
		WithDescription("parse documents and print the result").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return parseFiles(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg, Limit: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-q] [files]").
		WithDescription("print parse diagnostics and validation errors, failing if there are any").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("v", "val").
		WithSynopsis("validate [-strict] [-patch file] <doc> [data-files]").
		WithDescription(validateDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return validateFiles(cfg, cc, args)
		})
}

const validateDescription = `validate checks data against the schema and validations of an ldoc document.

With no data files, the records of the document itself are validated.

Data files hold yaml or json. A file holding an array is validated element
by element, anything else is validated as one value. With -patch, the RFC
6902 json patch in the given file is applied to each data file before it is
validated.`

func RenumberCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RenumberConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Renumber, "renumber").
		WithAliases("r", "renum").
		WithSynopsis("renumber [-w] [-diff] [-start n] [files]").
		WithDescription("renumber the record heads of documents in order").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return renumberFiles(cfg, cc, args)
		})
}

func LSPCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LSPConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.LSP, "lsp").
		WithSynopsis("lsp [-gops] [-v]").
		WithDescription("serve the language server protocol on stdin and stdout").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serveLSP(cfg, cc, args)
		})
}
