package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ldoc-format/ldoc/encode"
	"github.com/ldoc-format/ldoc/format"
	"github.com/ldoc-format/ldoc/parse"
	"github.com/ldoc-format/ldoc/validate"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

var errInvalid = errors.New("invalid")

func validateFiles(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("%w: validate requires a document", cli.ErrUsage)
	}
	docFile, dataFiles := args[0], args[1:]
	d, err := readInput(cc, docFile)
	if err != nil {
		return err
	}
	doc, err := parse.Parse(d, parse.ParseRecordLimit(-1), parse.ParseFilename(docFile))
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", docFile, err)
	}
	if !doc.Valid() {
		encode.EncodeDiagnostics(docFile, doc.Errors.All(), os.Stderr)
	}
	vOpts := []validate.Option{
		validate.Strict(cfg.Strict),
		validate.MaxErrors(cfg.MaxErrors),
	}
	if len(dataFiles) == 0 {
		if cfg.Patch != "" {
			return fmt.Errorf("%w: -patch requires data files", cli.ErrUsage)
		}
		return report(cfg, cc, docFile, doc.Validate(vOpts...))
	}
	var patch jsonpatch.Patch
	if cfg.Patch != "" {
		if err := patchable(dataFiles); err != nil {
			return err
		}
		p, err := os.ReadFile(cfg.Patch)
		if err != nil {
			return fmt.Errorf("could not read patch %q: %w", cfg.Patch, err)
		}
		patch, err = decodePatch(p)
		if err != nil {
			return fmt.Errorf("error decoding patch %s: %w", cfg.Patch, err)
		}
	}
	v := validate.New(vOpts...)
	var errs []error
	for _, file := range dataFiles {
		data, err := loadData(cc, file, patch)
		if err != nil {
			return err
		}
		res := validateData(v, doc, data)
		if len(dataFiles) > 1 && cfg.format().IsText() {
			fmt.Fprintf(cc.Out, "%s:\n", file)
		}
		errs = append(errs, report(cfg, cc, file, res))
	}
	return errors.Join(errs...)
}

func report(cfg *ValidateConfig, cc *cli.Context, name string, res *validate.Result) error {
	if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s: %d errors", errInvalid, name, len(res.Errors))
	}
	return nil
}

// decodePatch reads a json patch given in json or yaml.
func decodePatch(d []byte) (jsonpatch.Patch, error) {
	if !json.Valid(d) {
		j, err := yaml.YAMLToJSON(d)
		if err != nil {
			return nil, err
		}
		d = j
	}
	return jsonpatch.DecodePatch(d)
}

// patchable rejects ldoc data files: json patches apply to json, which
// has no dates, buffers or undefined values.
func patchable(files []string) error {
	for _, file := range files {
		if f, ok := format.FromFilename(file); ok && f.IsText() {
			return fmt.Errorf("%w: -patch does not apply to ldoc data %s", cli.ErrUsage, file)
		}
	}
	return nil
}

// loadData reads a yaml, json or ldoc data file and applies patch to
// yaml and json data. The data of an ldoc file is the array of its
// records.
func loadData(cc *cli.Context, file string, patch jsonpatch.Patch) (any, error) {
	d, err := readInput(cc, file)
	if err != nil {
		return nil, err
	}
	var data any
	if f, ok := format.FromFilename(file); ok && f.IsText() {
		data, err = recordData(d, file)
	} else {
		data, err = decodeData(d, patch)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", file, err)
	}
	return data, nil
}

func recordData(d []byte, file string) (any, error) {
	doc, err := parse.Parse(d, parse.ParseRecordsOnly(), parse.ParseRecordLimit(-1), parse.ParseFilename(file))
	if err != nil {
		return nil, err
	}
	if !doc.Valid() {
		return nil, fmt.Errorf("%d diagnostics, first: %s", doc.Errors.Len(), doc.Errors.All()[0])
	}
	data := make([]any, len(doc.Records))
	for i, r := range doc.Records {
		data[i] = r
	}
	return data, nil
}

func decodeData(d []byte, patch jsonpatch.Patch) (any, error) {
	var data any
	if err := yaml.Unmarshal(d, &data); err != nil {
		return nil, err
	}
	if patch == nil {
		return data, nil
	}
	j, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return applyPatch(j, patch)
}

func applyPatch(j []byte, patch jsonpatch.Patch) (any, error) {
	j, err := patch.Apply(j)
	if err != nil {
		return nil, fmt.Errorf("error patching: %w", err)
	}
	var data any
	if err := yaml.Unmarshal(j, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// validateData checks data against doc. The elements of an array are
// checked one by one and their errors carry the element index.
func validateData(v *validate.Validator, doc *parse.Document, data any) *validate.Result {
	in := validate.Input{Schema: doc.Schema, Rules: doc.Validations}
	elts, ok := data.([]any)
	if !ok {
		in.Data = data
		return v.Validate(in)
	}
	res := &validate.Result{Valid: true}
	for i, elt := range elts {
		in.Data = elt
		r := v.Validate(in)
		for _, e := range r.Errors {
			idx := i
			e.Record = &idx
			res.Errors = append(res.Errors, e)
		}
		res.Valid = res.Valid && r.Valid
	}
	return res
}
