package validate

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/expr-lang/expr/vm"
	"github.com/ldoc-format/ldoc/debug"
	"github.com/ldoc-format/ldoc/diag"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/rules"
)

// Input is what Validate checks: Data against Schema (shape) and
// against Rules. Either may be nil to skip that pass. With Strict, data
// fields that Schema does not declare are errors.
type Input struct {
	Schema ir.Schema
	Rules  ir.RuleSet
	Data   any
	Strict bool
}

type Result struct {
	Valid  bool              `json:"valid" yaml:"valid"`
	Errors []diag.FieldError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Validator checks data against compiled schemas and rule sets. The error
// list is reset on every call, so a Validator may be reused but not
// shared by concurrent calls.
type Validator struct {
	opts options

	errs   []diag.FieldError
	root   map[string]any
	record *int

	// values seen per dot-path for isUnique across a batch of records
	unique map[string]map[string]int

	programs map[string]*vm.Program
	patterns map[string]*regexp.Regexp
}

func New(opts ...Option) *Validator {
	v := &Validator{
		opts:     options{maxDepth: DefaultMaxDepth},
		programs: map[string]*vm.Program{},
		patterns: map[string]*regexp.Regexp{},
	}
	for _, f := range opts {
		f(&v.opts)
	}
	return v
}

// Validate runs a fresh Validator over in.
func Validate(in Input, opts ...Option) *Result {
	return New(opts...).Validate(in)
}

// Validate checks one value.
func (v *Validator) Validate(in Input) *Result {
	v.reset()
	v.check(in.Schema, in.Rules, in.Data, in.Strict || v.opts.strict)
	return v.result()
}

// ValidateRecords checks every record against s and rs. Scalars with the
// isUnique rule must be unique across the records.
func (v *Validator) ValidateRecords(s ir.Schema, rs ir.RuleSet, recs []*ir.Record) *Result {
	v.reset()
	v.unique = map[string]map[string]int{}
	for _, rec := range recs {
		idx := rec.Index
		v.record = &idx
		v.check(s, rs, rec, v.opts.strict)
	}
	v.record = nil
	v.unique = nil
	return v.result()
}

func (v *Validator) reset() {
	v.errs = nil
	v.root = nil
	v.record = nil
	v.unique = nil
}

func (v *Validator) result() *Result {
	res := &Result{Valid: len(v.errs) == 0, Errors: v.errs}
	if debug.Validate() {
		debug.Logf("validated: %d errors\n", len(v.errs))
	}
	v.errs = nil
	return res
}

func (v *Validator) check(s ir.Schema, rs ir.RuleSet, data any, strict bool) {
	if s == nil && rs == nil {
		return
	}
	n := &normalizer{
		max: v.opts.maxDepth,
		deep: func(path string) {
			v.addf(path, "", "%s is nested deeper than %d", path, v.opts.maxDepth)
		},
	}
	data = n.value(data, "", 0)
	obj, ok := data.(map[string]any)
	if !ok {
		v.addf("", "", "data should be an Object, got %s", kindName(data))
		return
	}
	v.root = obj
	if s != nil {
		v.shape(s, obj, "", strict, 0)
	}
	if rs != nil {
		v.rules(rs, obj, "", 0)
	}
	v.root = nil
}

func (v *Validator) addf(field, rule, format string, args ...any) {
	if v.opts.maxErrors > 0 && len(v.errs) >= v.opts.maxErrors {
		return
	}
	e := diag.FieldError{
		Field:   field,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	}
	if v.record != nil {
		idx := *v.record
		e.Record = &idx
	}
	v.errs = append(v.errs, e)
}

func join(prefix, k string) string {
	if prefix == "" {
		return k
	}
	return prefix + "." + k
}

func index(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}

// shape checks the declared fields present in obj against their types.
// Undefined values count as absent.
func (v *Validator) shape(s ir.Schema, obj map[string]any, prefix string, strict bool, depth int) {
	if depth > v.opts.maxDepth {
		return
	}
	for _, k := range s.Keys() {
		node := s[k]
		val, present := obj[k]
		if isMissing(val, present) {
			continue
		}
		path := join(prefix, k)
		if !matchesAny(val, node.Types) {
			v.addf(path, "", "%s should be of type %s, got %s", path, node.Types, kindName(val))
			continue
		}
		switch x := val.(type) {
		case map[string]any:
			if node.Properties != nil {
				v.shape(node.Properties, x, path, strict, depth+1)
			}
		case []any:
			if node.Items == nil {
				continue
			}
			for i, e := range x {
				if m, ok := e.(map[string]any); ok {
					v.shape(node.Items.Properties, m, index(path, i), strict, depth+2)
				}
			}
		}
	}
	if !strict {
		return
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if s[k] == nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		path := join(prefix, k)
		v.addf(path, "", "%s is not defined in the schema", path)
	}
}

// rules evaluates each rule node against obj, in table order within a
// node, and recurses into nested objects and into each element of arrays.
func (v *Validator) rules(rs ir.RuleSet, obj map[string]any, prefix string, depth int) {
	if depth > v.opts.maxDepth {
		return
	}
	keys := make([]string, 0, len(rs))
	for k := range rs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		node := rs[k]
		path := join(prefix, k)
		val, present := obj[k]
		for _, r := range rules.All() {
			arg, ok := node.Rules[r.String()]
			if !ok {
				continue
			}
			c := &check{v: v, field: path, value: val, present: present, rule: r, arg: arg}
			c.run()
		}
		if len(node.Children) == 0 {
			continue
		}
		switch x := val.(type) {
		case map[string]any:
			v.rules(node.Children, x, path, depth+1)
		case []any:
			for i, e := range x {
				if m, ok := e.(map[string]any); ok {
					v.rules(node.Children, m, index(path, i), depth+2)
				}
			}
		}
	}
}

func (v *Validator) program(src string) (*vm.Program, error) {
	if p, ok := v.programs[src]; ok {
		return p, nil
	}
	p, err := rules.CompileCustom(src)
	if err != nil {
		return nil, err
	}
	v.programs[src] = p
	return p, nil
}

func (v *Validator) pattern(src string) (*regexp.Regexp, error) {
	if re, ok := v.patterns[src]; ok {
		return re, nil
	}
	re, err := rules.CompilePattern(src)
	if err != nil {
		return nil, err
	}
	v.patterns[src] = re
	return re, nil
}
