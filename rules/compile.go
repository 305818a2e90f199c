package rules

import (
	"strings"

	"github.com/ldoc-format/ldoc/debug"
	"github.com/ldoc-format/ldoc/diag"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/literal"
	"github.com/ldoc-format/ldoc/token"
)

// ClauseSeparators split the rule clauses of a line.
const ClauseSeparators = ",;"

type compiler struct {
	schema ir.Schema
	diags  *diag.List
	rs     ir.RuleSet
}

// Compile reads `dot.path -> rule=value, ...` lines from cur, which must
// be positioned after `@validations`, up to the next section marker.
// Every rule is checked against the type of the field it names in s; a
// line with any diagnostic contributes nothing to the rule set.
func Compile(cur token.Cursor, s ir.Schema, opts ...Option) (ir.RuleSet, token.Cursor, []diag.Diagnostic) {
	o := &options{}
	for _, f := range opts {
		f(o)
	}
	c := &compiler{schema: s, diags: diag.NewList(o.maxErrors), rs: ir.RuleSet{}}
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
		c.line(strings.TrimSpace(ln), no)
	}
	if debug.Rules() {
		debug.Logf("rules compiled to line %d: %v\n", cur.LineNo(), c.rs)
	}
	return c.rs, cur, c.diags.Items()
}

// line compiles one declaration. Diagnostics are counted locally so the
// line is still rejected once the list is full.
func (c *compiler) line(line string, no int) {
	path, rhs, ok := token.SplitArrow(line)
	if !ok || path == "" {
		c.diags.Addf(no, "Invalid validation line '%s': expected 'field -> rule=value'", line)
		return
	}
	node := c.schema.Resolve(path)
	if node == nil {
		c.diags.Addf(no, "Field '%s' is not defined in the schema", path)
		return
	}
	bad := 0
	fail := func(msg string, args ...any) {
		bad++
		c.diags.Addf(no, msg, args...)
	}
	res := map[string]ir.RuleValue{}
	for _, clause := range literal.SplitTop(rhs, ClauseSeparators) {
		if clause == "" {
			continue
		}
		name, val, ok := strings.Cut(clause, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			fail("Invalid rule clause '%s': expected rule=value", clause)
			continue
		}
		r, ok := Lookup(name)
		if !ok {
			fail("Unknown validation rule: %s (rule '%s' is not defined)", name, name)
			continue
		}
		v, ok := literal.ParseRule(val, r.Mode())
		if !ok || !r.AcceptsValue(v) {
			fail("invalid format for value of '%s' in '%s'", name, clause)
			continue
		}
		if !r.ApplicableTo(node.Types) {
			fail("Rule '%s' is not applicable to '%s' of type %s", name, path, node.Types)
			continue
		}
		if node.Types.Has(ir.ObjectArrayType) && !r.ApplicableTo(ir.TypeSet{ir.ObjectType}) {
			fail("Rule '%s' can not be applied to the items of '%s'", name, path)
			continue
		}
		switch r {
		case Default, IsEqualTo:
			if !ValueMatches(v, node.Types) {
				fail("Value %s of '%s' does not match the type %s of '%s'", v.Text(), name, node.Types, path)
				continue
			}
		case MatchesField:
			if c.schema.Resolve(v.String) == nil {
				fail("Field '%s' referenced by '%s' is not defined in the schema", v.String, path)
				continue
			}
		}
		res[name] = v
	}
	if bad != 0 || len(res) == 0 {
		return
	}
	c.rs.Merge(path, res)
}
