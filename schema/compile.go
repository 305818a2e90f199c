package schema

import (
	"strings"

	"github.com/ldoc-format/ldoc/debug"
	"github.com/ldoc-format/ldoc/diag"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/token"
)

type compiler struct {
	cur   token.Cursor
	diags *diag.List
	opts  *options
}

// Compile reads `key -> Type | Type` declarations from cur, which must be
// positioned after `@schema`, up to the next section marker (normally
// `@end`). The returned cursor is positioned on that marker.
func Compile(cur token.Cursor, opts ...Option) (ir.Schema, token.Cursor, []diag.Diagnostic) {
	o := &options{maxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(o)
	}
	c := &compiler{cur: cur, diags: diag.NewList(o.maxErrors), opts: o}
	s, _ := c.block(0, "", 0)
	if debug.Schema() {
		debug.Logf("schema compiled to line %d: %v\n", c.cur.LineNo(), s)
	}
	return s, c.cur, c.diags.Items()
}

// block reads declarations until `}` (nested blocks) or a section marker.
// closed is false when a nested block hit a marker before its `}`.
func (c *compiler) block(depth int, owner string, ownerLine int) (ir.Schema, bool) {
	s := ir.Schema{}
	for !c.cur.Done() {
		ln, no := c.cur.Line()
		k := token.Classify(ln)
		switch {
		case k.Skippable():
			c.cur = c.cur.Advance()
			continue
		case k.IsMarker(), k == token.KStrict:
			if depth > 0 {
				c.diags.Addf(ownerLine, "Unclosed block for key '%s'", owner)
				return s, false
			}
			return s, true
		}
		c.cur = c.cur.Advance()
		line := strings.TrimSpace(ln)
		if line == "}" {
			if depth == 0 {
				c.diags.Addf(no, "Unexpected '}' outside of a block")
				continue
			}
			return s, true
		}
		if !c.decl(s, line, no, depth) {
			return s, false
		}
	}
	if depth > 0 {
		c.diags.Addf(ownerLine, "Unclosed block for key '%s'", owner)
		return s, false
	}
	return s, true
}

// decl compiles one declaration into s. It returns false when a nested
// block ran into the end of the section.
func (c *compiler) decl(s ir.Schema, line string, no, depth int) bool {
	key, rhs, ok := token.SplitArrow(line)
	if !ok || key == "" {
		c.diags.Addf(no, "Invalid schema line '%s': expected 'key -> Type'", line)
		return true
	}
	opens, empty := false, false
	switch {
	case strings.HasSuffix(rhs, "{}"):
		empty = true
		rhs = strings.TrimSpace(strings.TrimSuffix(rhs, "{}"))
	case strings.HasSuffix(rhs, "{"):
		opens = true
		rhs = strings.TrimSpace(strings.TrimSuffix(rhs, "{"))
	}
	var props ir.Schema
	if opens {
		if depth+1 > c.opts.maxDepth {
			c.diags.Addf(no, "Schema nesting for key '%s' is deeper than %d", key, c.opts.maxDepth)
			return c.skipBlock(key, no)
		}
		var closed bool
		props, closed = c.block(depth+1, key, no)
		if !closed {
			return false
		}
	} else if empty {
		props = ir.Schema{}
	}
	if !validKey(key) {
		c.diags.Addf(no, "Invalid key '%s'", key)
		return true
	}
	types, bad, ok := ir.ParseTypeSet(rhs)
	if !ok {
		c.diags.Addf(no, "Unknown type '%s' for key '%s'", bad, key)
		return true
	}
	node := &ir.SchemaNode{Types: types}
	if props != nil {
		hasObj, hasArr := types.Has(ir.ObjectType), types.Has(ir.ObjectArrayType)
		if hasObj == hasArr {
			c.diags.Addf(no, "Nested block for key '%s' requires exactly one of Object or ObjectArray", key)
			return true
		}
		if hasObj {
			node.Properties = props
		} else {
			node.Items = &ir.SchemaNode{Types: ir.TypeSet{ir.ObjectType}, Properties: props}
		}
	}
	if cur, ok := s[key]; ok {
		cur.Merge(node)
		return true
	}
	s[key] = node
	return true
}

// skipBlock consumes the block of key, opened on line no, without
// compiling it.
func (c *compiler) skipBlock(key string, no int) bool {
	open := 1
	for !c.cur.Done() {
		ln, _ := c.cur.Line()
		if token.Classify(ln).IsMarker() {
			c.diags.Addf(no, "Unclosed block for key '%s'", key)
			return false
		}
		c.cur = c.cur.Advance()
		line := strings.TrimSpace(ln)
		switch {
		case line == "}":
			open--
			if open == 0 {
				return true
			}
		case strings.HasSuffix(line, "{"):
			open++
		}
	}
	c.diags.Addf(no, "Unclosed block for key '%s'", key)
	return false
}

func validKey(k string) bool {
	return k != "" && !strings.ContainsAny(k, ". \t{}")
}
