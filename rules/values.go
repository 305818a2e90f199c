package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/literal"
)

// CompileCustom compiles the expression of a `custom` rule. The program
// runs with `value`, `data` and `field` in its environment and passes
// when it returns true.
func CompileCustom(src string) (*vm.Program, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("empty expression")
	}
	return expr.Compile(src)
}

var flagsRe = regexp.MustCompile(`^/(.*)/([imsU]*)$`)

// CompilePattern compiles the value of a `pattern` rule. The expression
// may be written bare or between slashes with trailing flags, as in
// `/^[a-z]+$/i`.
func CompilePattern(s string) (*regexp.Regexp, error) {
	if m := flagsRe.FindStringSubmatch(s); m != nil {
		s = m[1]
		if m[2] != "" {
			s = "(?" + m[2] + ")" + s
		}
	}
	return regexp.Compile(s)
}

// ValueMatches reports whether the kind of v fits one of the types ts, as
// required for `default` and `isEqualTo`.
func ValueMatches(v ir.RuleValue, ts ir.TypeSet) bool {
	if ts.Has(ir.AnyType) {
		return true
	}
	switch v.Kind {
	case ir.RuleBool:
		return ts.Has(ir.BooleanType)
	case ir.RuleNull:
		return ts.Has(ir.NullType)
	case ir.RuleUndefined:
		return ts.Has(ir.UndefinedType)
	case ir.RuleInt, ir.RuleFloat:
		return ts.Has(ir.NumberType)
	case ir.RuleString:
		if ts.Has(ir.StringType) {
			return true
		}
		return ts.Has(ir.DateType) && literal.IsDate(v.String)
	case ir.RuleList:
		for _, t := range ts {
			if t.IsArray() {
				return true
			}
		}
	case ir.RuleMap:
		return ts.Has(ir.ObjectType)
	}
	return false
}
