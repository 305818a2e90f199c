package rules

import (
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/literal"
)

// Rule identifies a validation rule.
type Rule int

const (
	Required Rule = iota
	NotNull
	IsNull
	Enum
	IsUnique
	IsEqualTo
	Default
	Custom
	MatchesField
	Pattern
	Min
	Max
	IsPositive
	IsNegative
	MinLength
	MaxLength
	MaxSize
	IsDate
	MinDate
	MaxDate
	HasProperties
	IsEmail
	IsURL
	IsAlpha
	IsNumeric
	IsAlphanumeric
	IsIP
	Trim
	Lowercase
	Uppercase
	IsInteger
	IsFloat
	IsBoolean

	NumRules
)

type valueCheck func(ir.RuleValue) bool

type def struct {
	name string
	// types the rule applies to; nil applies to any type
	types ir.TypeSet
	value valueCheck
}

var (
	numeric = ir.TypeSet{ir.NumberType, ir.NumberArrayType, ir.BinaryType}
	sized   = ir.TypeSet{
		ir.StringType, ir.StringArrayType, ir.ObjectArrayType, ir.ArrayType,
		ir.ObjectType, ir.NumberArrayType, ir.BinaryType,
	}
	stringy = ir.TypeSet{ir.StringType}
)

var table = [NumRules]def{
	Required:       {"required", nil, isBool},
	NotNull:        {"notNull", nil, isBool},
	IsNull:         {"isNull", nil, isBool},
	Enum:           {"enum", nil, isList},
	IsUnique:       {"isUnique", nil, isBool},
	IsEqualTo:      {"isEqualTo", nil, anyValue},
	Default:        {"default", nil, anyValue},
	Custom:         {"custom", nil, isExpr},
	MatchesField:   {"matchesField", nil, isPath},
	Pattern:        {"pattern", nil, isPattern},
	Min:            {"min", numeric, isNumber},
	Max:            {"max", numeric, isNumber},
	IsPositive:     {"isPositive", numeric, isBool},
	IsNegative:     {"isNegative", numeric, isBool},
	MinLength:      {"minLength", sized, isInt},
	MaxLength:      {"maxLength", sized, isInt},
	MaxSize:        {"maxSize", sized, isInt},
	IsDate:         {"isDate", ir.TypeSet{ir.DateType}, isBool},
	MinDate:        {"minDate", ir.TypeSet{ir.DateType}, isDate},
	MaxDate:        {"maxDate", ir.TypeSet{ir.DateType}, isDate},
	HasProperties:  {"hasProperties", ir.TypeSet{ir.ObjectType, ir.ObjectArrayType}, isList},
	IsEmail:        {"isEmail", ir.TypeSet{ir.StringType, ir.StringArrayType}, isBool},
	IsURL:          {"isURL", stringy, isBool},
	IsAlpha:        {"isAlpha", stringy, isBool},
	IsNumeric:      {"isNumeric", stringy, isBool},
	IsAlphanumeric: {"isAlphanumeric", stringy, isBool},
	IsIP:           {"isIP", stringy, isBool},
	Trim:           {"trim", stringy, isBool},
	Lowercase:      {"lowercase", stringy, isBool},
	Uppercase:      {"uppercase", stringy, isBool},
	IsInteger:      {"isInteger", ir.TypeSet{ir.NumberType}, isBool},
	IsFloat:        {"isFloat", ir.TypeSet{ir.NumberType}, isBool},
	IsBoolean:      {"isBoolean", ir.TypeSet{ir.BooleanType}, isBool},
}

var byName = func() map[string]Rule {
	m := make(map[string]Rule, NumRules)
	for i := range table {
		m[table[i].name] = Rule(i)
	}
	return m
}()

// Lookup finds a rule by the name used in `@validations`.
func Lookup(name string) (Rule, bool) {
	r, ok := byName[name]
	return r, ok
}

// All lists every rule in table order.
func All() []Rule {
	res := make([]Rule, NumRules)
	for i := range res {
		res[i] = Rule(i)
	}
	return res
}

func (r Rule) String() string {
	if r < 0 || r >= NumRules {
		return "<unknown rule>"
	}
	return table[r].name
}

// Types returns the types r applies to, nil meaning any type.
func (r Rule) Types() ir.TypeSet {
	return table[r].types
}

// ApplicableTo reports whether r may be declared on a field of types ts.
func (r Rule) ApplicableTo(ts ir.TypeSet) bool {
	d := &table[r]
	if d.types == nil || ts.Has(ir.AnyType) {
		return true
	}
	for _, t := range ts {
		if d.types.Has(t) {
			return true
		}
	}
	return false
}

// AcceptsValue reports whether v has the shape r expects.
func (r Rule) AcceptsValue(v ir.RuleValue) bool {
	return table[r].value(v)
}

// Mode is the keyword spelling of r's values.
func (r Rule) Mode() literal.CaseMode {
	if r == Default {
		return literal.Upper
	}
	return literal.Lower
}

func isBool(v ir.RuleValue) bool   { return v.Kind == ir.RuleBool }
func isList(v ir.RuleValue) bool   { return v.Kind == ir.RuleList }
func isInt(v ir.RuleValue) bool    { return v.Kind == ir.RuleInt }
func isNumber(v ir.RuleValue) bool { return v.IsNumber() }
func anyValue(ir.RuleValue) bool   { return true }

func isPath(v ir.RuleValue) bool {
	return v.Kind == ir.RuleString && v.String != ""
}

func isDate(v ir.RuleValue) bool {
	return v.Kind == ir.RuleString && literal.IsDate(v.String)
}

func isPattern(v ir.RuleValue) bool {
	if v.Kind != ir.RuleString {
		return false
	}
	_, err := CompilePattern(v.String)
	return err == nil
}

func isExpr(v ir.RuleValue) bool {
	if v.Kind != ir.RuleString {
		return false
	}
	_, err := CompileCustom(v.String)
	return err == nil
}
