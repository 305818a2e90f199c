package literal

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ldoc-format/ldoc/ir"
)

// CaseMode selects the spelling of boolean and null keywords in rule
// values.
type CaseMode int

const (
	// Lower accepts true, false and null. All rules but default use it.
	Lower CaseMode = iota
	// Upper accepts TRUE, FALSE and NULL, as records do. The default
	// rule uses it.
	Upper
)

var (
	ruleIntRe   = regexp.MustCompile(`^\d+$`)
	ruleFloatRe = regexp.MustCompile(`^\d+\.\d+$`)
)

func (m CaseMode) keywords() (t, f, null string) {
	if m == Upper {
		return "TRUE", "FALSE", "NULL"
	}
	return "true", "false", "null"
}

// ParseRule applies the rule value grammar to the text right of `rule=`:
// boolean and null keywords spelled per mode, undefined, unsigned
// integers, unsigned decimals, `[a, b]` lists of trimmed strings,
// `{k: v}` maps whose values follow the record grammar (Infer), and
// double quoted strings. ok is false when none of them apply.
func ParseRule(s string, mode CaseMode) (ir.RuleValue, bool) {
	s = strings.TrimSpace(s)
	kt, kf, kn := mode.keywords()
	switch {
	case s == kt:
		return ir.RuleValue{Kind: ir.RuleBool, Bool: true}, true
	case s == kf:
		return ir.RuleValue{Kind: ir.RuleBool, Bool: false}, true
	case s == kn:
		return ir.RuleValue{Kind: ir.RuleNull}, true
	case s == "undefined":
		return ir.RuleValue{Kind: ir.RuleUndefined}, true
	case ruleIntRe.MatchString(s):
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return ir.RuleValue{}, false
		}
		return ir.RuleValue{Kind: ir.RuleInt, Int: i}, true
	case ruleFloatRe.MatchString(s):
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ir.RuleValue{}, false
		}
		return ir.RuleValue{Kind: ir.RuleFloat, Float: f}, true
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		return parseList(s[1 : len(s)-1])
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		return parseMap(s[1 : len(s)-1])
	case IsQuoted(s):
		return ir.RuleValue{Kind: ir.RuleString, String: Unquote(s)}, true
	}
	return ir.RuleValue{}, false
}

func parseList(inner string) (ir.RuleValue, bool) {
	res := ir.RuleValue{Kind: ir.RuleList, List: []string{}}
	if strings.TrimSpace(inner) == "" {
		return res, true
	}
	for _, item := range SplitTop(inner, ",") {
		if IsQuoted(item) {
			item = Unquote(item)
		}
		res.List = append(res.List, item)
	}
	return res, true
}

func parseMap(inner string) (ir.RuleValue, bool) {
	res := ir.RuleValue{Kind: ir.RuleMap, Map: map[string]*ir.Value{}}
	if strings.TrimSpace(inner) == "" {
		return res, true
	}
	for _, pair := range SplitTop(inner, ",") {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			return ir.RuleValue{}, false
		}
		k = strings.TrimSpace(k)
		if IsQuoted(k) {
			k = Unquote(k)
		}
		if k == "" {
			return ir.RuleValue{}, false
		}
		val, err := Infer(v)
		if err != nil {
			return ir.RuleValue{}, false
		}
		res.Map[k] = val
	}
	return res, true
}
