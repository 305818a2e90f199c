package validate

import (
	"net/netip"
	"net/url"
	"regexp"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/expr-lang/expr/vm"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/literal"
	"github.com/ldoc-format/ldoc/rules"
)

// check is one rule applied to one field value.
type check struct {
	v       *Validator
	field   string
	value   any
	present bool
	rule    rules.Rule
	arg     ir.RuleValue
}

type evalFunc func(c *check)

var evaluators [rules.NumRules]evalFunc

func init() {
	evaluators = [rules.NumRules]evalFunc{
		rules.Required:       evalRequired,
		rules.NotNull:        evalNotNull,
		rules.IsNull:         evalIsNull,
		rules.Enum:           evalEnum,
		rules.IsUnique:       evalIsUnique,
		rules.IsEqualTo:      evalIsEqualTo,
		rules.Custom:         evalCustom,
		rules.MatchesField:   evalMatchesField,
		rules.Pattern:        evalPattern,
		rules.Min:            evalMin,
		rules.Max:            evalMax,
		rules.IsPositive:     evalIsPositive,
		rules.IsNegative:     evalIsNegative,
		rules.MinLength:      evalMinLength,
		rules.MaxLength:      evalMaxLength,
		rules.MaxSize:        evalMaxSize,
		rules.IsDate:         evalIsDate,
		rules.MinDate:        evalMinDate,
		rules.MaxDate:        evalMaxDate,
		rules.HasProperties:  evalHasProperties,
		rules.IsEmail:        stringRule(isEmail, "%s should be an email address"),
		rules.IsURL:          stringRule(isURL, "%s should be a URL"),
		rules.IsAlpha:        stringRule(onlyRunes(unicode.IsLetter), "%s should contain only letters"),
		rules.IsNumeric:      stringRule(onlyRunes(unicode.IsDigit), "%s should contain only digits"),
		rules.IsAlphanumeric: stringRule(onlyRunes(isAlnum), "%s should contain only letters and digits"),
		rules.IsIP:           stringRule(isIP, "%s should be an IP address"),
		rules.IsInteger:      evalIsInteger,
		rules.IsFloat:        evalIsFloat,
		rules.IsBoolean:      evalIsBoolean,
		// default, trim, lowercase and uppercase do not check anything
	}
}

func (c *check) run() {
	if !c.arg.Enabled() {
		return
	}
	if c.rule != rules.Required && isMissing(c.value, c.present) {
		return
	}
	if f := evaluators[c.rule]; f != nil {
		f(c)
	}
}

func (c *check) failf(format string, args ...any) {
	c.v.addf(c.field, c.rule.String(), format, args...)
}

func evalRequired(c *check) {
	if isMissing(c.value, c.present) || c.value == nil || c.value == "" {
		c.failf("%s is required", c.field)
	}
}

func evalNotNull(c *check) {
	if c.value == nil {
		c.failf("%s should not be null", c.field)
	}
}

func evalIsNull(c *check) {
	if c.value != nil {
		c.failf("%s should be null", c.field)
	}
}

func evalEnum(c *check) {
	in := func(x any) bool { return slices.Contains(c.arg.List, text(x)) }
	if arr, ok := c.value.([]any); ok {
		for i, e := range arr {
			if !in(e) {
				c.failf("%s should be one of %s", index(c.field, i), c.arg.Text())
			}
		}
		return
	}
	if !in(c.value) {
		c.failf("%s should be one of %s", c.field, c.arg.Text())
	}
}

var indexRe = regexp.MustCompile(`\[\d+\]`)

// evalIsUnique checks the elements of arrays, and scalars against the
// values already seen at the same path during the call.
func evalIsUnique(c *check) {
	if arr, ok := c.value.([]any); ok {
		for i := range arr {
			for j := range i {
				if equal(arr[i], arr[j]) {
					c.failf("%s should be unique, %s repeats %s", c.field, index(c.field, i), index(c.field, j))
					break
				}
			}
		}
		return
	}
	if c.v.unique == nil {
		c.v.unique = map[string]map[string]int{}
	}
	path := indexRe.ReplaceAllString(c.field, "[]")
	seen := c.v.unique[path]
	if seen == nil {
		seen = map[string]int{}
		c.v.unique[path] = seen
	}
	key := kindName(c.value) + ":" + text(c.value)
	if prev, ok := seen[key]; ok {
		if prev >= 0 {
			c.failf("%s should be unique, %s is already used by record #%d", c.field, text(c.value), prev)
		} else {
			c.failf("%s should be unique, %s is repeated", c.field, text(c.value))
		}
		return
	}
	seen[key] = -1
	if c.v.record != nil {
		seen[key] = *c.v.record
	}
}

func evalIsEqualTo(c *check) {
	if !equal(c.value, c.arg.Data()) {
		c.failf("%s should be equal to %s", c.field, c.arg.Text())
	}
}

func evalCustom(c *check) {
	prog, err := c.v.program(c.arg.String)
	if err != nil {
		c.failf("%s: invalid custom rule: %v", c.field, err)
		return
	}
	env := map[string]any{
		"value": c.value,
		"data":  c.v.root,
		"field": c.field,
	}
	out, err := vm.Run(prog, env)
	if err != nil {
		c.failf("%s: custom rule '%s' failed: %v", c.field, c.arg.String, err)
		return
	}
	if ok, _ := out.(bool); !ok {
		c.failf("%s does not satisfy '%s'", c.field, c.arg.String)
	}
}

func evalMatchesField(c *check) {
	other, ok := lookup(c.v.root, c.arg.String)
	if !ok || !equal(c.value, other) {
		c.failf("%s should match %s", c.field, c.arg.String)
	}
}

func evalPattern(c *check) {
	re, err := c.v.pattern(c.arg.String)
	if err != nil {
		c.failf("%s: invalid pattern: %v", c.field, err)
		return
	}
	strs(c, func(field, s string) {
		if !re.MatchString(s) {
			c.failf("%s should match the pattern %s", field, c.arg.String)
		}
	})
}

// numbers calls f with a number, each number of an array or each byte of
// a Binary value.
func numbers(c *check, f func(field string, n float64)) {
	switch x := c.value.(type) {
	case []any:
		for i, e := range x {
			if n, ok := number(e); ok {
				f(index(c.field, i), n)
			}
		}
	case []byte:
		for i, b := range x {
			f(index(c.field, i), float64(b))
		}
	default:
		if n, ok := number(x); ok {
			f(c.field, n)
		}
	}
}

func evalMin(c *check) {
	numbers(c, func(field string, n float64) {
		if n < c.arg.Number() {
			c.failf("%s should be at least %s", field, c.arg.Text())
		}
	})
}

func evalMax(c *check) {
	numbers(c, func(field string, n float64) {
		if n > c.arg.Number() {
			c.failf("%s should be at most %s", field, c.arg.Text())
		}
	})
}

func evalIsPositive(c *check) {
	numbers(c, func(field string, n float64) {
		if n <= 0 {
			c.failf("%s should be positive", field)
		}
	})
}

func evalIsNegative(c *check) {
	numbers(c, func(field string, n float64) {
		if n >= 0 {
			c.failf("%s should be negative", field)
		}
	})
}

// length counts the runes of a string, the elements of an array, the
// keys of an object or the bytes of a Binary value.
func length(v any) (int, bool) {
	switch x := v.(type) {
	case string:
		return utf8.RuneCountInString(x), true
	case []any:
		return len(x), true
	case map[string]any:
		return len(x), true
	case []byte:
		return len(x), true
	}
	return 0, false
}

func evalMinLength(c *check) {
	if n, ok := length(c.value); ok && int64(n) < c.arg.Int {
		c.failf("%s should have a length of at least %d", c.field, c.arg.Int)
	}
}

func evalMaxLength(c *check) {
	if n, ok := length(c.value); ok && int64(n) > c.arg.Int {
		c.failf("%s should have a length of at most %d", c.field, c.arg.Int)
	}
}

// evalMaxSize is maxLength counting the bytes of strings.
func evalMaxSize(c *check) {
	n, ok := length(c.value)
	if s, isStr := c.value.(string); isStr {
		n = len(s)
	}
	if ok && int64(n) > c.arg.Int {
		c.failf("%s should have a size of at most %d", c.field, c.arg.Int)
	}
}

func evalIsDate(c *check) {
	if _, ok := toTime(c.value); !ok {
		c.failf("%s should be a date", c.field)
	}
}

func evalMinDate(c *check) {
	t, ok := toTime(c.value)
	bound, _, err := literal.ParseDate(c.arg.String)
	if ok && err == nil && t.Before(bound) {
		c.failf("%s should not be before %s", c.field, c.arg.String)
	}
}

func evalMaxDate(c *check) {
	t, ok := toTime(c.value)
	bound, _, err := literal.ParseDate(c.arg.String)
	if ok && err == nil && t.After(bound) {
		c.failf("%s should not be after %s", c.field, c.arg.String)
	}
}

func evalHasProperties(c *check) {
	has := func(field string, m map[string]any) {
		for _, p := range c.arg.List {
			if _, ok := m[p]; !ok {
				c.failf("%s should have property '%s'", field, p)
			}
		}
	}
	switch x := c.value.(type) {
	case map[string]any:
		has(c.field, x)
	case []any:
		for i, e := range x {
			if m, ok := e.(map[string]any); ok {
				has(index(c.field, i), m)
			}
		}
	}
}

func evalIsInteger(c *check) {
	if _, ok := number(c.value); ok && !isIntegral(c.value) {
		c.failf("%s should be an integer", c.field)
	}
}

func evalIsFloat(c *check) {
	if _, ok := number(c.value); ok && isIntegral(c.value) {
		c.failf("%s should be a float", c.field)
	}
}

func evalIsBoolean(c *check) {
	if _, ok := c.value.(bool); !ok {
		c.failf("%s should be a boolean", c.field)
	}
}

// strs calls f with a string or each string of an array.
func strs(c *check, f func(field, s string)) {
	switch x := c.value.(type) {
	case string:
		f(c.field, x)
	case []any:
		for i, e := range x {
			if s, ok := e.(string); ok {
				f(index(c.field, i), s)
			}
		}
	}
}

func stringRule(ok func(string) bool, msg string) evalFunc {
	return func(c *check) {
		strs(c, func(field, s string) {
			if !ok(s) {
				c.failf(msg, field)
			}
		})
	}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func isEmail(s string) bool {
	return emailRe.MatchString(s)
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func isIP(s string) bool {
	_, err := netip.ParseAddr(s)
	return err == nil
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func onlyRunes(f func(rune) bool) func(string) bool {
	return func(s string) bool {
		if s == "" {
			return false
		}
		for _, r := range s {
			if !f(r) {
				return false
			}
		}
		return true
	}
}
