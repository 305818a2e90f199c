package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/records"
	"github.com/ldoc-format/ldoc/rules"
	"github.com/ldoc-format/ldoc/schema"
	"github.com/ldoc-format/ldoc/token"
)

func compile(t *testing.T, schemaSrc, rulesSrc string) (ir.Schema, ir.RuleSet) {
	t.Helper()
	s, _, ds := schema.Compile(token.FromString(schemaSrc + "\n@end"))
	if len(ds) != 0 {
		t.Fatalf("schema: %v", ds)
	}
	rs, _, ds := rules.Compile(token.FromString(rulesSrc+"\n@end"), s)
	if len(ds) != 0 {
		t.Fatalf("rules: %v", ds)
	}
	return s, rs
}

func messages(res *Result) []string {
	var ms []string
	for _, e := range res.Errors {
		ms = append(ms, e.Message)
	}
	return ms
}

func TestRules(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		rules  string
		data   map[string]any
		want   []string
	}{
		{"min", "age -> Number", "age -> required=true; min=8; max=70", map[string]any{"age": 5}, []string{"age should be at least 8"}},
		{"min ok", "age -> Number", "age -> required=true; min=8; max=70", map[string]any{"age": 25}, nil},
		{"max", "age -> Number", "age -> max=70", map[string]any{"age": 71.5}, []string{"age should be at most 70"}},
		{"required absent", "name -> String", "name -> required=true", map[string]any{}, []string{"name is required"}},
		{"required empty", "name -> String", "name -> required=true", map[string]any{"name": ""}, []string{"name is required"}},
		{"required undefined", "name -> String", "name -> required=true", map[string]any{"name": ir.Undefined}, []string{"name is required"}},
		{"required disabled", "name -> String", "name -> required=false", map[string]any{}, nil},
		{"absent skips others", "name -> String", "name -> minLength=3", map[string]any{}, nil},
		{"not null", "a -> String | Null", "a -> notNull=true", map[string]any{"a": nil}, []string{"a should not be null"}},
		{"is null", "a -> String | Null", "a -> isNull=true", map[string]any{"a": "x"}, []string{"a should be null"}},
		{"enum", "s -> String", "s -> enum=[x, y]", map[string]any{"s": "z"}, []string{"s should be one of [x, y]"}},
		{"enum number", "n -> Number", "n -> enum=[1, 2]", map[string]any{"n": 2}, nil},
		{"enum array", "s -> StringArray", "s -> enum=[x, y]", map[string]any{"s": []string{"x", "q"}}, []string{"s[1] should be one of [x, y]"}},
		{"unique array", "t -> StringArray", "t -> isUnique=true", map[string]any{"t": []string{"a", "b", "a"}}, []string{"t should be unique, t[2] repeats t[0]"}},
		{"equal", "n -> Number", "n -> isEqualTo=3", map[string]any{"n": 3}, nil},
		{"not equal", "n -> Number", "n -> isEqualTo=3", map[string]any{"n": 4}, []string{"n should be equal to 3"}},
		{"equal object", "o -> Object", `o -> isEqualTo={a: 1, b: "x"}`, map[string]any{"o": map[string]any{"a": 1, "b": "x"}}, nil},
		{"custom", "n -> Number", `n -> custom="value > 10"`, map[string]any{"n": 3}, []string{"n does not satisfy 'value > 10'"}},
		{"custom data", "a -> Number\nb -> Number", `b -> custom="value > data.a"`, map[string]any{"a": 5, "b": 6}, nil},
		{"matches field", "p -> String\nq -> String", `q -> matchesField="p"`, map[string]any{"p": "x", "q": "y"}, []string{"q should match p"}},
		{"pattern", "s -> String", `s -> pattern="/^[a-z]+$/"`, map[string]any{"s": "abc1"}, []string{"s should match the pattern /^[a-z]+$/"}},
		{"pattern flags", "s -> String", `s -> pattern="/^[a-z]+$/i"`, map[string]any{"s": "ABC"}, nil},
		{"min number array", "xs -> NumberArray", "xs -> min=2", map[string]any{"xs": []int{1, 3}}, []string{"xs[0] should be at least 2"}},
		{"max binary", "b -> Binary", "b -> max=10", map[string]any{"b": []byte{1, 20}}, []string{"b[1] should be at most 10"}},
		{"positive", "n -> Number", "n -> isPositive=true", map[string]any{"n": 0}, []string{"n should be positive"}},
		{"negative", "n -> Number", "n -> isNegative=true", map[string]any{"n": -1}, nil},
		{"min length runes", "s -> String", "s -> minLength=3", map[string]any{"s": "日本"}, []string{"s should have a length of at least 3"}},
		{"max size bytes", "s -> String", "s -> maxSize=4", map[string]any{"s": "日本"}, []string{"s should have a size of at most 4"}},
		{"max length array", "xs -> Array", "xs -> maxLength=1", map[string]any{"xs": []any{1, "a"}}, []string{"xs should have a length of at most 1"}},
		{"min date", "d -> Date", `d -> minDate="2020-01-01"`, map[string]any{"d": time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)}, []string{"d should not be before 2020-01-01"}},
		{"max date", "d -> Date", `d -> maxDate="2020-01-01"`, map[string]any{"d": time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)}, nil},
		{"is date", "d -> Any", "d -> isDate=true", map[string]any{"d": "nope"}, []string{"d should be a date"}},
		{"has properties", "o -> Object", "o -> hasProperties=[a, b]", map[string]any{"o": map[string]any{"a": 1}}, []string{"o should have property 'b'"}},
		{"email", "e -> String", "e -> isEmail=true", map[string]any{"e": "nope"}, []string{"e should be an email address"}},
		{"email ok", "e -> StringArray", "e -> isEmail=true", map[string]any{"e": []string{"a@b.io"}}, nil},
		{"url", "u -> String", "u -> isURL=true", map[string]any{"u": "example.com"}, []string{"u should be a URL"}},
		{"alpha", "s -> String", "s -> isAlpha=true", map[string]any{"s": "A1"}, []string{"s should contain only letters"}},
		{"numeric", "s -> String", "s -> isNumeric=true", map[string]any{"s": "0123"}, nil},
		{"alphanumeric", "s -> String", "s -> isAlphanumeric=true", map[string]any{"s": "a-1"}, []string{"s should contain only letters and digits"}},
		{"ip", "s -> String", "s -> isIP=true", map[string]any{"s": "1.2.3"}, []string{"s should be an IP address"}},
		{"ipv6", "s -> String", "s -> isIP=true", map[string]any{"s": "::1"}, nil},
		{"integer", "n -> Number", "n -> isInteger=true", map[string]any{"n": 1.5}, []string{"n should be an integer"}},
		{"float", "n -> Number", "n -> isFloat=true", map[string]any{"n": 2}, []string{"n should be a float"}},
		{"boolean", "b -> Any", "b -> isBoolean=true", map[string]any{"b": "yes"}, []string{"b should be a boolean"}},
		{"trim is inert", "s -> String", "s -> trim=true, lowercase=true", map[string]any{"s": " X "}, nil},
		{"default is inert", "s -> String", `s -> default="x"`, map[string]any{}, nil},
		{"nested", "o -> Object {\n  c -> String\n}", "o.c -> required=true", map[string]any{"o": map[string]any{}}, []string{"o.c is required"}},
		{"object array items", "items -> ObjectArray {\n  q -> Number\n}", "items.q -> min=1",
			map[string]any{"items": []any{map[string]any{"q": 1}, map[string]any{"q": 0}}},
			[]string{"items[1].q should be at least 1"}},
		{"unique items", "items -> ObjectArray {\n  k -> String\n}", "items.k -> isUnique=true",
			map[string]any{"items": []any{map[string]any{"k": "a"}, map[string]any{"k": "a"}}},
			[]string{"items[1].k should be unique, a is repeated"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rs := compile(t, tt.schema, tt.rules)
			res := Validate(Input{Schema: s, Rules: rs, Data: tt.data})
			if diff := cmp.Diff(tt.want, messages(res), cmpopts.EquateEmpty()); diff != "" {
				t.Error(diff)
			}
			if res.Valid != (len(tt.want) == 0) {
				t.Errorf("valid %v with %d errors", res.Valid, len(res.Errors))
			}
		})
	}
}

func TestShape(t *testing.T) {
	s, _ := compile(t, `name -> String
age -> Number | Null
tags -> StringArray
address -> Object {
  city -> String
}
orders -> ObjectArray {
  sku -> String
}`, "")
	data := map[string]any{
		"name":    42,
		"age":     nil,
		"tags":    []any{"a", 1},
		"address": map[string]any{"city": true},
		"orders":  []any{map[string]any{"sku": "A"}, map[string]any{"sku": 2}},
		"extra":   "x",
	}
	res := Validate(Input{Schema: s, Data: data})
	want := []string{
		"address.city should be of type String, got Boolean",
		"name should be of type String, got Number",
		"orders[1].sku should be of type String, got Number",
		"tags should be of type StringArray, got Array",
	}
	if diff := cmp.Diff(want, messages(res)); diff != "" {
		t.Error(diff)
	}
	res = Validate(Input{Schema: s, Data: data, Strict: true})
	if ms := messages(res); len(ms) != 5 || ms[4] != "extra is not defined in the schema" {
		t.Errorf("strict: %v", ms)
	}
}

func TestNotAnObject(t *testing.T) {
	s, _ := compile(t, "a -> String", "")
	res := Validate(Input{Schema: s, Data: []int{1}})
	if res.Valid || !strings.Contains(res.Errors[0].Message, "should be an Object") {
		t.Errorf("got %+v", res)
	}
}

func TestValidatorReuse(t *testing.T) {
	s, rs := compile(t, "age -> Number", "age -> min=8")
	v := New()
	if res := v.Validate(Input{Schema: s, Rules: rs, Data: map[string]any{"age": 1}}); res.Valid {
		t.Fatal("expected an error")
	}
	res := v.Validate(Input{Schema: s, Rules: rs, Data: map[string]any{"age": 9}})
	if !res.Valid || len(res.Errors) != 0 {
		t.Errorf("errors leaked between calls: %v", res.Errors)
	}
}

func TestValidateRecords(t *testing.T) {
	s, rs := compile(t, "id -> Number\nname -> String", "id -> isUnique=true\nname -> minLength=3")
	recs, _, ds := records.Compile(token.FromString(`#0 -> id(1); name("Ada");
#1 -> id(2); name("Al");
#2 -> id(1); name("Bob");
@end`))
	if len(ds) != 0 {
		t.Fatal(ds)
	}
	res := New().ValidateRecords(s, rs, recs)
	want := []string{
		"name should have a length of at least 3",
		"id should be unique, 1 is already used by record #0",
	}
	if diff := cmp.Diff(want, messages(res)); diff != "" {
		t.Error(diff)
	}
	if r := res.Errors[0].Record; r == nil || *r != 1 {
		t.Errorf("record of first error: %v", r)
	}
	if r := res.Errors[1].Record; r == nil || *r != 2 {
		t.Errorf("record of second error: %v", r)
	}
}

func TestMaxErrors(t *testing.T) {
	s, rs := compile(t, "xs -> NumberArray", "xs -> min=10")
	res := Validate(Input{Schema: s, Rules: rs, Data: map[string]any{"xs": []int{1, 2, 3, 4}}}, MaxErrors(2))
	if len(res.Errors) != 2 || res.Valid {
		t.Errorf("got %v", messages(res))
	}
}

func TestNormalize(t *testing.T) {
	type named string
	got := Normalize(map[string]any{
		"i":  int32(3),
		"u":  uint8(4),
		"f":  float32(0.5),
		"s":  named("x"),
		"xs": []string{"a"},
		"m":  map[string]int{"k": 1},
		"p":  new(int),
	})
	want := map[string]any{
		"i":  3.0,
		"u":  4.0,
		"f":  0.5,
		"s":  "x",
		"xs": []any{"a"},
		"m":  map[string]any{"k": 1.0},
		"p":  0.0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
}

func TestCyclicData(t *testing.T) {
	s, rs := compile(t, "a -> Object", "a -> required=true")
	m := map[string]any{}
	m["a"] = m
	res := Validate(Input{Schema: s, Rules: rs, Data: m})
	if res.Valid || len(res.Errors) != 1 {
		t.Fatalf("got %v", messages(res))
	}
	if !strings.HasSuffix(res.Errors[0].Message, "is nested deeper than 64") {
		t.Errorf("got %q", res.Errors[0].Message)
	}
}

func TestMaxDepth(t *testing.T) {
	s, _ := compile(t, "x -> Object", "x -> required=true")
	nest := func(n int) map[string]any {
		var v any = 1.0
		for range n {
			v = map[string]any{"x": v}
		}
		return v.(map[string]any)
	}
	tests := []struct {
		name string
		data map[string]any
		want []string
	}{
		{"within", nest(5), nil},
		{"deeper", nest(6), []string{"x.x.x.x.x is nested deeper than 4"}},
		{"much deeper", nest(500), []string{"x.x.x.x.x is nested deeper than 4"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(Input{Schema: s, Data: tc.data}, MaxDepth(4))
			if d := cmp.Diff(tc.want, messages(res)); d != "" {
				t.Errorf("(-want +got):\n%s", d)
			}
			if res.Valid != (tc.want == nil) {
				t.Errorf("valid: %v", res.Valid)
			}
		})
	}
}

func TestDateStrings(t *testing.T) {
	s, rs := compile(t, "born -> Date\ndays -> DateArray", "born -> minDate=\"2000-01-01\"")
	res := Validate(Input{Schema: s, Rules: rs, Data: map[string]any{
		"born": "2024-01-02",
		"days": []any{"2024-01-02", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
	}})
	if !res.Valid {
		t.Errorf("got %v", messages(res))
	}
	res = Validate(Input{Schema: s, Data: map[string]any{"born": "not a date"}})
	want := []string{"born should be of type Date, got String"}
	if d := cmp.Diff(want, messages(res)); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}
