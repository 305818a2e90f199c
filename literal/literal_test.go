package literal

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ldoc-format/ldoc/ir"
)

func TestInferKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind ir.Kind
	}{
		{`TRUE`, ir.BooleanKind},
		{`FALSE`, ir.BooleanKind},
		{`NULL`, ir.NullKind},
		{``, ir.UndefinedKind},
		{`   `, ir.UndefinedKind},
		{`""`, ir.UndefinedKind},
		{`undefined`, ir.UndefinedKind},
		{`"x"`, ir.StringKind},
		{`"a; b) c"`, ir.StringKind},
		{`<Buffer 1 2>`, ir.BinaryKind},
		{`<Buffer>`, ir.BinaryKind},
		{`42`, ir.NumberKind},
		{`3.14`, ir.NumberKind},
		{`-7`, ir.NumberKind},
		{`1e9`, ir.NumberKind},
		{`2024-01-02`, ir.DateKind},
		{`1st January 2024`, ir.DateKind},
		{`2024-01-02T03:04:05Z`, ir.DateKind},
		{`09:30`, ir.DateKind},
	}
	for _, tt := range tests {
		v, err := Infer(tt.in)
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if v.Kind != tt.kind {
			t.Errorf("%q: got %s want %s", tt.in, v.Kind, tt.kind)
		}
	}
}

func TestInferValues(t *testing.T) {
	v, _ := Infer(`"say \"hi\""`)
	if v.String != `say "hi"` {
		t.Errorf("unquote: %q", v.String)
	}
	v, _ = Infer(`<Buffer 0a ff 1>`)
	if diff := cmp.Diff([]byte{0x0a, 0xff, 0x01}, v.Bytes); diff != "" {
		t.Error(diff)
	}
	if v.Raw != `<Buffer 0a ff 1>` {
		t.Errorf("raw %q", v.Raw)
	}
	v, _ = Infer(`3.14`)
	if v.Float != 3.14 || v.Big != nil {
		t.Errorf("float %v", v.Float)
	}
	v, _ = Infer(`9007199254740991`)
	if v.Big != nil || v.Float != 9007199254740991 {
		t.Error("max safe integer should stay a float64")
	}
	v, _ = Infer(`9007199254740993`)
	if v.Big == nil || v.Big.String() != "9007199254740993" {
		t.Errorf("big integer not preserved: %+v", v)
	}
	v, _ = Infer(`-9007199254740993`)
	if v.Big == nil || v.Big.String() != "-9007199254740993" {
		t.Errorf("negative big integer not preserved: %+v", v)
	}
	v, _ = Infer(`TRUE`)
	if !v.Bool {
		t.Error("TRUE")
	}
}

func TestInferErrors(t *testing.T) {
	for _, in := range []string{
		`hello`,
		`true`,
		`null`,
		`<Buffer zz>`,
		`<Buffer 1 2`,
		`31st February 2024`,
		`32/01/2024`,
		`25:00`,
	} {
		v, err := Infer(in)
		if err == nil {
			t.Errorf("%q: expected error, got %s %s", in, v.Kind, v.Text())
		}
	}
	_, err := Infer("hello")
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("got %v", err)
	}
	_, err = Infer("31st February 2024")
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	utc := func(y int, m time.Month, d, h, mi, s int) time.Time {
		return time.Date(y, m, d, h, mi, s, 0, time.UTC)
	}
	tests := []struct {
		in   string
		want time.Time
	}{
		{"1st January 2024", utc(2024, 1, 1, 0, 0, 0)},
		{"22nd Feb 2023", utc(2023, 2, 22, 0, 0, 0)},
		{"3rd march, 2021", utc(2021, 3, 3, 0, 0, 0)},
		{"31/12/2024", utc(2024, 12, 31, 0, 0, 0)},
		{"05-06-2024", utc(2024, 6, 5, 0, 0, 0)},
		{"2024/12/31", utc(2024, 12, 31, 0, 0, 0)},
		{"2024-1-9", utc(2024, 1, 9, 0, 0, 0)},
		{"09:30", utc(1970, 1, 1, 9, 30, 0)},
		{"09:30:15", utc(1970, 1, 1, 9, 30, 15)},
		{"9:30PM", utc(1970, 1, 1, 21, 30, 0)},
		{"12:05 am", utc(1970, 1, 1, 0, 5, 0)},
		{"1700000000", time.Unix(1700000000, 0).UTC()},
		{"1700000000123", time.UnixMilli(1700000000123).UTC()},
		{"2024-01-02T03:04:05Z", utc(2024, 1, 2, 3, 4, 5)},
		{"2024-01-02T03:04", utc(2024, 1, 2, 3, 4, 0)},
	}
	for _, tt := range tests {
		got, matched, err := ParseDate(tt.in)
		if err != nil || !matched {
			t.Errorf("%q: %v matched=%v", tt.in, err, matched)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("%q: got %s want %s", tt.in, got, tt.want)
		}
	}
	got, _, err := ParseDate("2024-01-02T03:04:05+0200")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(utc(2024, 1, 2, 1, 4, 5)) {
		t.Errorf("offset: got %s", got.UTC())
	}
	if _, matched, err := ParseDate("13:61"); err == nil || !matched {
		t.Errorf("13:61: %v %v", matched, err)
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		in   string
		mode CaseMode
		want ir.RuleValue
		ok   bool
	}{
		{"true", Lower, ir.RuleValue{Kind: ir.RuleBool, Bool: true}, true},
		{"false", Lower, ir.RuleValue{Kind: ir.RuleBool}, true},
		{"null", Lower, ir.RuleValue{Kind: ir.RuleNull}, true},
		{"TRUE", Lower, ir.RuleValue{}, false},
		{"NULL", Lower, ir.RuleValue{}, false},
		{"TRUE", Upper, ir.RuleValue{Kind: ir.RuleBool, Bool: true}, true},
		{"FALSE", Upper, ir.RuleValue{Kind: ir.RuleBool}, true},
		{"NULL", Upper, ir.RuleValue{Kind: ir.RuleNull}, true},
		{"true", Upper, ir.RuleValue{}, false},
		{"undefined", Upper, ir.RuleValue{Kind: ir.RuleUndefined}, true},
		{"undefined", Lower, ir.RuleValue{Kind: ir.RuleUndefined}, true},
		{"8", Lower, ir.RuleValue{Kind: ir.RuleInt, Int: 8}, true},
		{"2.5", Lower, ir.RuleValue{Kind: ir.RuleFloat, Float: 2.5}, true},
		{"-1", Lower, ir.RuleValue{}, false},
		{".5", Lower, ir.RuleValue{}, false},
		{`"abc"`, Lower, ir.RuleValue{Kind: ir.RuleString, String: "abc"}, true},
		{`[a, "b", c ]`, Lower, ir.RuleValue{Kind: ir.RuleList, List: []string{"a", "b", "c"}}, true},
		{`[]`, Lower, ir.RuleValue{Kind: ir.RuleList, List: []string{}}, true},
		{`abc`, Lower, ir.RuleValue{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseRule(tt.in, tt.mode)
		if ok != tt.ok {
			t.Errorf("%q mode %d: ok=%v", tt.in, tt.mode, ok)
			continue
		}
		if !ok {
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q: %s", tt.in, diff)
		}
	}
}

func TestParseRuleMap(t *testing.T) {
	got, ok := ParseRule(`{city: "Paris", zip: 75001, active: TRUE}`, Lower)
	if !ok {
		t.Fatal("map not parsed")
	}
	if got.Kind != ir.RuleMap || len(got.Map) != 3 {
		t.Fatalf("got %+v", got)
	}
	if got.Map["city"].String != "Paris" || got.Map["zip"].Float != 75001 || !got.Map["active"].Bool {
		t.Errorf("got %s", got.Text())
	}
	if _, ok := ParseRule(`{city}`, Lower); ok {
		t.Error("pair without ':' accepted")
	}
	if _, ok := ParseRule(`{a: nope}`, Lower); ok {
		t.Error("invalid map value accepted")
	}
}

func TestSplitTop(t *testing.T) {
	got := SplitTop(`required=true, enum=[a, b]; pattern="x,y", default={a:1, b:2}`, ",;")
	want := []string{`required=true`, `enum=[a, b]`, `pattern="x,y"`, `default={a:1, b:2}`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
}
