package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ldoc-format/ldoc/diag"
	"github.com/ldoc-format/ldoc/format"
	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/parse"
	"github.com/ldoc-format/ldoc/validate"

	"github.com/goccy/go-yaml"
)

const people = `*STRICT=TRUE
@schema
name -> String
age -> Number | Null
address -> Object {
  city -> String
}
tags -> StringArray
@end
@validations
name -> required=true, minLength=2, pattern="^[A-Z]"
age -> min=0; max=150; default=NULL
address.city -> isAlpha=true
@end
@records
#0 -> name("Ada"); age(36); address{ city("London"); }; tags[ _0("x"); _1("y"); ];
#1 -> name("Tim"); age(NULL); address{
  city("Paris");
};
#2 -> name("Big"); age(12345678901234567890); born(10th December 1815); blob(<Buffer 0a ff>); note();
@end
`

func mustParse(t *testing.T, src string) *parse.Document {
	t.Helper()
	doc, err := parse.ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

func TestEncodeSchema(t *testing.T) {
	doc := mustParse(t, people)
	got := MustString(doc.Schema)
	want := `address -> Object {
  city -> String
}
age -> Number | Null
name -> String
tags -> StringArray`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeRules(t *testing.T) {
	doc := mustParse(t, people)
	got := MustString(doc.Validations)
	want := `address.city -> isAlpha=true
age -> default=NULL, min=0, max=150
name -> required=true, pattern="^[A-Z]", minLength=2`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeRecords(t *testing.T) {
	doc := mustParse(t, people)
	got := MustString(doc.Records)
	want := `#0 -> name("Ada"); age(36); address{ city("London"); }; tags[ _0("x"); _1("y"); ];
#1 -> name("Tim"); age(NULL); address{ city("Paris"); };
#2 -> name("Big"); age(12345678901234567890); born(10th December 1815); blob(<Buffer 0a ff>); note();`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeDocumentRoundTrip(t *testing.T) {
	doc := mustParse(t, people)
	if !doc.Valid() {
		t.Fatalf("diagnostics: %v", doc.Errors.All())
	}
	text := MustString(doc, Indent(4))
	again := mustParse(t, text)
	if !again.Valid() {
		t.Fatalf("re-parse diagnostics: %v\n%s", again.Errors.All(), text)
	}
	if !again.FileRules.Strict {
		t.Error("strict lost")
	}
	opts := cmp.Options{
		cmpopts.IgnoreFields(ir.Record{}, "Line"),
		cmp.Comparer(func(a, b ir.UndefinedValue) bool { return true }),
	}
	if d := cmp.Diff(doc.Schema, again.Schema); d != "" {
		t.Errorf("schema (-want +got):\n%s", d)
	}
	if d := cmp.Diff(doc.Validations, again.Validations, opts); d != "" {
		t.Errorf("validations (-want +got):\n%s", d)
	}
	if d := cmp.Diff(doc.Records, again.Records, opts, cmp.Comparer(bigEqual)); d != "" {
		t.Errorf("records (-want +got):\n%s", d)
	}
}

func TestEncodeDocumentDiagnostics(t *testing.T) {
	doc := mustParse(t, "@schema\nname -> Strin\n@end\n")
	got := MustString(doc)
	for _, want := range []string{"!# line 2:", "!# No records defined"} {
		if !strings.Contains(got, want) {
			t.Errorf("%q not in\n%s", want, got)
		}
	}
}

func TestEncodeJSON(t *testing.T) {
	doc := mustParse(t, people)
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, EncodeFormat(format.JSONFormat)); err != nil {
		t.Fatal(err)
	}
	var got struct {
		FileRules   map[string]bool
		Schema      map[string]any
		Validations map[string]map[string]any
		Records     []struct {
			Index  int
			Fields map[string]json.RawMessage
		}
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.FileRules["strict"] {
		t.Error("strict")
	}
	if got.Schema["name"] != "String" {
		t.Errorf("schema name: %v", got.Schema["name"])
	}
	wantCity := map[string]any{"types": "Object", "properties": map[string]any{"city": "String"}}
	if d := cmp.Diff(wantCity, got.Schema["address"]); d != "" {
		t.Errorf("address (-want +got):\n%s", d)
	}
	if got.Validations["age"]["default"] != nil || got.Validations["age"]["max"] != 150.0 {
		t.Errorf("age rules: %v", got.Validations["age"])
	}
	if len(got.Records) != 3 || got.Records[2].Index != 2 {
		t.Fatalf("records: %+v", got.Records)
	}
	fields := got.Records[2].Fields
	for k, want := range map[string]string{
		"age":  "12345678901234567890",
		"blob": `"<Buffer 0a ff>"`,
		"note": "null",
	} {
		if string(fields[k]) != want {
			t.Errorf("%s: got %s want %s", k, fields[k], want)
		}
	}
}

func TestEncodeYAML(t *testing.T) {
	doc := mustParse(t, people)
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc.Records, buf, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	var got []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records", len(got))
	}
	fields := got[2]["fields"].(map[string]any)
	if fields["age"] != "12345678901234567890" {
		t.Errorf("age: %#v", fields["age"])
	}
	if fields["note"] != nil {
		t.Errorf("note: %#v", fields["note"])
	}
}

func TestEncodeResult(t *testing.T) {
	zero := 0
	res := &validate.Result{Errors: []diag.FieldError{
		{Field: "age", Rule: "min", Message: "age should be at least 8", Record: &zero},
		{Field: "name", Message: "name should be of type String, got number"},
	}}
	got := MustString(res)
	want := "#0 age (min): age should be at least 8\nname: name should be of type String, got number"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	if got := MustString(&validate.Result{Valid: true}); got != "valid" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeDiagnosticsColors(t *testing.T) {
	colors := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Kind: ir.StringKind, Attr: ErrorColor}: func(s string, _ ...any) string { return "<" + s + ">" },
		},
	}
	buf := bytes.NewBuffer(nil)
	ds := []diag.Diagnostic{diag.New(3, "bad"), diag.New(0, "worse")}
	if err := EncodeDiagnostics("a.ldoc", ds, buf, EncodeColors(colors)); err != nil {
		t.Fatal(err)
	}
	want := "a.ldoc:3: <bad>\na.ldoc: <worse>\n"
	if buf.String() != want {
		t.Errorf("got %q want %q", buf.String(), want)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	err := Encode(42, bytes.NewBuffer(nil))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v", err)
	}
}

func TestRuleText(t *testing.T) {
	doc := mustParse(t, "@schema\nx -> String\n@end\n@validations\nx -> enum=[a, \"b,c\"]; custom=\"len(value) > 1\"\n@end\n@records\n#0 -> x(\"ab\");\n@end\n")
	if !doc.Valid() {
		t.Fatal(doc.Errors.All())
	}
	got := MustString(doc.Validations)
	want := `x -> enum=[a, "b,c"], custom="len(value) > 1"`
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}
