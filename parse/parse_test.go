package parse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ldoc-format/ldoc/diag"
)

const people = `!# people
*STRICT=TRUE
@schema
name -> String
age -> Number
address -> Object {
  city -> String
}
@end

@validations
name -> required=true, minLength=2
age -> min=0; max=150
address.city -> isAlpha=true
@end

@records
#0 -> name("Ada"); age(36); address{ city("London"); };
#1 -> name("Tim"); age(70); address{
  city("Paris");
};
@end
`

func TestParse(t *testing.T) {
	doc, err := ParseString(people, ParseFilename("people.ldoc"))
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Valid() {
		t.Fatalf("diagnostics: %v", doc.Errors.All())
	}
	if !doc.FileRules.Strict {
		t.Error("strict directive ignored")
	}
	if got := doc.Schema.Keys(); !cmp.Equal(got, []string{"address", "age", "name"}) {
		t.Errorf("schema keys %v", got)
	}
	if doc.Validations.Lookup("address.city") == nil {
		t.Error("nested rules missing")
	}
	if len(doc.Records) != 2 {
		t.Fatalf("got %d records", len(doc.Records))
	}
	md := doc.Metadata
	if md.File != "people.ldoc" || md.Size != len(people) || md.Lines != 22 || md.Records != 2 {
		t.Errorf("metadata %+v", md)
	}
	if res := doc.Validate(); !res.Valid {
		t.Errorf("validation: %v", res.Errors)
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		rules  string
		record string
		want   []string
	}{
		{"A", "age -> Number", "age -> required=true; min=8; max=70", "#0 -> age(25);", nil},
		{"B", "age -> Number", "age -> required=true; min=8; max=70", "#0 -> age(5);", []string{"age should be at least 8"}},
		{"C", "name -> String", "name -> minLength=3; isAlpha=true", `#0 -> name("Al");`, []string{"name should have a length of at least 3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := fmt.Sprintf("@schema\n%s\n@end\n@validations\n%s\n@end\n@records\n%s\n@end\n", tt.schema, tt.rules, tt.record)
			doc, err := ParseString(src)
			if err != nil {
				t.Fatal(err)
			}
			if !doc.Valid() {
				t.Fatalf("diagnostics: %v", doc.Errors.All())
			}
			res := doc.Validate()
			var got []string
			for _, e := range res.Errors {
				got = append(got, e.Message)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Error(diff)
			}
			if res.Valid != (tt.want == nil) {
				t.Errorf("valid: %v", res.Valid)
			}
		})
	}
}

func TestScenarioUnknownRule(t *testing.T) {
	doc, err := ParseString("@schema\nname -> String\n@end\n@validations\nname -> foo=1\n@end\n@records\n#0 -> name(\"x\");\n@end")
	if err != nil {
		t.Fatal(err)
	}
	ds := doc.Errors.Validations
	if len(ds) != 1 || !strings.HasPrefix(ds[0].Message, "Unknown validation rule: foo") || ds[0].Line != 5 {
		t.Fatalf("got %v", ds)
	}
	if doc.Validations.Lookup("name") != nil {
		t.Error("name has rules")
	}
}

func TestScenarioOrder(t *testing.T) {
	doc, err := ParseString("@validations\nname -> required=true\n@end\n@schema\nname -> String\n@end\n@records\n#0 -> name(\"x\");\n@end")
	if err != nil {
		t.Fatal(err)
	}
	want := []diag.Diagnostic{{Line: 1, Message: "'@validations' must come after '@schema'"}}
	if diff := cmp.Diff(want, doc.Errors.Document); diff != "" {
		t.Error(diff)
	}
	if len(doc.Validations) != 0 || len(doc.Schema) != 1 || len(doc.Records) != 1 {
		t.Errorf("document %+v", doc)
	}

	doc, _ = ParseString("@records\n#0 -> a(1);\n@end\n@schema\na -> Number\n@end")
	if len(doc.Errors.Document) == 0 || doc.Errors.Document[0].Message != "'@records' must come after '@schema'" {
		t.Errorf("got %v", doc.Errors.Document)
	}
}

func TestStructure(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []diag.Diagnostic
	}{
		{
			name: "stray end",
			src:  "@end\n@schema\na -> Number\n@end\n@records\n#0 -> a(1);\n@end",
			want: []diag.Diagnostic{{Line: 1, Message: "'@end' without an open section"}},
		},
		{
			name: "stray line",
			src:  "hello\n@schema\na -> Number\n@end\n@records\n#0 -> a(1);\n@end",
			want: []diag.Diagnostic{{Line: 1, Message: "Unexpected line outside of a section: 'hello'"}},
		},
		{
			name: "reopen",
			src:  "@schema\na -> Number\n@schema\nb -> String\n@end\n@records\n#0 -> a(1);\n@end",
			want: []diag.Diagnostic{{Line: 3, Message: "'@schema' is already open"}},
		},
		{
			name: "unclosed",
			src:  "@schema\na -> Number\n@end\n@records\n#0 -> a(1);",
			want: []diag.Diagnostic{{Message: "Section '@records' is not closed by '@end'"}},
		},
		{
			name: "empty",
			src:  "!# nothing here\n",
			want: []diag.Diagnostic{{Message: "No schema defined"}, {Message: "No records defined"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, doc.Errors.Document); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestStrictFatal(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts []ParseOption
	}{
		{"after section", "@schema\na -> Number\n@end\n*STRICT=TRUE", nil},
		{"duplicate", "*STRICT=TRUE\n*STRICT=FALSE\n@schema\na -> Number\n@end", nil},
		{"bad value", "*STRICT=yes\n@schema\na -> Number\n@end", nil},
		{"malformed", "*STRICT TRUE\n@schema\na -> Number\n@end", nil},
		{"single section", "*STRICT=TRUE\n@schema\na -> Number\n@end", []ParseOption{ParseSchemaOnly()}},
		{"inside section", "@schema\n*STRICT=TRUE\na -> Number\n@end", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.src, tt.opts...)
			if !errors.Is(err, ErrStructural) {
				t.Errorf("got %v", err)
			}
			if doc != nil {
				t.Error("document returned with a structural error")
			}
		})
	}
}

func TestSingleSection(t *testing.T) {
	doc, err := ParseString(people, ParseValidationsOnly())
	if err == nil || !errors.Is(err, ErrStructural) {
		t.Fatalf("strict with single section: %v", err)
	}
	src := strings.Replace(people, "*STRICT=TRUE\n", "", 1)

	doc, err = ParseString(src, ParseSchemaOnly())
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Schema) != 3 || len(doc.Validations) != 0 || len(doc.Records) != 0 || !doc.Valid() {
		t.Errorf("schema only: %+v", doc)
	}

	doc, err = ParseString(src, ParseValidationsOnly())
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Validations) != 3 || len(doc.Records) != 0 || !doc.Valid() {
		t.Errorf("validations only: %+v", doc.Errors)
	}

	doc, err = ParseString(src, ParseRecordsOnly())
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Records) != 2 || len(doc.Schema) != 0 || !doc.Valid() {
		t.Errorf("records only: %+v", doc.Errors)
	}

	doc, err = ParseString("@schema\na -> Number\n@end", ParseRecordsOnly())
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Errors.Document) != 1 || doc.Errors.Document[0].Message != "No '@records' section found" {
		t.Errorf("got %v", doc.Errors.Document)
	}
}

func TestSectionErrorsSeparate(t *testing.T) {
	src := "@schema\na -> Nope\nb -> Number\n@end\n@validations\nb -> min=x\n@end\n@records\n#0 -> b(oops);\n@end"
	doc, err := ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Errors.Schema) != 1 || len(doc.Errors.Validations) != 1 || len(doc.Errors.Records) != 1 {
		t.Errorf("errors %+v", doc.Errors)
	}
	if doc.Errors.Len() != len(doc.Errors.All()) {
		t.Error("All and Len disagree")
	}
}

func TestCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("@schema\na -> Number\n@end\n@validations\n")
	for i := range 60 {
		fmt.Fprintf(&b, "missing%d -> required=true\n", i)
	}
	b.WriteString("@end\n@records\n#0 -> a(1);\n@end\n")
	doc, err := ParseString(b.String())
	if err != nil {
		t.Fatal(err)
	}
	if n := len(doc.Errors.Validations); n != diag.DefaultCap {
		t.Errorf("got %d diagnostics", n)
	}
	doc, _ = ParseString(b.String(), ParseMaxErrors(10))
	if n := len(doc.Errors.Validations); n != 10 {
		t.Errorf("got %d diagnostics with a cap of 10", n)
	}
}

func TestRecordLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("@schema\na -> Number\n@end\n@records\n")
	for i := range 5 {
		fmt.Fprintf(&b, "#%d -> a(%d);\n", i, i)
	}
	b.WriteString("@end\n@records\n#5 -> a(5);\n@end\n")
	doc, err := ParseString(b.String(), ParseRecordLimit(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Records) != 3 {
		t.Errorf("got %d records", len(doc.Records))
	}
	doc, _ = ParseString(b.String())
	if len(doc.Records) != 6 {
		t.Errorf("got %d records", len(doc.Records))
	}
}

func TestIdempotent(t *testing.T) {
	d1, _ := ParseString(people)
	d2, _ := ParseString(people)
	if diff := cmp.Diff(d1.Schema, d2.Schema); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(d1.Validations, d2.Validations); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(d1.Records, d2.Records); diff != "" {
		t.Error(diff)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.ldoc")
	if err := os.WriteFile(path, []byte(people), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Metadata.File != path || len(doc.Records) != 2 {
		t.Errorf("metadata %+v", doc.Metadata)
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.ldoc")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v", err)
	}
	doc, err = ParseReader(strings.NewReader(people))
	if err != nil || len(doc.Records) != 2 {
		t.Errorf("reader: %v", err)
	}
}

func TestSectionNames(t *testing.T) {
	for _, s := range []Section{AllSections, SchemaSection, ValidationsSection, RecordsSection} {
		got, err := ParseSectionName(s.String())
		if err != nil || got != s {
			t.Errorf("%s: %v %v", s, got, err)
		}
	}
	if _, err := ParseSectionName("nope"); !errors.Is(err, ErrSection) {
		t.Errorf("got %v", err)
	}
	if _, err := ParseString("", ParseSection(Section(9))); !errors.Is(err, ErrSection) {
		t.Errorf("got %v", err)
	}
}

func TestDocumentData(t *testing.T) {
	doc, _ := ParseString(people)
	data := doc.Data()
	want := map[string]any{"name": "Ada", "age": 36.0, "address": map[string]any{"city": "London"}}
	if diff := cmp.Diff(want, data[0]); diff != "" {
		t.Error(diff)
	}
}
