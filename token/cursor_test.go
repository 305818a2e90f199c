package token

import "testing"

func TestCursor(t *testing.T) {
	c := FromString("a\r\nb\n\nc\n")
	if c.Len() != 4 {
		t.Fatalf("len %d", c.Len())
	}
	var got []string
	var nos []int
	for !c.Done() {
		ln, no, next := c.Next()
		got = append(got, ln)
		nos = append(nos, no)
		c = next
	}
	want := []string{"a", "b", "", "c"}
	for i := range want {
		if got[i] != want[i] || nos[i] != i+1 {
			t.Errorf("line %d: %q/%d", i, got[i], nos[i])
		}
	}
	if _, _, after := c.Next(); !after.Done() || after.LineNo() != 5 {
		t.Errorf("next past end: %d", after.LineNo())
	}
}

func TestCursorIsValue(t *testing.T) {
	c := FromString("x\ny")
	d := c.Advance()
	if ln, _ := c.Line(); ln != "x" {
		t.Errorf("original cursor moved: %q", ln)
	}
	if ln, no := d.Line(); ln != "y" || no != 2 {
		t.Errorf("advanced cursor: %q %d", ln, no)
	}
}

func TestClassify(t *testing.T) {
	tests := map[string]Kind{
		"":              KBlank,
		"   ":           KBlank,
		"!# hello":      KComment,
		"  @schema ":    KSchema,
		"@validations":  KValidations,
		"@records":      KRecords,
		"@end":          KEnd,
		"*STRICT=TRUE":  KStrict,
		"age -> Number": KOther,
		"@schemas":      KOther,
		"#0 -> a(1);":   KOther,
	}
	for in, want := range tests {
		if got := Classify(in); got != want {
			t.Errorf("%q: got %s want %s", in, got, want)
		}
	}
}

func TestSplitArrow(t *testing.T) {
	l, r, ok := SplitArrow(" a.b -> min=1 -> x")
	if !ok || l != "a.b" || r != "min=1 -> x" {
		t.Errorf("got %q %q %v", l, r, ok)
	}
	if _, _, ok := SplitArrow("no arrow"); ok {
		t.Error("expected no arrow")
	}
}
