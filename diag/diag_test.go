package diag

import "testing"

func TestListCap(t *testing.T) {
	l := NewList(0)
	for i := range 60 {
		l.Addf(i+1, "bad line %d", i+1)
	}
	if l.Len() != DefaultCap {
		t.Fatalf("got %d diagnostics", l.Len())
	}
	if !l.At(50) || l.At(51) {
		t.Error("wrong diagnostics kept")
	}
	if got := l.Items()[0].String(); got != "line 1: bad line 1" {
		t.Errorf("got %q", got)
	}
}

func TestDiagnosticString(t *testing.T) {
	if got := New(0, "No schema defined").String(); got != "No schema defined" {
		t.Errorf("got %q", got)
	}
	if got := New(3, "x %q", "y").Message; got != `x "y"` {
		t.Errorf("got %q", got)
	}
	// no formatting without arguments
	if got := New(1, "100%").Message; got != "100%" {
		t.Errorf("got %q", got)
	}
}
