package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseFormat(f.String())
		if err != nil || got != f {
			t.Errorf("%s: got %v %v", f, got, err)
		}
		short, _ := ParseFormat(f.String()[:1])
		if short != f {
			t.Errorf("%s: short form gave %s", f, short)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("got %v", err)
	}
	var f Format
	if err := f.UnmarshalText([]byte("json")); err != nil || !f.IsJSON() {
		t.Errorf("unmarshal: %v %v", f, err)
	}
}

func TestFromFilename(t *testing.T) {
	for _, tc := range []struct {
		name string
		want Format
		ok   bool
	}{
		{"people.ldoc", TextFormat, true},
		{"data/People.YML", YAMLFormat, true},
		{"x.json", JSONFormat, true},
		{"notes.txt", 0, false},
	} {
		got, ok := FromFilename(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Errorf("%s: got %s %v", tc.name, got, ok)
		}
	}
	if _, err := Format(7).MarshalText(); err == nil {
		t.Error("expected error")
	}
}
