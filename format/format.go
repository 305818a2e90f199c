package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output (and data input) format of the ldoc tools.
type Format int

const (
	TextFormat Format = iota
	YAMLFormat
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

var names = [...]string{
	TextFormat: "text",
	YAMLFormat: "yaml",
	JSONFormat: "json",
}

// ParseFormat accepts a format name or its first letter.
func ParseFormat(v string) (Format, error) {
	for i, n := range names {
		if v == n || v == n[:1] {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromFilename guesses the format of a file from its extension. ldoc
// documents are TextFormat.
func FromFilename(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ldoc", ".ld":
		return TextFormat, true
	case ".yaml", ".yml":
		return YAMLFormat, true
	case ".json":
		return JSONFormat, true
	}
	return 0, false
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	if f < 0 || int(f) >= len(names) {
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
	return []byte(names[f]), nil
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsText() bool { return f == TextFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{TextFormat, YAMLFormat, JSONFormat}
}
