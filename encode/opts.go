package encode

import "github.com/ldoc-format/ldoc/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeFilename names the source in text output.
func EncodeFilename(name string) EncodeOption {
	return func(es *EncState) { es.filename = name }
}
