package encode

import (
	"bytes"
	"strings"
)

// MustString encodes v with opts, trimmed, panicking on error. It is a
// helper for tests and debugging.
func MustString(v any, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(v, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
