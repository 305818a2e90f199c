// Package format names the output formats of the ldoc tools.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	if errors.Is(err, format.ErrBadFormat) {
//	    ...
//	}
//
// Text output of documents, schemas, rule sets and records is ldoc
// notation and parses back to the same values. YAML and JSON output carry
// the same content as plain data.
//
// # Related Packages
//
//   - github.com/ldoc-format/ldoc/encode - render documents and results
package format
