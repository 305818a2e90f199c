// Package encode renders parse results, validation results and
// diagnostics as text, YAML or JSON.
//
// # Usage
//
//	doc, err := parse.ParseFile("people.ldoc")
//	...
//	// ldoc notation, coloured for a terminal
//	err = encode.Encode(doc, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
//	// plain data
//	err = encode.Encode(doc, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//
// Text output of a document is a canonical ldoc document: sections in
// order, schema fields sorted, rules in rule table order, one record per
// line, with the diagnostics appended as comments.
//
// YAML and JSON output convert records to plain data. Integers outside
// the exact float64 range are JSON numbers and YAML strings; binary
// values are `<Buffer ..>` strings; undefined is null.
//
// # Related Packages
//
//   - github.com/ldoc-format/ldoc/format - output formats
//   - github.com/ldoc-format/ldoc/parse - documents
package encode
