// Package renumber rewrites the `#<n>` heads of the records of an ldoc
// document so that they count up from a start index in document order.
//
//	res := renumber.Renumber(text)
//	if len(res.Changes) != 0 {
//	    fmt.Print(renumber.Diff("people.ldoc", text, res.Text))
//	}
//
// Only record heads inside `@records` sections change. Continuation lines
// of multi-line records, comments and other sections are kept verbatim.
package renumber
