// Package parse parses ldoc documents.
//
// # Usage
//
//	doc, err := parse.ParseFile("people.ldoc")
//	if err != nil {
//	    return err // a structural error, see ErrStructural
//	}
//	for _, d := range doc.Errors.All() {
//	    fmt.Println(d)
//	}
//	res := doc.Validate()
//
//	// only the schema
//	doc, err = parse.ParseString(text, parse.ParseSchemaOnly())
//
// A document is an optional `*STRICT=TRUE|FALSE` directive followed by
// sections, each closed by `@end`:
//
//	*STRICT=TRUE
//	@schema
//	age -> Number
//	@end
//	@validations
//	age -> required=true; min=8
//	@end
//	@records
//	#0 -> age(25);
//	@end
//
// `@validations` and `@records` must follow `@schema`. Problems within
// sections are collected as diagnostics, at most 50 per section by
// default, and parsing goes on.
//
// # Related Packages
//
//   - github.com/ldoc-format/ldoc/schema - the `@schema` section
//   - github.com/ldoc-format/ldoc/rules - the `@validations` section
//   - github.com/ldoc-format/ldoc/records - the `@records` section
//   - github.com/ldoc-format/ldoc/validate - runtime validation
package parse
