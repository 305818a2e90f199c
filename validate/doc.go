// Package validate checks data against a compiled schema and rule set.
//
// Two passes run for each value, either may be skipped by leaving its
// input nil:
//
//   - the shape pass checks every declared field present in the data
//     against its types, recursing into Object properties and ObjectArray
//     items;
//   - the rule pass evaluates the rules of each node of the rule set,
//     recursing into nested objects and into each element of arrays.
//
// Data may be the output of ir.Value.Data or ordinary Go maps, slices and
// scalars; it is normalized first (see Normalize).
//
//	res := validate.Validate(validate.Input{
//		Schema: doc.Schema,
//		Rules:  doc.Validations,
//		Data:   map[string]any{"age": 5},
//	})
//	for _, e := range res.Errors {
//		fmt.Println(e.Message) // age should be at least 8
//	}
package validate
