// Package records compiles the `@records` section of an ldoc document.
//
//	@records
//	#0 -> name("Ada"); age(36); born(10th December 1815);
//	#1 -> name("Tim"); tags[ _0("x"); _1("y"); ]; address{
//	        city("Paris");
//	        geo{ lat(48.85); };
//	      };
//	#2 -> blob(<Buffer 0a ff>); note(); missing(NULL);
//	@end
//
// Each record is a `#<n> ->` head followed by terms ending in `;`:
// `field(value)` holds a scalar, `field[...]` an array of labelled terms
// and `field{...}` an object. Scalars follow literal.Infer. Array labels
// are kept in source order and are not checked.
//
// Records are not checked against the schema here; see package validate.
package records
