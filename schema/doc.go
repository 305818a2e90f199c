// Package schema compiles the `@schema` section of an ldoc document.
//
// Each line declares a field and its union of types:
//
//	@schema
//	!# people
//	name -> String
//	age -> Number | Null
//	address -> Object {
//	  city -> String
//	  geo -> Object {
//	    lat -> Number
//	    lng -> Number
//	  }
//	}
//	orders -> ObjectArray {
//	  sku -> String
//	}
//	@end
//
// A declaration ending in `{` opens a block of nested declarations closed
// by a `}` line. Object blocks describe the properties of the object;
// ObjectArray blocks describe the properties of every item.
//
// Unknown types and malformed lines are reported as diagnostics and the
// field is left out. Declaring a key again replaces its types and merges
// its nested declarations.
package schema
