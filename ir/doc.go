// Package ir provides the in-memory representation shared by the ldoc
// compilers and the runtime validator.
//
// # Type Vocabulary
//
// [Type] is the closed set of type tags a schema may declare:
//
//   - scalars: String, Number, Boolean, Null, undefined, Date, Binary
//   - fixed element arrays: StringArray, NumberArray, BooleanArray,
//     NullArray, DateArray, BinaryArray
//   - Array (any elements), ObjectArray, Object
//   - Any
//
// A field declares an ordered union of these as a [TypeSet].
//
// # Schemas
//
// A [Schema] maps top-level field names to [SchemaNode]s. Object nodes
// carry nested declarations in Properties; ObjectArray nodes carry the
// declaration of their items in Items. Nested declarations are addressed
// with dot-paths:
//
//	node := s.Resolve("address.city")
//
// # Rule Sets
//
// A [RuleSet] mirrors dot-paths: each [RuleNode] holds the rules declared
// for its path, keyed by rule name, and the rule nodes of nested paths.
// Rule values are the tagged union [RuleValue].
//
// # Values and Records
//
// Record values are the tagged union [Value], tagged by [Kind]. Objects
// keep field order ([Object]); arrays keep their element labels as
// opaque, order-preserving text. A [Record] is an indexed [Object].
//
// [Value.Data] and [Record.Data] convert to plain Go data for the runtime
// validator.
//
// # Thread Safety
//
// Nothing in this package is synchronized. Compiled schemas, rule sets and
// records are not modified after compilation and may be read concurrently.
package ir
