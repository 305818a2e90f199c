// Package rules holds the rule applicability table and compiles the
// `@validations` section of an ldoc document against a compiled schema.
//
//	@validations
//	name -> required=true, minLength=3
//	age -> min=8; max=70
//	address.city -> pattern="/^[A-Z]/"
//	status -> default="active", enum=[active, closed]
//	@end
//
// Clauses are separated by `,` or `;`. Rule values follow the grammar of
// literal.ParseRule; the `default` rule spells booleans and null as
// records do (TRUE, FALSE, NULL) while every other rule spells them in
// lower case.
package rules
