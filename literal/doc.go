// Package literal implements the literal grammars shared by the ldoc
// compilers.
//
// There are two grammars:
//
//   - the record value grammar ([Infer]), applied to the text inside
//     `field(...)` terms and to the values of `{k: v}` rule maps;
//   - the rule value grammar ([ParseRule]), applied to the right side of
//     `rule=value` clauses. It takes a [CaseMode]: the `default` rule
//     spells its keywords TRUE, FALSE and NULL like records do, every
//     other rule spells them true, false and null.
//
// [ParseDate] recognizes the date forms both grammars and the runtime
// validator accept.
package literal
