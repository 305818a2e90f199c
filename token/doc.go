// Package token provides line-level lexing for ldoc documents.
//
// ldoc is line oriented. A [Cursor] walks the physical lines of a
// document and is handed from compiler to compiler by value: each
// compiler receives the cursor positioned after its section marker,
// advances its own copy, and returns it positioned on the line that ended
// its work (normally `@end`).
//
//	cur := token.FromString(text)
//	for !cur.Done() {
//	    ln, no, next := cur.Next()
//	    switch token.Classify(ln) {
//	    case token.KComment, token.KBlank:
//	    ...
//	    }
//	    cur = next
//	}
//
// [Classify] recognizes section markers (`@schema`, `@validations`,
// `@records`, `@end`), the `*STRICT=` directive, `!#` comments and blank
// lines.
package token
