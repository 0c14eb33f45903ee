// Package minijson implements MINIJSON, a compact text codec for the JSON
// value model.
//
// MINIJSON trades JSON's quotes, commas and keywords for single delimiter
// characters and writes numbers in base 36, so most documents shrink while
// staying printable text.
//
// # Syntax
//
//	null:     (empty)
//	Bool:     + / -
//	Number:   -3f.co  (-123.456)   1^l  (1e21)   NaN   Infinity
//	String:   %hello\|world        (every | : [ ] { } is backslash-escaped)
//	Array:    [1|2|%x]
//	Object:   {name:%ada|tags:[%a|%b]}
//
// Every token's type is decided by its first characters, so decoding never
// backtracks: container tokens are read in one left-to-right pass with an
// explicit stack.
//
// # Missing Values
//
// Values with no representation (Undefined, Go funcs) are dropped from
// objects and leave an empty slot in arrays, so [Undefined, 1] encodes as
// [|1] and decodes to [null, 1]. At the top level Stringify returns
// ErrNoOutput.
//
// # Limitations
//
//   - A backslash directly before a delimiter, or at the end of a string
//     inside a container, cannot be told apart from an escape.
//   - [] is both the empty array and an array holding one null; it decodes
//     as the empty array.
//   - Numbers are float64; integers beyond 2^53 lose precision.
//
// # Example
//
//	tok, err := minijson.Stringify(map[string]any{"a": 1, "b": []any{true, "x"}})
//	// tok == "{a:1|b:[+|%x]}"
//	v, err := minijson.Parse(tok)
//	// v.Get("b").Len() == 2
package minijson
