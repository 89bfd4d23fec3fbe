// Package token defines lexical token kinds for lu sources.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Comments and horizontal whitespace never reach the token stream;
//     newlines do, since they terminate expressions.
//   - Builtin type names (int32, bool, ...) are identifiers. They are
//     resolved by the analyzer through global bindings, not by the lexer.
package token
