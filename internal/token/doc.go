// Package token defines JavaScript token kinds and trivia.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Contextual words (let, of, get, set, async, await, yield, static, as, from)
//     are lexed as Ident; the parser decides their role.
//   - Comments and whitespace never reach the token stream; they are kept as
//     leading Trivia of the next token.
package token
