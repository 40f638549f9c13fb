// Package token implements the token type produced by the lexer and
// consumed by the parser.
package token

import (
	"errors"
	"io"
)

const (
	Period             = iota // .
	Comma                     // ,
	Semicolon                 // ;
	Equals                    // =
	EqualsEquals              // ==
	NotEquals                 // !=
	LessThan                  // <
	GreaterThan               // >
	LessThanEqualTo           // <=
	GreaterThanEqualTo        // >=
	AndAnd                    // &&
	OrOr                      // ||
	Plus                      // +
	Minus                     // -
	Times                     // *
	Divide                    // /
	Amp                       // & (bitwise and / address-of)
	Pipe                      // |
	Caret                     // ^
	Tilde                     // ~
	Bang                      // !
	LeftCurlyBrace            // {
	RightCurlyBrace           // }
	LeftParen                 // (
	RightParen                // )
	LeftBracket               // [
	RightBracket              // ]
	Integer                   // ex. 42
	Identifier                // ex. abc, abc123, ABC123
	CharLiteral               // ex. 'a'
	StringLiteral             // ex. "hi"
	Int                       // int
	Char                      // char
	Void                      // void
	If                        // if
	Else                      // else
	While                     // while
	Do                        // do
	For                       // for
	Break                     // break
	Continue                  // continue
	Return                    // return
	Asm                       // asm
	PrintStr                  // printstr
	Error                     // Special type for EOF, UnexpectedChar and MalformedChar.
)

// EOF is a pointer to a Token with the Err field set to io.EOF. It is used to
// represent the end of a token stream.
var EOF = &Token{Tag: Error, Err: io.EOF}

// UnexpectedChar is a pointer to a Token with the Err field set to
// "unexpected character". It is used to represent an input character that
// does not fit into any of the tags defined by the package.
var UnexpectedChar = &Token{Tag: Error, Err: errors.New("unexpected character")}

// MalformedChar is returned by the lexer when a character literal does not
// contain exactly one quoted character.
var MalformedChar = &Token{Tag: Error, Err: errors.New("malformed character constant")}

// Token implements a lexical token. It contains all the information needed
// by the compiler to represent a lexical unit.
type Token struct {
	Tag int    // Tag. One of the constants defined in this package.
	Val int    // Value. Set for Integer and CharLiteral tokens.
	Ln  int    // Line number.
	Lex string // Lexeme. Set for Identifier, CharLiteral and StringLiteral tokens.
	Err error  // Error.
}

// New returns a new Token with the line number field set to the argument.
func New(ln int) *Token {
	return &Token{Ln: ln}
}
