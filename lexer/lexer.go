// Package lexer implements a lexical analyzer for the simplec source
// language.
package lexer

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/saicheems/simplec/token"
)

// Lexer implements the lexical scanning phase of the compilation.
type Lexer struct {
	rd   *bufio.Reader
	res  map[string]int // Map of reserved keywords.
	peek byte           // Peek byte.
	ln   int            // Current line number in input stream.
}

// New returns a new Lexer given an already open File. A bufio.Reader is
// created over it to read input characters.
func New(f *os.File) *Lexer {
	l := new(Lexer)
	l.rd = bufio.NewReader(f)
	l.res = make(map[string]int)
	l.loadKeywords()
	return l
}

// NewFromString returns a new Lexer given a string. Used to create a new
// lexer for testing.
func NewFromString(s string) *Lexer {
	l := new(Lexer)
	l.rd = bufio.NewReader(strings.NewReader(s))
	l.res = make(map[string]int)
	l.loadKeywords()
	return l
}

// Scan returns the next valid token from the input stream. If a lexing
// error occurs, it returns a Token of type Error. If the input stream is
// completed then token.EOF is returned. Otherwise token.UnexpectedChar is
// returned.
func (l *Lexer) Scan() *token.Token {
	if l.readCharAndWhitespace() != nil {
		return token.EOF
	}
	if l.scanComments() != nil {
		return token.EOF
	}
	tok := token.New(l.ln)
	switch l.peek {
	case '.':
		tok.Tag = token.Period
		return tok
	case ',':
		tok.Tag = token.Comma
		return tok
	case ';':
		tok.Tag = token.Semicolon
		return tok
	case '=':
		tok.Tag = token.Equals
		if m, _ := l.readCharAndMatch('='); m {
			tok.Tag = token.EqualsEquals
		} else {
			l.unreadChar()
		}
		return tok
	case '!':
		tok.Tag = token.Bang
		if m, _ := l.readCharAndMatch('='); m {
			tok.Tag = token.NotEquals
		} else {
			l.unreadChar()
		}
		return tok
	case '<':
		tok.Tag = token.LessThan
		if m, _ := l.readCharAndMatch('='); m {
			tok.Tag = token.LessThanEqualTo
		} else {
			l.unreadChar()
		}
		return tok
	case '>':
		tok.Tag = token.GreaterThan
		if m, _ := l.readCharAndMatch('='); m {
			tok.Tag = token.GreaterThanEqualTo
		} else {
			l.unreadChar()
		}
		return tok
	case '&':
		tok.Tag = token.Amp
		if m, _ := l.readCharAndMatch('&'); m {
			tok.Tag = token.AndAnd
		} else {
			l.unreadChar()
		}
		return tok
	case '|':
		tok.Tag = token.Pipe
		if m, _ := l.readCharAndMatch('|'); m {
			tok.Tag = token.OrOr
		} else {
			l.unreadChar()
		}
		return tok
	case '^':
		tok.Tag = token.Caret
		return tok
	case '~':
		tok.Tag = token.Tilde
		return tok
	case '*':
		tok.Tag = token.Times
		return tok
	case '/':
		tok.Tag = token.Divide
		return tok
	case '+':
		tok.Tag = token.Plus
		return tok
	case '-':
		tok.Tag = token.Minus
		return tok
	case '{':
		tok.Tag = token.LeftCurlyBrace
		return tok
	case '}':
		tok.Tag = token.RightCurlyBrace
		return tok
	case '(':
		tok.Tag = token.LeftParen
		return tok
	case ')':
		tok.Tag = token.RightParen
		return tok
	case '[':
		tok.Tag = token.LeftBracket
		return tok
	case ']':
		tok.Tag = token.RightBracket
		return tok
	case '\'':
		return l.scanCharLiteral()
	case '"':
		return l.scanStringLiteral()
	}
	if isAlpha(l.peek) {
		var strBuf bytes.Buffer
		for {
			strBuf.WriteByte(l.peek)
			err := l.readChar()
			if err != nil {
				break
			}
			if !(isAlpha(l.peek) || isDigit(l.peek)) {
				l.unreadChar()
				break
			}
		}
		lexeme := strBuf.String()
		tok.Tag = token.Identifier
		if tag, ok := l.res[lexeme]; ok {
			tok.Tag = tag
		}
		// We won't set the lexeme of the token if it's a keyword.
		if tok.Tag == token.Identifier {
			tok.Lex = lexeme
		}
		return tok
	}
	if isDigit(l.peek) {
		v := 0
		for {
			v = 10*v + convertCharDigitToInt(l.peek)
			err := l.readChar()
			if err != nil {
				break
			}
			if !isDigit(l.peek) {
				l.unreadChar()
				break
			}
		}
		tok.Tag = token.Integer
		tok.Val = v
		return tok
	}
	return token.UnexpectedChar
}

// scanCharLiteral scans a single-quoted character constant such as 'a'. It
// includes the surrounding quotes in Lex.
func (l *Lexer) scanCharLiteral() *token.Token {
	tok := token.New(l.ln)
	var buf bytes.Buffer
	buf.WriteByte('\'')
	if err := l.readChar(); err != nil {
		return token.MalformedChar
	}
	if l.peek == '\'' {
		return token.MalformedChar
	}
	buf.WriteByte(l.peek)
	if err := l.readChar(); err != nil {
		return token.MalformedChar
	}
	if l.peek != '\'' {
		return token.MalformedChar
	}
	buf.WriteByte('\'')
	tok.Tag = token.CharLiteral
	tok.Lex = buf.String()
	tok.Val = int(buf.Bytes()[1])
	return tok
}

// scanStringLiteral scans a double-quoted string such as "hi". The closing
// quote is consumed; Lex holds the string contents without quotes.
func (l *Lexer) scanStringLiteral() *token.Token {
	tok := token.New(l.ln)
	var buf bytes.Buffer
	for {
		if err := l.readChar(); err != nil {
			return token.MalformedChar
		}
		if l.peek == '"' {
			break
		}
		buf.WriteByte(l.peek)
	}
	tok.Tag = token.StringLiteral
	tok.Lex = buf.String()
	return tok
}

// scanComments checks for block comments or line comments and eats input
// until they are terminated. It returns an io.EOF error if EOF is
// encountered. Otherwise it returns nil.
func (l *Lexer) scanComments() error {
	if l.peek == '/' {
		match, err := l.readCharAndMatch('*')
		if err != nil {
			// We'll return nil in this case so we can pick up the divide token...
			return nil
		}
		if match {
			for {
				match, err := l.readCharAndMatch('*')
				if err != nil {
					return err
				}
				if match {
					match, err := l.readCharAndMatch('/')
					if err != nil {
						return err
					}
					if match {
						// Skip ahead to the next non-whitespace peek char.
						err := l.readCharAndWhitespace()
						if err != nil {
							return err
						}
						break
					}
					l.unreadChar()
				}
			}
		} else {
			l.unreadChar()
			match, err := l.readCharAndMatch('/')
			if err != nil {
				return err
			}
			if match {
				for {
					err := l.readChar()
					if err != nil {
						return err
					}
					if l.peek == '\n' {
						err := l.readCharAndWhitespace()
						if err != nil {
							return err
						}
						break
					}
				}
			} else {
				l.unreadChar()
				// We need to reset the state so division op can be read.
				l.peek = '/'
			}
		}
	}
	return nil
}

// loadKeywords loads reserved keywords into the reserved keyword table.
// Should be called on init.
func (l *Lexer) loadKeywords() {
	l.res["int"] = token.Int
	l.res["char"] = token.Char
	l.res["void"] = token.Void
	l.res["if"] = token.If
	l.res["else"] = token.Else
	l.res["while"] = token.While
	l.res["do"] = token.Do
	l.res["for"] = token.For
	l.res["break"] = token.Break
	l.res["continue"] = token.Continue
	l.res["return"] = token.Return
	l.res["asm"] = token.Asm
	l.res["printstr"] = token.PrintStr
}

// readChar reads a single character from the input stream and sets peek. It
// returns the error io.EOF if EOF is encountered. Otherwise it returns nil.
func (l *Lexer) readChar() error {
	c, err := l.rd.ReadByte()
	if err != nil {
		return err
	}
	l.peek = c
	return nil
}

// readCharAndWhitespace disregards all whitespace before the first
// non-whitespace character in the input stream. It stops at the first
// non-whitespace character and sets peek. It returns the error io.EOF if
// EOF is encountered. Otherwise it returns nil.
func (l *Lexer) readCharAndWhitespace() error {
	for {
		c, err := l.rd.ReadByte()
		if err != nil {
			return err
		}
		if c == '\n' {
			l.ln++
		} else if c == ' ' || c == '\t' || c == '\r' {
			continue
		} else {
			l.peek = c
			break
		}
	}
	return nil
}

// readCharAndMatch calls readChar and matches the input character to the
// peek character. If they match, the function returns true. Otherwise it
// returns false. The error returned will be either io.EOF or nil.
func (l *Lexer) readCharAndMatch(c byte) (bool, error) {
	err := l.readChar()
	if err != nil {
		return false, err
	}
	if l.peek != c {
		return false, nil
	}
	l.peek = ' '
	return true, nil
}

// unreadChar unreads the last character read from the input stream. It does
// not modify peek.
func (l *Lexer) unreadChar() error {
	// Error should never be encountered.
	return l.rd.UnreadByte()
}

// isAlpha returns true if the input byte is an ASCII alphabetic character
// (a-z, A-Z) or an underscore. Otherwise it returns false.
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// isDigit returns true if the input byte is an ASCII digit (0-9). Otherwise
// it returns false.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// convertCharDigitToInt returns the integer version of the input byte if the
// input byte is a digit (0-9). Otherwise it returns -1.
func convertCharDigitToInt(c byte) int {
	if isDigit(c) {
		return int(c - '0')
	}
	return -1
}
