package lexer

import (
	"testing"

	"github.com/saicheems/simplec/token"
)

type testPair struct {
	test   string
	expect token.Token
}

var tests = []testPair{
	{"", token.Token{Tag: token.Error, Err: token.EOF.Err}},
	{" ", token.Token{Tag: token.Error, Err: token.EOF.Err}},
	{"\t\n  ", token.Token{Tag: token.Error, Err: token.EOF.Err}},

	{"//a comment\n", token.Token{Tag: token.Error, Err: token.EOF.Err}},
	{"/* a\nblock\ncomment */", token.Token{Tag: token.Error, Err: token.EOF.Err}},
	{"@", token.Token{Tag: token.Error, Err: token.UnexpectedChar.Err}},

	{"+", token.Token{Tag: token.Plus}},
	{"-", token.Token{Tag: token.Minus}},
	{"*", token.Token{Tag: token.Times}},
	{"/", token.Token{Tag: token.Divide}},
	{"&", token.Token{Tag: token.Amp}},
	{"&&", token.Token{Tag: token.AndAnd}},
	{"|", token.Token{Tag: token.Pipe}},
	{"||", token.Token{Tag: token.OrOr}},
	{"==", token.Token{Tag: token.EqualsEquals}},
	{"!=", token.Token{Tag: token.NotEquals}},
	{"<=", token.Token{Tag: token.LessThanEqualTo}},
	{">=", token.Token{Tag: token.GreaterThanEqualTo}},
	{"<", token.Token{Tag: token.LessThan}},
	{">", token.Token{Tag: token.GreaterThan}},

	{"134", token.Token{Tag: token.Integer, Val: 134}},
	{"0", token.Token{Tag: token.Integer, Val: 0}},
	{"x", token.Token{Tag: token.Identifier, Lex: "x"}},
	{"foo_bar123", token.Token{Tag: token.Identifier, Lex: "foo_bar123"}},
	{"'a'", token.Token{Tag: token.CharLiteral, Lex: "'a'", Val: int('a')}},
	{`"hi there"`, token.Token{Tag: token.StringLiteral, Lex: "hi there"}},

	{"int", token.Token{Tag: token.Int}},
	{"char", token.Token{Tag: token.Char}},
	{"void", token.Token{Tag: token.Void}},
	{"if", token.Token{Tag: token.If}},
	{"else", token.Token{Tag: token.Else}},
	{"while", token.Token{Tag: token.While}},
	{"do", token.Token{Tag: token.Do}},
	{"for", token.Token{Tag: token.For}},
	{"break", token.Token{Tag: token.Break}},
	{"continue", token.Token{Tag: token.Continue}},
	{"return", token.Token{Tag: token.Return}},
	{"asm", token.Token{Tag: token.Asm}},
	{"printstr", token.Token{Tag: token.PrintStr}},
}

func TestScan(t *testing.T) {
	for _, pair := range tests {
		l := NewFromString(pair.test)
		tok := l.Scan()
		if tok.Tag != pair.expect.Tag || tok.Val != pair.expect.Val || tok.Lex != pair.expect.Lex {
			t.Errorf("Scan(%q) = %+v, want %+v", pair.test, tok, pair.expect)
			continue
		}
		wantErr := pair.expect.Err
		if wantErr == nil && tok.Err != nil {
			t.Errorf("Scan(%q): unexpected error %v", pair.test, tok.Err)
		}
		if wantErr != nil && tok.Err == nil {
			t.Errorf("Scan(%q): expected error %v, got none", pair.test, wantErr)
		}
	}
}

func TestScanLineNumbers(t *testing.T) {
	l := NewFromString("a\nb\n\nc")
	var got []int
	for {
		tok := l.Scan()
		if tok.Tag == token.Error {
			break
		}
		got = append(got, tok.Ln)
	}
	want := []int{0, 1, 3}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: line %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDivideNotConfusedWithComment(t *testing.T) {
	l := NewFromString("a / b")
	names := []int{token.Identifier, token.Divide, token.Identifier}
	for _, want := range names {
		tok := l.Scan()
		if tok.Tag != want {
			t.Fatalf("got tag %d, want %d", tok.Tag, want)
		}
	}
}
