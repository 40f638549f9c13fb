// Package parser implements the parsing stage of the compilation: a
// recursive-descent parser producing ast.Node trees from a token.Token
// stream.
package parser

import (
	"io"

	"github.com/pkg/errors"

	"github.com/saicheems/simplec/ast"
	"github.com/saicheems/simplec/lexer"
	"github.com/saicheems/simplec/token"
)

// Parser implements the parsing stage of the compilation.
type Parser struct {
	lex  *lexer.Lexer
	peek *token.Token // Next Token in the Token stream.
}

// New returns a new Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{lex: l}
	p.move()
	return p
}

// Parse returns the head node of the abstract syntax tree, or the first
// syntax error encountered. Parsing stops at the first error; there is no
// error-recovery pass.
func (p *Parser) Parse() (*ast.Node, error) {
	var tree *ast.Node
	for p.peek.Tag != token.Error {
		decl, err := p.parseTopDecl()
		if err != nil {
			return nil, err
		}
		if tree == nil {
			tree = decl
		} else {
			tree = ast.NewUnit(tree, decl)
		}
	}
	if p.peek.Err != nil && p.peek.Err != io.EOF {
		return nil, errors.Errorf("line %d: %v", p.peek.Ln, p.peek.Err)
	}
	if tree == nil {
		tree = ast.NewBlock()
	}
	return tree, nil
}

// move advances the token stream by one token.
func (p *Parser) move() { p.peek = p.lex.Scan() }

// check reports whether the lookahead token has tag t, without consuming it.
func (p *Parser) check(t int) bool { return p.peek.Tag == t }

// accept consumes and returns the lookahead token if it has tag t.
func (p *Parser) accept(t int) (*token.Token, bool) {
	if p.peek.Tag != t {
		return nil, false
	}
	tok := p.peek
	p.move()
	return tok, true
}

// expect consumes the lookahead token if it has tag t, otherwise returns a
// line-tagged syntax error.
func (p *Parser) expect(t int) (*token.Token, error) {
	tok, ok := p.accept(t)
	if !ok {
		return nil, errors.Errorf("line %d: syntax error (unexpected token)", p.peek.Ln)
	}
	return tok, nil
}

// parseTopDecl parses one top-level function, scalar, or array declaration.
func (p *Parser) parseTopDecl() (*ast.Node, error) {
	typ, ln, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	name := nameTok.Lex

	if _, ok := p.accept(token.LeftParen); ok {
		return p.parseFuncDeclRest(typ, name, ln)
	}
	if _, ok := p.accept(token.LeftBracket); ok {
		return p.parseArrDeclRest(typ, name, ln)
	}
	return p.parseVarDeclRest(typ, name, ln)
}

// parseType parses one of "int", "char", "void".
func (p *Parser) parseType() (string, int, error) {
	ln := p.peek.Ln
	switch {
	case p.check(token.Int):
		p.move()
		return "int", ln, nil
	case p.check(token.Char):
		p.move()
		return "char", ln, nil
	case p.check(token.Void):
		p.move()
		return "void", ln, nil
	default:
		return "", 0, errors.Errorf("line %d: expected a type", ln)
	}
}

// parseFuncDeclRest parses a function's parameter list and body; the
// opening '(' has already been consumed.
func (p *Parser) parseFuncDeclRest(typ, name string, ln int) (*ast.Node, error) {
	params := ast.New(ast.ParamList)
	if !p.check(token.RightParen) {
		for {
			ptyp, pln, err := p.parseType()
			if err != nil {
				return nil, err
			}
			pnameTok, err := p.expect(token.Identifier)
			if err != nil {
				return nil, err
			}
			params.AppendNode(ast.NewDecli(ptyp, pnameTok.Lex, pln, nil))
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFun(typ, name, ln, params, body), nil
}

// parseVarDeclRest parses a scalar declaration's optional initializer and
// trailing semicolon; the type and identifier have already been consumed.
func (p *Parser) parseVarDeclRest(typ, name string, ln int) (*ast.Node, error) {
	var init *ast.Node
	if _, ok := p.accept(token.Equals); ok {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		init = e
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return ast.NewDecli(typ, name, ln, init), nil
}

// parseArrDeclRest parses an array declaration's size, optional
// initializer list, and trailing semicolon; the type, identifier and '['
// have already been consumed.
func (p *Parser) parseArrDeclRest(typ, name string, ln int) (*ast.Node, error) {
	sizeTok, err := p.expect(token.Integer)
	if err != nil {
		return nil, err
	}
	width := sizeTok.Val
	if _, err := p.expect(token.RightBracket); err != nil {
		return nil, err
	}
	if _, ok := p.accept(token.Equals); ok {
		if _, err := p.expect(token.LeftCurlyBrace); err != nil {
			return nil, err
		}
		initList := ast.New(ast.InitList)
		if !p.check(token.RightCurlyBrace) {
			for {
				e, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				initList.AppendNode(e)
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
			}
		}
		if _, err := p.expect(token.RightCurlyBrace); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		return ast.NewArrDeci(typ, name, ln, width, initList), nil
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return ast.NewArrDeciz(typ, name, ln, width), nil
}

// parseBlock parses a brace-delimited sequence of statements.
func (p *Parser) parseBlock() (*ast.Node, error) {
	if _, err := p.expect(token.LeftCurlyBrace); err != nil {
		return nil, err
	}
	block := ast.NewBlock()
	for !p.check(token.RightCurlyBrace) && p.peek.Tag != token.Error {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.AppendNode(s)
	}
	if _, err := p.expect(token.RightCurlyBrace); err != nil {
		return nil, err
	}
	return block, nil
}

// parseStmt dispatches on the lookahead token to the right statement form.
func (p *Parser) parseStmt() (*ast.Node, error) {
	switch p.peek.Tag {
	case token.LeftCurlyBrace:
		return p.parseBlock()
	case token.Int, token.Char:
		return p.parseLocalDecl()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Do:
		return p.parseDoWhile()
	case token.For:
		return p.parseFor()
	case token.Break:
		p.move()
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		return ast.NewBreak(), nil
	case token.Continue:
		p.move()
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		return ast.NewContinue(), nil
	case token.Return:
		p.move()
		var e *ast.Node
		if !p.check(token.Semicolon) {
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			e = expr
		}
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		return ast.NewRet(e), nil
	default:
		return p.parseSimpleStmt()
	}
}

// parseLocalDecl parses a local scalar or array declaration.
func (p *Parser) parseLocalDecl() (*ast.Node, error) {
	typ, ln, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(token.LeftBracket); ok {
		return p.parseArrDeclRest(typ, nameTok.Lex, ln)
	}
	return p.parseVarDeclRest(typ, nameTok.Lex, ln)
}

// parseSimpleStmt parses an assignment, array-assignment, pointer
// assignment, or bare expression statement.
func (p *Parser) parseSimpleStmt() (*ast.Node, error) {
	ln := p.peek.Ln
	if _, ok := p.accept(token.Times); ok {
		nameTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Equals); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		return ast.NewPAssign(nameTok.Lex, ln, e), nil
	}

	if p.check(token.Identifier) {
		nameTok, _ := p.accept(token.Identifier)

		if _, ok := p.accept(token.Equals); ok {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Semicolon); err != nil {
				return nil, err
			}
			return ast.NewAssign(nameTok.Lex, nameTok.Ln, e), nil
		}

		if _, ok := p.accept(token.LeftBracket); ok {
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RightBracket); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Equals); err != nil {
				return nil, err
			}
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Semicolon); err != nil {
				return nil, err
			}
			return ast.NewArrAssign(nameTok.Lex, nameTok.Ln, idx, e), nil
		}

		if _, ok := p.accept(token.LeftParen); ok {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RightParen); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Semicolon); err != nil {
				return nil, err
			}
			return ast.NewCall(nameTok.Lex, nameTok.Ln, args), nil
		}

		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		return ast.NewId(nameTok.Lex, nameTok.Ln), nil
	}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return e, nil
}

// parseIf parses `if (cond) stmt (else stmt)?`.
func (p *Parser) parseIf() (*ast.Node, error) {
	p.move()
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, err
	}
	thenStmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(token.Else); ok {
		elseStmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		return ast.NewIfElse(cond, thenStmt, elseStmt), nil
	}
	return ast.NewIf(cond, thenStmt), nil
}

// parseWhile parses `while (cond) stmt`.
func (p *Parser) parseWhile() (*ast.Node, error) {
	p.move()
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(cond, body), nil
}

// parseDoWhile parses `do stmt while (cond);`.
func (p *Parser) parseDoWhile() (*ast.Node, error) {
	p.move()
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.While); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return ast.NewDoWhile(body, cond), nil
}

// parseFor parses `for (init?; cond?; step?) stmt`. init and step, unlike
// a full statement, do not consume their own semicolon: the for-loop's
// own ';' separators do that.
func (p *Parser) parseFor() (*ast.Node, error) {
	p.move()
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	var initNode *ast.Node
	if !p.check(token.Semicolon) {
		n, err := p.parseForInit()
		if err != nil {
			return nil, err
		}
		initNode = n
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	var condNode *ast.Node
	if !p.check(token.Semicolon) {
		n, err := p.parseCond()
		if err != nil {
			return nil, err
		}
		condNode = n
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	var stepNode *ast.Node
	if !p.check(token.RightParen) {
		n, err := p.parseForStep()
		if err != nil {
			return nil, err
		}
		stepNode = n
	}
	if _, err := p.expect(token.RightParen); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(initNode, condNode, stepNode, body), nil
}

// parseForInit parses a for-loop's init clause: a local scalar
// declaration or a plain assignment.
func (p *Parser) parseForInit() (*ast.Node, error) {
	if p.check(token.Int) || p.check(token.Char) {
		typ, ln, err := p.parseType()
		if err != nil {
			return nil, err
		}
		nameTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		var init *ast.Node
		if _, ok := p.accept(token.Equals); ok {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			init = e
		}
		return ast.NewDecli(typ, nameTok.Lex, ln, init), nil
	}
	return p.parseForStep()
}

// parseForStep parses a for-loop's step clause: a plain assignment.
func (p *Parser) parseForStep() (*ast.Node, error) {
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equals); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewAssign(nameTok.Lex, nameTok.Ln, e), nil
}

// parseCond parses `cond := expr relop expr | cond (&&|||) cond`, left
// associative, with && binding tighter than ||.
func (p *Parser) parseCond() (*ast.Node, error) {
	left, err := p.parseAndCond()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(token.OrOr); ok {
			right, err := p.parseAndCond()
			if err != nil {
				return nil, err
			}
			left = ast.NewCond(token.OrOr, left, right)
			continue
		}
		break
	}
	return left, nil
}

func (p *Parser) parseAndCond() (*ast.Node, error) {
	left, err := p.parseRelCond()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(token.AndAnd); ok {
			right, err := p.parseRelCond()
			if err != nil {
				return nil, err
			}
			left = ast.NewCond(token.AndAnd, left, right)
			continue
		}
		break
	}
	return left, nil
}

func (p *Parser) parseRelCond() (*ast.Node, error) {
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var op int
	switch p.peek.Tag {
	case token.EqualsEquals, token.NotEquals, token.LessThan, token.GreaterThan,
		token.LessThanEqualTo, token.GreaterThanEqualTo:
		op = p.peek.Tag
		p.move()
	default:
		return nil, errors.Errorf("line %d: expected a relational operator", p.peek.Ln)
	}
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewCond(op, left, right), nil
}

// parseExpr parses `expr := term (("+"|"-"|"&"|"|"|"^") term)*`.
func (p *Parser) parseExpr() (*ast.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op int
		switch p.peek.Tag {
		case token.Plus, token.Minus, token.Amp, token.Pipe, token.Caret:
			op = p.peek.Tag
		default:
			return left, nil
		}
		p.move()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(op, left, right)
	}
}

// parseTerm parses `term := unary (("*"|"/") unary)*`.
func (p *Parser) parseTerm() (*ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op int
		switch p.peek.Tag {
		case token.Times, token.Divide:
			op = p.peek.Tag
		default:
			return left, nil
		}
		p.move()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinOp(op, left, right)
	}
}

// parseUnary parses `unary := ("-"|"~") postfix | "&" IDENT ("[" expr "]")?
// | "*" IDENT | postfix`.
func (p *Parser) parseUnary() (*ast.Node, error) {
	switch p.peek.Tag {
	case token.Minus:
		p.move()
		e, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return ast.NewUMinus(e), nil
	case token.Tilde:
		p.move()
		e, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return ast.NewNot(e), nil
	case token.Amp:
		p.move()
		nameTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(token.LeftBracket); ok {
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RightBracket); err != nil {
				return nil, err
			}
			return ast.NewArrAddress(nameTok.Lex, nameTok.Ln, idx), nil
		}
		return ast.NewAddress(nameTok.Lex, nameTok.Ln), nil
	case token.Times:
		p.move()
		nameTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		return ast.NewPAccess(nameTok.Lex, nameTok.Ln), nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses `postfix := primary ("[" expr "]")?`.
func (p *Parser) parsePostfix() (*ast.Node, error) {
	prim, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(token.LeftBracket); ok {
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightBracket); err != nil {
			return nil, err
		}
		if prim.Tag != ast.Id {
			return nil, errors.Errorf("line %d: cannot index a non-identifier expression", prim.Ln)
		}
		return ast.NewArrId(prim.Name, prim.Ln, idx), nil
	}
	return prim, nil
}

// parsePrimary parses integer/char literals, identifiers, calls,
// asm/printstr forms, and parenthesized expressions.
func (p *Parser) parsePrimary() (*ast.Node, error) {
	switch p.peek.Tag {
	case token.Integer:
		v := p.peek.Val
		p.move()
		return ast.NewIntLit(v), nil
	case token.CharLiteral:
		lex, v := p.peek.Lex, p.peek.Val
		p.move()
		return ast.NewCharLit(lex, v), nil
	case token.Identifier:
		nameTok := p.peek
		p.move()
		if _, ok := p.accept(token.LeftParen); ok {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RightParen); err != nil {
				return nil, err
			}
			return ast.NewCall(nameTok.Lex, nameTok.Ln, args), nil
		}
		return ast.NewId(nameTok.Lex, nameTok.Ln), nil
	case token.Asm:
		p.move()
		if _, err := p.expect(token.LeftParen); err != nil {
			return nil, err
		}
		strTok, err := p.expect(token.StringLiteral)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen); err != nil {
			return nil, err
		}
		return ast.NewAsm(strTok.Lex), nil
	case token.PrintStr:
		p.move()
		if _, err := p.expect(token.LeftParen); err != nil {
			return nil, err
		}
		strTok, err := p.expect(token.StringLiteral)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen); err != nil {
			return nil, err
		}
		return ast.NewPrintStr(strTok.Lex), nil
	case token.LeftParen:
		p.move()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, errors.Errorf("line %d: unexpected token in expression", p.peek.Ln)
	}
}

// parseArgList parses a comma-separated expression list; the opening '('
// has already been consumed.
func (p *Parser) parseArgList() (*ast.Node, error) {
	args := ast.New(ast.ArgList)
	if p.check(token.RightParen) {
		return args, nil
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args.AppendNode(e)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	return args, nil
}
