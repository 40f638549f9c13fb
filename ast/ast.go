// Package ast implements the abstract syntax tree node type produced by the
// parser and consumed by the code generator.
package ast

import "github.com/saicheems/simplec/token"

const (
	Unit        = iota // Sequential composition at top level.
	Fun                // fun(type, name, [args,] body)
	Decli              // Scalar declaration, optionally with initializer.
	ArrDeciz           // Zero-initialized array declaration.
	ArrDeci            // Array declaration with initializer list.
	Assign             // Scalar store.
	ArrAssign          // Array element store.
	PAssign            // Pointer-through store.
	Id                 // Identifier load.
	ArrId              // Array element read.
	PAccess            // Pointer dereference read.
	Address            // Address-of scalar or array base.
	ArrAddress         // Address-of array element.
	BinOp              // + - * / & | ^
	Cond               // == != < > <= >= && ||
	UMinus             // Unary minus.
	Not                // Bitwise not.
	If                 // if (cond) stmt
	IfElse             // if (cond) stmt else stmt
	While              // while (cond) stmt
	DoWhile            // do stmt while (cond);
	For                // for (init; cond; step) stmt
	Ret                // return expr?;
	Break              // break;
	Continue           // continue;
	Call               // call(name [, args])
	Asm                // asm("...")
	PrintStr           // printstr("...")
	CharLit            // char('x')
	IntLit             // Bare integer literal.
	Block              // { stmt* }: sequential composition inside a function.
	ParamList          // Parameter declaration list of a Fun node.
	ArgList            // Argument expression list of a Call node.
	InitList           // Initializer expression list of an ArrDeci node.
)

// Node represents a single node of the abstract syntax tree.
type Node struct {
	Tag      int          // One of the constants defined by this package.
	Op       int          // An operation tag (token.Plus, token.EqualsEquals, ...), or the value of an IntLit/CharLit.
	Type     string       // "int" or "char", for declarations and parameters.
	Name     string       // Identifier name, for declarations/ids/calls/functions.
	Width    int          // Array width in words, for ArrDeciz/ArrDeci.
	Lit      string       // Raw string contents, for Asm/PrintStr/CharLit.
	Tok      *token.Token // Source token; the constructors in this package leave it nil.
	Ln       int          // Source line, for error messages.
	Children []*Node      // Children of this node.
}

// New returns a new Node with the given tag. The children slice starts
// empty; use AppendNode to add to it.
func New(tag int) *Node {
	return &Node{Tag: tag, Children: make([]*Node, 0, 2)}
}

// AppendNode appends one or more nodes to the children of the node it's
// called on.
func (n *Node) AppendNode(nodes ...*Node) {
	n.Children = append(n.Children, nodes...)
}

// NewUnit returns a new top-level sequential-composition node.
func NewUnit(a, b *Node) *Node {
	n := New(Unit)
	n.AppendNode(a, b)
	return n
}

// NewFun returns a new function-definition node. params may be nil for a
// function with no parameters.
func NewFun(typ, name string, ln int, params, body *Node) *Node {
	n := New(Fun)
	n.Type = typ
	n.Name = name
	n.Ln = ln
	if params == nil {
		params = New(ParamList)
	}
	n.AppendNode(params, body)
	return n
}

// NewDecli returns a new scalar declaration node. init may be nil.
func NewDecli(typ, name string, ln int, init *Node) *Node {
	n := New(Decli)
	n.Type = typ
	n.Name = name
	n.Ln = ln
	if init != nil {
		n.AppendNode(init)
	}
	return n
}

// NewArrDeciz returns a new zero-initialized array declaration node.
func NewArrDeciz(typ, name string, ln, width int) *Node {
	n := New(ArrDeciz)
	n.Type = typ
	n.Name = name
	n.Width = width
	n.Ln = ln
	return n
}

// NewArrDeci returns a new array declaration node with an initializer list.
func NewArrDeci(typ, name string, ln, width int, init *Node) *Node {
	n := New(ArrDeci)
	n.Type = typ
	n.Name = name
	n.Width = width
	n.Ln = ln
	n.AppendNode(init)
	return n
}

// NewAssign returns a new scalar assignment node.
func NewAssign(name string, ln int, expr *Node) *Node {
	n := New(Assign)
	n.Name = name
	n.Ln = ln
	n.AppendNode(expr)
	return n
}

// NewArrAssign returns a new array element assignment node.
func NewArrAssign(name string, ln int, idx, expr *Node) *Node {
	n := New(ArrAssign)
	n.Name = name
	n.Ln = ln
	n.AppendNode(idx, expr)
	return n
}

// NewPAssign returns a new pointer-through assignment node.
func NewPAssign(name string, ln int, expr *Node) *Node {
	n := New(PAssign)
	n.Name = name
	n.Ln = ln
	n.AppendNode(expr)
	return n
}

// NewId returns a new identifier-load node.
func NewId(name string, ln int) *Node {
	n := New(Id)
	n.Name = name
	n.Ln = ln
	return n
}

// NewArrId returns a new array element read node.
func NewArrId(name string, ln int, idx *Node) *Node {
	n := New(ArrId)
	n.Name = name
	n.Ln = ln
	n.AppendNode(idx)
	return n
}

// NewPAccess returns a new pointer dereference read node.
func NewPAccess(name string, ln int) *Node {
	n := New(PAccess)
	n.Name = name
	n.Ln = ln
	return n
}

// NewAddress returns a new address-of node.
func NewAddress(name string, ln int) *Node {
	n := New(Address)
	n.Name = name
	n.Ln = ln
	return n
}

// NewArrAddress returns a new address-of-array-element node.
func NewArrAddress(name string, ln int, idx *Node) *Node {
	n := New(ArrAddress)
	n.Name = name
	n.Ln = ln
	n.AppendNode(idx)
	return n
}

// NewBinOp returns a new binary arithmetic/bitwise expression node.
func NewBinOp(op int, a, b *Node) *Node {
	n := New(BinOp)
	n.Op = op
	n.AppendNode(a, b)
	return n
}

// NewCond returns a new condition node.
func NewCond(op int, a, b *Node) *Node {
	n := New(Cond)
	n.Op = op
	n.AppendNode(a, b)
	return n
}

// NewUMinus returns a new unary minus node.
func NewUMinus(expr *Node) *Node {
	n := New(UMinus)
	n.AppendNode(expr)
	return n
}

// NewNot returns a new bitwise-not node.
func NewNot(expr *Node) *Node {
	n := New(Not)
	n.AppendNode(expr)
	return n
}

// NewIf returns a new if-then node.
func NewIf(cond, stmt *Node) *Node {
	n := New(If)
	n.AppendNode(cond, stmt)
	return n
}

// NewIfElse returns a new if-then-else node.
func NewIfElse(cond, thenStmt, elseStmt *Node) *Node {
	n := New(IfElse)
	n.AppendNode(cond, thenStmt, elseStmt)
	return n
}

// NewWhile returns a new while-do node.
func NewWhile(cond, stmt *Node) *Node {
	n := New(While)
	n.AppendNode(cond, stmt)
	return n
}

// NewDoWhile returns a new do-while node.
func NewDoWhile(stmt, cond *Node) *Node {
	n := New(DoWhile)
	n.AppendNode(stmt, cond)
	return n
}

// NewFor returns a new for node. init, cond and step may each be nil.
func NewFor(init, cond, step, stmt *Node) *Node {
	n := New(For)
	if init == nil {
		init = New(Block)
	}
	if cond == nil {
		cond = New(Block)
	}
	if step == nil {
		step = New(Block)
	}
	n.AppendNode(init, cond, step, stmt)
	return n
}

// NewRet returns a new return node. expr may be nil for a bare `return;`.
func NewRet(expr *Node) *Node {
	n := New(Ret)
	if expr != nil {
		n.AppendNode(expr)
	}
	return n
}

// NewBreak returns a new break node.
func NewBreak() *Node { return New(Break) }

// NewContinue returns a new continue node.
func NewContinue() *Node { return New(Continue) }

// NewCall returns a new call node. args may be nil for a no-argument call.
func NewCall(name string, ln int, args *Node) *Node {
	n := New(Call)
	n.Name = name
	n.Ln = ln
	if args == nil {
		args = New(ArgList)
	}
	n.AppendNode(args)
	return n
}

// NewAsm returns a new inline-assembly node.
func NewAsm(lit string) *Node {
	n := New(Asm)
	n.Lit = lit
	return n
}

// NewPrintStr returns a new string-print node.
func NewPrintStr(lit string) *Node {
	n := New(PrintStr)
	n.Lit = lit
	return n
}

// NewCharLit returns a new character-literal node.
func NewCharLit(lit string, val int) *Node {
	n := New(CharLit)
	n.Lit = lit
	n.Op = val
	return n
}

// NewIntLit returns a new integer-literal node.
func NewIntLit(val int) *Node {
	n := New(IntLit)
	n.Op = val
	return n
}

// NewBlock returns a new block (sequential-composition) node.
func NewBlock() *Node {
	return New(Block)
}
