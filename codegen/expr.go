package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/saicheems/simplec/ast"
	"github.com/saicheems/simplec/token"
)

// dollar prefixes a bare register name ("t0") with the MIPS register sigil
// ("$t0"). Values and the register pool deal in bare names; emit helpers
// expect the sigil.
func dollar(r string) string { return "$" + r }

// homeLoad emits a load of name into dstReg, resolving name's home: a
// stack offset if it is a local of the current function, otherwise a
// global symbol.
func (g *Generator) homeLoad(dstReg, name string) string {
	if g.syms.IsLocal(g.currentFn, name) {
		off := g.syms.OffsetOf(g.currentFn, name)
		return emitLoadWordOff(dstReg, off, "$sp")
	}
	return emitLoadWordGlobal(dstReg, name)
}

// homeStore emits a store of srcReg into name's home, mirroring homeLoad.
func (g *Generator) homeStore(srcReg, name string) string {
	if g.syms.IsLocal(g.currentFn, name) {
		off := g.syms.OffsetOf(g.currentFn, name)
		return emitStoreWordOff(srcReg, off, "$sp")
	}
	return emitStoreWordGlobal(srcReg, name)
}

// materialize ensures v is backed by a register, allocating a fresh one and
// emitting a li if v is a bare literal. Reg and Call values pass through
// unchanged.
func (g *Generator) materialize(v Value) (Value, string, error) {
	if v.Kind != KindImm {
		return v, "", nil
	}
	reg, err := g.pool.Alloc()
	if err != nil {
		return Value{}, "", err
	}
	return Reg(reg), emitLoadImm(dollar(reg), v.Imm), nil
}

// genExpr walks one expression node and returns its Value together with the
// instruction text emitted to produce it.
func (g *Generator) genExpr(node *ast.Node) (Value, string, error) {
	switch node.Tag {
	case ast.IntLit:
		return Imm(node.Op), "", nil
	case ast.CharLit:
		return Imm(node.Op), "", nil
	case ast.Id:
		dst, err := g.pool.Alloc()
		if err != nil {
			return Value{}, "", err
		}
		return Reg(dst), g.homeLoad(dollar(dst), node.Name), nil
	case ast.Address:
		return g.genAddress(node)
	case ast.ArrAddress:
		return g.genArrayAddr(node)
	case ast.ArrId:
		addr, instrs, err := g.genArrayAddr(node)
		if err != nil {
			return Value{}, "", err
		}
		instrs += emitLoadWordInd(dollar(addr.Reg), dollar(addr.Reg))
		return addr, instrs, nil
	case ast.PAccess:
		dst, err := g.pool.Alloc()
		if err != nil {
			return Value{}, "", err
		}
		instrs := g.homeLoad(dollar(dst), node.Name)
		instrs += emitLoadWordInd(dollar(dst), dollar(dst))
		return Reg(dst), instrs, nil
	case ast.UMinus:
		return g.genUnary(node, true)
	case ast.Not:
		return g.genUnary(node, false)
	case ast.BinOp:
		return g.genBinOp(node)
	case ast.Cond:
		return g.genCond(node)
	case ast.Call:
		return g.genCall(node)
	case ast.Asm:
		return None(), emitRaw(node.Lit), nil
	case ast.PrintStr:
		return g.genPrintStr(node)
	default:
		return Value{}, "", errors.Errorf("codegen: unexpected expression node tag %d", node.Tag)
	}
}

// genAddress emits the address-of-scalar form: `la` for a global, `addi`
// off $sp for a local.
func (g *Generator) genAddress(node *ast.Node) (Value, string, error) {
	dst, err := g.pool.Alloc()
	if err != nil {
		return Value{}, "", err
	}
	if g.syms.IsLocal(g.currentFn, node.Name) {
		off := g.syms.OffsetOf(g.currentFn, node.Name)
		return Reg(dst), emitAddImm(dollar(dst), "$sp", off), nil
	}
	return Reg(dst), emitLoadAddr(dollar(dst), node.Name), nil
}

// genArrayAddr computes the address of x[i] into a register: materialize
// the base (a fresh register holding a global's address, or $sp for a
// local), scale the index by 4 via two self-adds, add base and index, and
// add the local offset if applicable. ArrAddress stops here; ArrId
// additionally loads through the result.
func (g *Generator) genArrayAddr(node *ast.Node) (Value, string, error) {
	idxVal, instrs, err := g.genExpr(node.Children[0])
	if err != nil {
		return Value{}, "", err
	}
	idxReg, s, err := g.materialize(idxVal)
	if err != nil {
		return Value{}, "", err
	}
	instrs += s

	isLocal := g.syms.IsLocal(g.currentFn, node.Name)
	base := "sp"
	allocatedBase := false
	if !isLocal {
		base, err = g.pool.Alloc()
		if err != nil {
			return Value{}, "", err
		}
		allocatedBase = true
		instrs += emitLoadAddr(dollar(base), node.Name)
	}

	// Scale the index by 4 via two self-adds. Element width is fixed at
	// one word; there is no per-type width table.
	instrs += emitAdd(dollar(idxReg.Reg), dollar(idxReg.Reg), dollar(idxReg.Reg))
	instrs += emitAdd(dollar(idxReg.Reg), dollar(idxReg.Reg), dollar(idxReg.Reg))
	instrs += emitAdd(dollar(idxReg.Reg), dollar(base), dollar(idxReg.Reg))
	if isLocal {
		off := g.syms.OffsetOf(g.currentFn, node.Name)
		instrs += emitAddImm(dollar(idxReg.Reg), dollar(idxReg.Reg), off)
	}
	if allocatedBase {
		g.pool.Free(base)
	}
	return idxReg, instrs, nil
}

// genUnary handles unary minus (neg=true) and bitwise not (neg=false),
// folding a literal operand or emitting the in-place instruction form on a
// register operand.
func (g *Generator) genUnary(node *ast.Node, neg bool) (Value, string, error) {
	v, instrs, err := g.genExpr(node.Children[0])
	if err != nil {
		return Value{}, "", err
	}
	if v.Kind == KindImm {
		if neg {
			return Imm(-v.Imm), instrs, nil
		}
		return Imm(^v.Imm), instrs, nil
	}
	rv, s, err := g.materialize(v)
	if err != nil {
		return Value{}, "", err
	}
	instrs += s
	if neg {
		instrs += emitNeg(dollar(rv.Reg), dollar(rv.Reg))
	} else {
		instrs += emitNot(dollar(rv.Reg), dollar(rv.Reg))
	}
	return rv, instrs, nil
}

// foldImm evaluates a binary op over two compile-time integer operands.
func foldImm(op int, a, b int) (int, error) {
	switch op {
	case token.Plus:
		return a + b, nil
	case token.Minus:
		return a - b, nil
	case token.Times:
		return a * b, nil
	case token.Divide:
		if b == 0 {
			return 0, errors.New("division by zero in constant expression")
		}
		return a / b, nil
	case token.Amp:
		return a & b, nil
	case token.Pipe:
		return a | b, nil
	case token.Caret:
		return a ^ b, nil
	default:
		return 0, errors.Errorf("not a binary operator token %d", op)
	}
}

// immForm returns the immediate-form emitter for op (addi/subi/andi/ori/xori).
func immForm(op int) func(dst, a string, lit int) string {
	switch op {
	case token.Plus:
		return emitAddImm
	case token.Minus:
		return emitSubImm
	case token.Amp:
		return emitAndImm
	case token.Pipe:
		return emitOrImm
	case token.Caret:
		return emitXorImm
	}
	return nil
}

// threeRegForm returns the three-register emitter for op.
func threeRegForm(op int) func(dst, a, b string) string {
	switch op {
	case token.Plus:
		return emitAdd
	case token.Minus:
		return emitSub
	case token.Amp:
		return emitAnd
	case token.Pipe:
		return emitOr
	case token.Caret:
		return emitXor
	}
	return nil
}

// genBinOp implements + - * / & | ^. For <lit> - <r> the literal is
// materialized into a register and subtracted in register form, rather
// than emitted as a reversed-operand subi.
func (g *Generator) genBinOp(node *ast.Node) (Value, string, error) {
	left, leftInstrs, err := g.genExpr(node.Children[0])
	if err != nil {
		return Value{}, "", err
	}
	right, rightInstrs, err := g.genExpr(node.Children[1])
	if err != nil {
		return Value{}, "", err
	}
	instrs := leftInstrs + rightInstrs

	if node.Op == token.Times || node.Op == token.Divide {
		lv, s1, err := g.materialize(left)
		if err != nil {
			return Value{}, "", err
		}
		rv, s2, err := g.materialize(right)
		if err != nil {
			return Value{}, "", err
		}
		dst, err := g.pool.Alloc()
		if err != nil {
			return Value{}, "", err
		}
		instrs += s1 + s2
		if node.Op == token.Times {
			instrs += emitMult(dollar(dst), dollar(lv.Reg), dollar(rv.Reg))
		} else {
			instrs += emitDiv(dollar(dst), dollar(lv.Reg), dollar(rv.Reg))
		}
		g.free(lv)
		g.free(rv)
		return Reg(dst), instrs, nil
	}

	if left.Kind == KindImm && right.Kind == KindImm {
		v, err := foldImm(node.Op, left.Imm, right.Imm)
		if err != nil {
			return Value{}, "", err
		}
		return Imm(v), instrs, nil
	}

	if left.Kind == KindImm || right.Kind == KindImm {
		litOnLeft := left.Kind == KindImm
		lit := left.Imm
		regVal := right
		if !litOnLeft {
			lit = right.Imm
			regVal = left
		}
		if litOnLeft && node.Op == token.Minus {
			// <lit> - <r>: materialize the literal and subtract in
			// register form; subi has no operand-order variant for this.
			dst, err := g.pool.Alloc()
			if err != nil {
				return Value{}, "", err
			}
			instrs += emitLoadImm(dollar(dst), lit)
			instrs += emitSub(dollar(dst), dollar(dst), dollar(regVal.Reg))
			g.free(regVal)
			return Reg(dst), instrs, nil
		}
		form := immForm(node.Op)
		instrs += form(dollar(regVal.Reg), dollar(regVal.Reg), lit)
		return regVal, instrs, nil
	}

	dst, err := g.pool.Alloc()
	if err != nil {
		return Value{}, "", err
	}
	instrs += threeRegForm(node.Op)(dollar(dst), dollar(left.Reg), dollar(right.Reg))
	g.free(left)
	g.free(right)
	return Reg(dst), instrs, nil
}

// invertedBranch returns the emitter for the inverted (jump-if-false)
// form of a relational operator.
func invertedBranch(op int) func(a, b, label string) string {
	switch op {
	case token.EqualsEquals:
		return emitBranchNotEqual
	case token.NotEquals:
		return emitBranchEqual
	case token.LessThan:
		return emitBranchGreaterEqual
	case token.GreaterThan:
		return emitBranchLessEqual
	case token.LessThanEqualTo:
		return emitBranchGreater
	case token.GreaterThanEqualTo:
		return emitBranchLess
	}
	return nil
}

// genCond walks one condition node: relational comparisons produce a
// jump-if-false fragment; && and || compose two such fragments with
// short-circuit semantics.
func (g *Generator) genCond(node *ast.Node) (Value, string, error) {
	switch node.Op {
	case token.AndAnd:
		return g.genCondAnd(node.Children[0], node.Children[1])
	case token.OrOr:
		return g.genCondOr(node.Children[0], node.Children[1])
	default:
		return g.genCondRelational(node)
	}
}

func (g *Generator) genCondRelational(node *ast.Node) (Value, string, error) {
	left, leftInstrs, err := g.genExpr(node.Children[0])
	if err != nil {
		return Value{}, "", err
	}
	right, rightInstrs, err := g.genExpr(node.Children[1])
	if err != nil {
		return Value{}, "", err
	}
	lv, s1, err := g.materialize(left)
	if err != nil {
		return Value{}, "", err
	}
	rv, s2, err := g.materialize(right)
	if err != nil {
		return Value{}, "", err
	}
	exit := g.newLabel()
	branch := invertedBranch(node.Op)
	if branch == nil {
		return Value{}, "", errors.Errorf("codegen: not a relational operator token %d", node.Op)
	}
	instrs := leftInstrs + rightInstrs + s1 + s2 + branch(dollar(lv.Reg), dollar(rv.Reg), exit)
	g.free(lv)
	g.free(rv)
	return Label(exit), instrs, nil
}

// genCondAnd composes two jump-if-false fragments into a short-circuit &&:
// the left fragment's exit label is rewritten to the right fragment's exit
// label, so a false left side skips straight to the combined exit instead
// of evaluating the right side.
func (g *Generator) genCondAnd(a, b *ast.Node) (Value, string, error) {
	leftVal, leftInstrs, err := g.genExpr(a)
	if err != nil {
		return Value{}, "", err
	}
	rightVal, rightInstrs, err := g.genExpr(b)
	if err != nil {
		return Value{}, "", err
	}
	if leftVal.Label != rightVal.Label {
		leftInstrs = strings.ReplaceAll(leftInstrs, leftVal.Label, rightVal.Label)
	}
	return Label(rightVal.Label), leftInstrs + rightInstrs, nil
}

// genCondOr composes two jump-if-false fragments into a short-circuit ||:
// a true left side jumps over the right side's fragment to a success label
// placed directly before the body, skipping the right side entirely; a false left side falls into
// evaluating the right side, whose own exit becomes the combined exit.
func (g *Generator) genCondOr(a, b *ast.Node) (Value, string, error) {
	leftVal, leftInstrs, err := g.genExpr(a)
	if err != nil {
		return Value{}, "", err
	}
	rightVal, rightInstrs, err := g.genExpr(b)
	if err != nil {
		return Value{}, "", err
	}
	success := g.newLabel()
	instrs := leftInstrs
	instrs += emitJump(success)
	instrs += emitLabel(leftVal.Label)
	instrs += rightInstrs
	instrs += emitLabel(success)
	return Label(rightVal.Label), instrs, nil
}

// genCall implements a function call: arguments are evaluated left to
// right and moved into a0-a3 (literal args via li, register args via a
// move-and-free); arguments beyond the first four are evaluated for their
// side effects and then discarded, since there are no more argument
// registers to put them in. The result is the non-owned conventional
// "$v0" Call value, which is never freed since it was never allocated.
func (g *Generator) genCall(node *ast.Node) (Value, string, error) {
	argList := node.Children[0]
	var instrs string
	args := make([]Value, 0, len(argList.Children))
	for _, child := range argList.Children {
		v, s, err := g.genExpr(child)
		if err != nil {
			return Value{}, "", err
		}
		instrs += s
		args = append(args, v)
	}
	var overflow []Value
	for k, v := range args {
		if k >= 4 {
			overflow = append(overflow, v)
			continue
		}
		areg := dollar(fmt.Sprintf("a%d", k))
		if v.Kind == KindImm {
			instrs += emitLoadImm(areg, v.Imm)
		} else {
			instrs += emitMove(areg, dollar(v.Reg))
			g.free(v)
		}
	}
	// Registers backing arguments beyond the first four are never moved
	// anywhere; free them as one group.
	g.free(TupleOf(overflow...))
	instrs += emitJumpAndLink(node.Name)
	return CallResult(), instrs, nil
}

// genPrintStr mints a label, records the literal in the string table, and
// emits the syscall-4 string print sequence.
func (g *Generator) genPrintStr(node *ast.Node) (Value, string, error) {
	label := g.newLabel()
	g.syms.DeclareString(label, strconv.Quote(node.Lit))
	instrs := emitLoadAddr("$a0", label)
	instrs += emitLoadImm("$v0", 4)
	instrs += emitSyscall()
	return None(), instrs, nil
}
