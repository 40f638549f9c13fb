package codegen

import (
	"strings"

	"github.com/saicheems/simplec/ast"
)

// genStmt walks one statement node and returns the instruction text it
// emits. Statements never produce a Value a caller consumes; any
// expression result reachable from a statement (e.g. a bare function
// call) is freed before genStmt returns.
func (g *Generator) genStmt(node *ast.Node) (string, error) {
	switch node.Tag {
	case ast.Block:
		var sb strings.Builder
		for _, child := range node.Children {
			s, err := g.genStmt(child)
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		}
		return sb.String(), nil
	case ast.Decli:
		return g.genLocalScalar(node)
	case ast.ArrDeciz:
		return g.genLocalArrayZero(node)
	case ast.ArrDeci:
		return g.genLocalArrayInit(node)
	case ast.Assign:
		return g.genAssign(node)
	case ast.ArrAssign:
		return g.genArrAssign(node)
	case ast.PAssign:
		return g.genPAssign(node)
	case ast.If:
		return g.genIf(node)
	case ast.IfElse:
		return g.genIfElse(node)
	case ast.While:
		return g.genWhile(node)
	case ast.DoWhile:
		return g.genDoWhile(node)
	case ast.For:
		return g.genFor(node)
	case ast.Ret:
		return g.genRet(node)
	case ast.Break:
		return emitJump(placeholderEnd), nil
	case ast.Continue:
		return emitJump(placeholderStart), nil
	default:
		// An expression used as a bare statement (a call, asm, printstr,
		// or any other expr node the grammar's exprstmt production
		// allows): evaluate it and free whatever it produced.
		v, instrs, err := g.genExpr(node)
		if err != nil {
			return "", err
		}
		g.free(v)
		return instrs, nil
	}
}

// genLocalScalar declares a width-1 local and stores its initializer (or
// zero) to its stack slot.
func (g *Generator) genLocalScalar(node *ast.Node) (string, error) {
	g.syms.DeclareLocal(g.currentFn, node.Name, node.Type, 1)
	off := g.syms.OffsetOf(g.currentFn, node.Name)
	if len(node.Children) == 0 {
		return emitStoreWordOff("$zero", off, "$sp"), nil
	}
	v, instrs, err := g.genExpr(node.Children[0])
	if err != nil {
		return "", err
	}
	rv, s, err := g.materialize(v)
	if err != nil {
		return "", err
	}
	instrs += s
	instrs += emitStoreWordOff(dollar(rv.Reg), off, "$sp")
	g.free(rv)
	return instrs, nil
}

// genLocalArrayZero declares a width-N local array and zero-fills it.
func (g *Generator) genLocalArrayZero(node *ast.Node) (string, error) {
	g.syms.DeclareLocal(g.currentFn, node.Name, node.Type, node.Width)
	off := g.syms.OffsetOf(g.currentFn, node.Name)
	var sb strings.Builder
	for i := 0; i < node.Width; i++ {
		sb.WriteString(emitStoreWordOff("$zero", off+4*i, "$sp"))
	}
	return sb.String(), nil
}

// genLocalArrayInit declares a width-N local array and stores each
// initializer-list element (literal or computed) to its slot, zero-filling
// any trailing elements the initializer list omits.
func (g *Generator) genLocalArrayInit(node *ast.Node) (string, error) {
	g.syms.DeclareLocal(g.currentFn, node.Name, node.Type, node.Width)
	off := g.syms.OffsetOf(g.currentFn, node.Name)
	initList := node.Children[0]
	var sb strings.Builder
	for i := 0; i < node.Width; i++ {
		if i >= len(initList.Children) {
			sb.WriteString(emitStoreWordOff("$zero", off+4*i, "$sp"))
			continue
		}
		v, instrs, err := g.genExpr(initList.Children[i])
		if err != nil {
			return "", err
		}
		rv, s, err := g.materialize(v)
		if err != nil {
			return "", err
		}
		sb.WriteString(instrs)
		sb.WriteString(s)
		sb.WriteString(emitStoreWordOff(dollar(rv.Reg), off+4*i, "$sp"))
		g.free(rv)
	}
	return sb.String(), nil
}

// genAssign stores a scalar assignment's RHS to its home.
func (g *Generator) genAssign(node *ast.Node) (string, error) {
	v, instrs, err := g.genExpr(node.Children[0])
	if err != nil {
		return "", err
	}
	rv, s, err := g.materialize(v)
	if err != nil {
		return "", err
	}
	instrs += s
	instrs += g.homeStore(dollar(rv.Reg), node.Name)
	g.free(rv)
	return instrs, nil
}

// genArrAssign stores to an array element's computed address.
func (g *Generator) genArrAssign(node *ast.Node) (string, error) {
	addr, instrs, err := g.genArrayAddr(node)
	if err != nil {
		return "", err
	}
	v, exprInstrs, err := g.genExpr(node.Children[1])
	if err != nil {
		return "", err
	}
	rv, s, err := g.materialize(v)
	if err != nil {
		return "", err
	}
	instrs += exprInstrs + s
	instrs += emitStoreWordInd(dollar(rv.Reg), dollar(addr.Reg))
	g.free(rv)
	g.free(addr)
	return instrs, nil
}

// genPAssign stores through a pointer: *p = e.
func (g *Generator) genPAssign(node *ast.Node) (string, error) {
	v, instrs, err := g.genExpr(node.Children[0])
	if err != nil {
		return "", err
	}
	rv, s, err := g.materialize(v)
	if err != nil {
		return "", err
	}
	ptr, err := g.pool.Alloc()
	if err != nil {
		return "", err
	}
	instrs += s
	instrs += g.homeLoad(dollar(ptr), node.Name)
	instrs += emitStoreWordInd(dollar(rv.Reg), dollar(ptr))
	g.free(rv)
	g.pool.Free(ptr)
	return instrs, nil
}

// genRet implements return: move the result into $v0 (or nothing for a
// bare `return;`), restore $ra and $sp (the STACK placeholder is patched
// once the enclosing function's frame size is known), and jr $ra unless
// the current function is main.
func (g *Generator) genRet(node *ast.Node) (string, error) {
	var instrs string
	if len(node.Children) > 0 {
		v, exprInstrs, err := g.genExpr(node.Children[0])
		if err != nil {
			return "", err
		}
		instrs += exprInstrs
		if v.Kind == KindImm {
			instrs += emitLoadImm("$v0", v.Imm)
		} else {
			instrs += emitMove("$v0", dollar(v.Reg))
			g.free(v)
		}
	}
	instrs += emitLoadWordOff("$ra", 0, "$sp")
	instrs += emitAddImmPlaceholder("$sp", "$sp", placeholderStack)
	if g.currentFn != "main" {
		instrs += emitJumpReturn()
	}
	return instrs, nil
}

// genIf implements if: the condition's exit label marks the point control
// reaches when the condition is false, i.e. right after the then-body.
func (g *Generator) genIf(node *ast.Node) (string, error) {
	condVal, condInstrs, err := g.genExpr(node.Children[0])
	if err != nil {
		return "", err
	}
	bodyInstrs, err := g.genStmt(node.Children[1])
	if err != nil {
		return "", err
	}
	return condInstrs + bodyInstrs + emitLabel(condVal.Label), nil
}

// genIfElse implements if-else.
func (g *Generator) genIfElse(node *ast.Node) (string, error) {
	condVal, condInstrs, err := g.genExpr(node.Children[0])
	if err != nil {
		return "", err
	}
	thenInstrs, err := g.genStmt(node.Children[1])
	if err != nil {
		return "", err
	}
	elseInstrs, err := g.genStmt(node.Children[2])
	if err != nil {
		return "", err
	}
	end := g.newLabel()
	var sb strings.Builder
	sb.WriteString(condInstrs)
	sb.WriteString(thenInstrs)
	sb.WriteString(emitJump(end))
	sb.WriteString(emitLabel(condVal.Label))
	sb.WriteString(elseInstrs)
	sb.WriteString(emitLabel(end))
	return sb.String(), nil
}

// genWhile implements while, patching the body's START/END placeholders
// to the loop's entry/exit labels.
func (g *Generator) genWhile(node *ast.Node) (string, error) {
	start := g.newLabel()
	condVal, condInstrs, err := g.genExpr(node.Children[0])
	if err != nil {
		return "", err
	}
	bodyInstrs, err := g.genStmt(node.Children[1])
	if err != nil {
		return "", err
	}
	bodyInstrs = patchLoopLabels(bodyInstrs, start, condVal.Label)
	var sb strings.Builder
	sb.WriteString(emitLabel(start))
	sb.WriteString(condInstrs)
	sb.WriteString(bodyInstrs)
	sb.WriteString(emitJump(start))
	sb.WriteString(emitLabel(condVal.Label))
	return sb.String(), nil
}

// genDoWhile implements do-while: the body runs before the condition is
// first tested.
func (g *Generator) genDoWhile(node *ast.Node) (string, error) {
	start := g.newLabel()
	bodyInstrs, err := g.genStmt(node.Children[0])
	if err != nil {
		return "", err
	}
	condVal, condInstrs, err := g.genExpr(node.Children[1])
	if err != nil {
		return "", err
	}
	bodyInstrs = patchLoopLabels(bodyInstrs, start, condVal.Label)
	var sb strings.Builder
	sb.WriteString(emitLabel(start))
	sb.WriteString(bodyInstrs)
	sb.WriteString(condInstrs)
	sb.WriteString(emitJump(start))
	sb.WriteString(emitLabel(condVal.Label))
	return sb.String(), nil
}

// genFor implements for(init; cond; step). An absent clause parses to an
// empty Block (ast.NewFor's default); an absent cond means the loop never
// tests a condition (infinite unless broken out of).
func (g *Generator) genFor(node *ast.Node) (string, error) {
	initNode, condNode, stepNode, bodyNode := node.Children[0], node.Children[1], node.Children[2], node.Children[3]

	initInstrs, err := g.genStmt(initNode)
	if err != nil {
		return "", err
	}
	start := g.newLabel()

	var condInstrs, exit string
	if condNode.Tag == ast.Block && len(condNode.Children) == 0 {
		exit = g.newLabel()
	} else {
		condVal, ci, err := g.genExpr(condNode)
		if err != nil {
			return "", err
		}
		condInstrs = ci
		exit = condVal.Label
	}

	stepInstrs, err := g.genStmt(stepNode)
	if err != nil {
		return "", err
	}
	bodyInstrs, err := g.genStmt(bodyNode)
	if err != nil {
		return "", err
	}
	bodyInstrs = patchLoopLabels(bodyInstrs, start, exit)

	var sb strings.Builder
	sb.WriteString(initInstrs)
	sb.WriteString(emitLabel(start))
	sb.WriteString(condInstrs)
	sb.WriteString(bodyInstrs)
	sb.WriteString(stepInstrs)
	sb.WriteString(emitJump(start))
	sb.WriteString(emitLabel(exit))
	return sb.String(), nil
}

// patchLoopLabels resolves a loop body's break/continue placeholders to
// concrete labels. Nested loops resolve their own START/END before
// returning (this function runs bottom-up, one call per enclosing loop),
// so only the placeholders belonging to the current loop remain by the
// time its own genStmt call returns.
func patchLoopLabels(body, start, end string) string {
	body = strings.ReplaceAll(body, placeholderStart, start)
	body = strings.ReplaceAll(body, placeholderEnd, end)
	return body
}
