package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/saicheems/simplec/ast"
)

// genFunc emits one function: its parameters become width-1 locals, the
// body's STACK placeholder is patched once the frame size is known, the
// prologue saves $ra and up to 4 argument registers, and the epilogue
// restores $ra/$sp and either jr $ra or, for main, ends the program via
// syscall 10.
func (g *Generator) genFunc(node *ast.Node) error {
	name := node.Name
	g.inGlobalScope = false
	g.currentFn = name

	params := node.Children[0]
	k := len(params.Children)
	for _, p := range params.Children {
		g.syms.DeclareLocal(name, p.Name, p.Type, 1)
	}
	if k > 4 {
		g.warnf("simplec: warning: function %q takes %d parameters, only the first 4 are passed in registers\n", name, k)
	}

	bodyInstrs, err := g.genStmt(node.Children[1])
	if err != nil {
		return err
	}

	bytes := 4 * g.syms.FrameWords(name)
	bodyInstrs = strings.ReplaceAll(bodyInstrs, placeholderStack, strconv.Itoa(bytes))

	var sb strings.Builder
	sb.WriteString(emitLabel(name))
	if locals := g.syms.LocalNames(name); len(locals) > 0 {
		sb.WriteString(emitComment(fmt.Sprintf("frame: %s", strings.Join(locals, ", "))))
	}
	sb.WriteString(emitAddImm("$sp", "$sp", -bytes))
	sb.WriteString(emitStoreWordOff("$ra", 0, "$sp"))
	for i := 0; i < k && i < 4; i++ {
		sb.WriteString(emitStoreWordOff(dollar(fmt.Sprintf("a%d", i)), 4+4*i, "$sp"))
	}
	sb.WriteString(bodyInstrs)
	sb.WriteString(emitLoadWordOff("$ra", 0, "$sp"))
	sb.WriteString(emitAddImm("$sp", "$sp", bytes))
	if name == "main" {
		sb.WriteString(emitLoadImm("$v0", 10))
		sb.WriteString(emitSyscall())
	} else {
		sb.WriteString(emitJumpReturn())
	}

	g.funcText[name] = sb.String()
	g.funcOrder = append(g.funcOrder, name)
	g.currentFn = ""
	g.inGlobalScope = true
	return nil
}
