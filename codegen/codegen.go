// Package codegen implements the code generation phase of the compilation:
// an expression generator, statement generator, function emitter, and
// assembler serializer. It walks the abstract syntax tree produced by
// package parser and emits MIPS assembly text in the SPIM/MARS dialect.
package codegen

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/saicheems/simplec/ast"
	"github.com/saicheems/simplec/regalloc"
	"github.com/saicheems/simplec/symtable"
)

// Placeholder tokens rewritten by textual substitution in the
// statement/function emitters once the values they stand for are known. Chosen to be
// uppercase words that can never collide with a label or register name.
const (
	placeholderStack = "STACK"
	placeholderStart = "START"
	placeholderEnd   = "END"
)

// Generator holds all process-wide compile state for a single invocation:
// the register pool, label counter, symbol tables, and the per-function
// output accumulated so far. A Generator must not be reused across two
// unrelated compiles: construct a new one with New for each.
type Generator struct {
	pool   *regalloc.Pool
	labels *regalloc.LabelGen
	syms   *symtable.Table

	inGlobalScope bool
	currentFn     string

	funcOrder []string          // function names in declaration order.
	funcText  map[string]string // function name -> fully emitted text.

	topText strings.Builder // accumulated top-level instructions (rare).

	// WarnArgs controls whether the >4-parameter warning is printed to
	// warnOut. Defaults to true; cmd/simplec's --warn-args flag can
	// disable it for quiet test runs.
	WarnArgs bool
	warnOut  io.Writer
}

// New returns a Generator ready to compile a single program. warnOut
// receives diagnostic warnings; pass nil to discard them.
func New(warnOut io.Writer) *Generator {
	if warnOut == nil {
		warnOut = io.Discard
	}
	return &Generator{
		pool:          regalloc.NewPool(),
		labels:        regalloc.NewLabelGen(),
		syms:          symtable.New(),
		inGlobalScope: true,
		funcText:      make(map[string]string),
		WarnArgs:      true,
		warnOut:       warnOut,
	}
}

// Symbols returns the Generator's symbol table, for tests that want to
// assert on declared globals/locals directly.
func (g *Generator) Symbols() *symtable.Table { return g.syms }

// Pool returns the Generator's register pool, for tests asserting the
// post-compile invariant that every allocated register was freed.
func (g *Generator) Pool() *regalloc.Pool { return g.pool }

// Generate walks tree (the root Unit-chain of top-level declarations) and
// returns the fully assembled MIPS program, or an error for a fatal
// condition such as an unknown node tag, register exhaustion, a
// non-constant global initializer, or a missing main function. Malformed
// character constants never reach Generate: the lexer rejects them.
func (g *Generator) Generate(tree *ast.Node) (string, error) {
	if err := g.genTop(tree); err != nil {
		return "", err
	}
	return g.serialize()
}

// genTop recursively walks top-level Unit nodes and dispatches each
// top-level declaration (function, global scalar, global array).
func (g *Generator) genTop(node *ast.Node) error {
	if node == nil {
		return nil
	}
	switch node.Tag {
	case ast.Unit:
		if err := g.genTop(node.Children[0]); err != nil {
			return err
		}
		return g.genTop(node.Children[1])
	case ast.Fun:
		return g.genFunc(node)
	case ast.Decli:
		return g.genGlobalScalar(node)
	case ast.ArrDeciz:
		g.syms.DeclareGlobal(node.Name, node.Type, zeroList(node.Width))
		return nil
	case ast.ArrDeci:
		return g.genGlobalArray(node)
	case ast.Block:
		// An empty program body parses to a single empty Block.
		return nil
	default:
		return errors.Errorf("codegen: unexpected top-level node tag %d", node.Tag)
	}
}

// genGlobalScalar records a global scalar declaration. If an initializer
// is present it must be a constant integer or character literal; globals
// are not evaluated at load time, only emitted into the .data section.
func (g *Generator) genGlobalScalar(node *ast.Node) error {
	init := "0"
	if len(node.Children) > 0 {
		lit, err := constIntOf(node.Children[0])
		if err != nil {
			return errors.Wrapf(err, "initializer for global %q", node.Name)
		}
		init = strconv.Itoa(lit)
	}
	g.syms.DeclareGlobal(node.Name, node.Type, init)
	return nil
}

// genGlobalArray records a global array declaration together with its
// comma-separated initializer-list text.
func (g *Generator) genGlobalArray(node *ast.Node) error {
	initList := node.Children[0] // InitList
	parts := make([]string, 0, node.Width)
	for _, child := range initList.Children {
		lit, err := constIntOf(child)
		if err != nil {
			return errors.Wrapf(err, "initializer for global array %q", node.Name)
		}
		parts = append(parts, strconv.Itoa(lit))
	}
	for len(parts) < node.Width {
		parts = append(parts, "0")
	}
	g.syms.DeclareGlobal(node.Name, node.Type, strings.Join(parts, ", "))
	return nil
}

// constIntOf evaluates a node that must be a compile-time integer or
// character constant, optionally negated by a leading UMinus.
func constIntOf(node *ast.Node) (int, error) {
	switch node.Tag {
	case ast.IntLit, ast.CharLit:
		return node.Op, nil
	case ast.UMinus:
		v, err := constIntOf(node.Children[0])
		if err != nil {
			return 0, err
		}
		return -v, nil
	default:
		return 0, errors.Errorf("not a compile-time constant (tag %d)", node.Tag)
	}
}

// zeroList returns n comma-separated zeroes, the default initializer text
// for a zero-initialized array.
func zeroList(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "0"
	}
	return strings.Join(parts, ", ")
}

// warnf writes a formatted diagnostic if WarnArgs is enabled.
func (g *Generator) warnf(format string, args ...interface{}) {
	if !g.WarnArgs {
		return
	}
	fmt.Fprintf(g.warnOut, format, args...)
}

// newLabel mints and returns the next globally unique label.
func (g *Generator) newLabel() string { return g.labels.New() }
