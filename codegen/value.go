package codegen

import "github.com/saicheems/simplec/regalloc"

// Kind identifies which alternative a Value holds: an immediate, an owned
// register, a branch label, a non-owned call result, a tuple of these, or
// nothing. Kind plus the fields below form a small tagged union in place of
// passing around loosely-typed strings and ints.
type Kind int

const (
	// KindNone is the absent result of a statement or void expression.
	KindNone Kind = iota
	// KindImm is a bare integer literal, not yet materialized into a register.
	KindImm
	// KindReg is an owned temporary register holding a value.
	KindReg
	// KindLabel is a branch target, as returned by a condition; never a
	// register and never passed to Pool.Free.
	KindLabel
	// KindCall is the non-owning "v0" convention of a function call
	// result: behaves like a register for read purposes but must never
	// be freed, since it was never allocated from the pool.
	KindCall
	// KindTuple is a nested group of Values, produced by comma-separated
	// argument lists.
	KindTuple
)

// Value is the unified result of walking an expression node: an integer
// literal, an owned register, a branch-target label, a non-owned call
// result, a tuple of these, or nothing.
type Value struct {
	Kind  Kind
	Imm   int
	Reg   string
	Label string
	Tuple []Value
}

// None is the absent result.
func None() Value { return Value{Kind: KindNone} }

// Imm wraps an integer literal.
func Imm(n int) Value { return Value{Kind: KindImm, Imm: n} }

// Reg wraps an owned register name.
func Reg(name string) Value { return Value{Kind: KindReg, Reg: name} }

// Label wraps a condition's branch-target label.
func Label(name string) Value { return Value{Kind: KindLabel, Label: name} }

// CallResult wraps the conventional, non-owned "$v0" call result.
func CallResult() Value { return Value{Kind: KindCall, Reg: "v0"} }

// TupleOf wraps a nested list of Values, e.g. a call's argument list.
func TupleOf(vs ...Value) Value { return Value{Kind: KindTuple, Tuple: vs} }

// toAtom converts a Value into the regalloc.Atom shape that Pool.FreeResult
// understands: registers become RegAtom, everything non-owning (including
// KindCall, which must never reach Pool.Free) becomes a LitAtom, and tuples
// recurse.
func toAtom(v Value) regalloc.Atom {
	switch v.Kind {
	case KindReg:
		return regalloc.RegAtom(v.Reg)
	case KindTuple:
		atoms := make(regalloc.TupleAtom, len(v.Tuple))
		for i, child := range v.Tuple {
			atoms[i] = toAtom(child)
		}
		return atoms
	default:
		// KindNone, KindImm, KindLabel, KindCall: none of these own a
		// pool register, so they free as no-ops.
		return regalloc.LitAtom("")
	}
}

// free releases every register atom owned by v back to the pool. Safe to
// call on any Value, including KindCall results, which it leaves untouched.
func (g *Generator) free(v Value) {
	g.pool.FreeResult(toAtom(v))
}
