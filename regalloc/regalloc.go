// Package regalloc implements a fixed-size temporary register pool and a
// monotonic label generator for code generation.
package regalloc

import (
	"fmt"

	"github.com/pkg/errors"
)

// names lists the 20 caller-save temporary registers in declaration order.
// Pool.Alloc scans this order, so which free register it returns is
// deterministic but otherwise arbitrary.
var names = []string{
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"k0", "k1",
}

// recognized is the wider set used only by IsRegister: every allocatable
// temp register plus argument/return/reserved/pointer registers that never
// participate in allocation.
var recognized = buildRecognized()

func buildRecognized() map[string]bool {
	m := make(map[string]bool, len(names)+16)
	for _, n := range names {
		m[n] = true
	}
	for _, n := range []string{
		"a0", "a1", "a2", "a3",
		"v0", "v1",
		"at",
		"gp", "sp", "fp", "ra",
	} {
		m[n] = true
	}
	return m
}

// Pool is a fixed ordered set of temporary registers, each either free or
// in use.
type Pool struct {
	inUse map[string]bool
}

// NewPool returns a Pool with every temporary register free.
func NewPool() *Pool {
	return &Pool{inUse: make(map[string]bool, len(names))}
}

// Alloc returns the first free register in declaration order and marks it
// in use. It returns a hard error if the pool is exhausted.
func (p *Pool) Alloc() (string, error) {
	for _, n := range names {
		if !p.inUse[n] {
			p.inUse[n] = true
			return n, nil
		}
	}
	return "", errors.Errorf("register pool exhausted: all %d temporary registers are in use", len(names))
}

// Free releases reg back to the pool. Freeing a register that is not
// currently in use, or that is not one of the allocatable temporaries (for
// example "v0", returned by a Call result), is a silent no-op: callers are
// expected to route non-owned values through codegen's Value kinds rather
// than ever calling Free on them, but defending here keeps a stray call
// from corrupting pool state.
func (p *Pool) Free(reg string) {
	if _, ok := p.inUse[reg]; ok {
		p.inUse[reg] = false
	}
}

// IsRegister reports whether name is a recognized MIPS register name, using
// the wider recognized set (temporaries plus argument/return/reserved
// registers). It never reflects allocation state and must not be used to
// decide whether a register is free.
func IsRegister(name string) bool {
	return recognized[name]
}

// InUseCount returns the number of currently allocated temporary registers.
// Used by tests to assert the pool returns to its initial state after a
// compile.
func (p *Pool) InUseCount() int {
	n := 0
	for _, v := range p.inUse {
		if v {
			n++
		}
	}
	return n
}

// Atom is one leaf of a (possibly nested) expression result: either a bare
// register name or a non-register literal/label text. FreeResult walks a
// tree of Atoms, freeing every register it finds.
type Atom interface {
	isAtom()
}

// RegAtom wraps a register name.
type RegAtom string

func (RegAtom) isAtom() {}

// LitAtom wraps a non-register literal or label, which FreeResult ignores.
type LitAtom string

func (LitAtom) isAtom() {}

// TupleAtom wraps a nested group of atoms, for results that are themselves
// tuples of registers and literals (e.g. an array base/index pair still
// awaiting combination).
type TupleAtom []Atom

func (TupleAtom) isAtom() {}

// FreeResult releases every register atom reachable from atom, recursing
// into tuples. A nil atom (the "absent" result, e.g. a bare statement with
// no value) is a no-op.
func (p *Pool) FreeResult(atom Atom) {
	switch a := atom.(type) {
	case nil:
		return
	case RegAtom:
		p.Free(string(a))
	case LitAtom:
		return
	case TupleAtom:
		for _, child := range a {
			p.FreeResult(child)
		}
	}
}

// LabelGen is a monotonically increasing counter yielding globally unique
// "lbl<N>" names within a single compile.
type LabelGen struct {
	n int
}

// NewLabelGen returns a LabelGen starting at 0.
func NewLabelGen() *LabelGen {
	return &LabelGen{}
}

// New returns the next label and advances the counter.
func (g *LabelGen) New() string {
	l := fmt.Sprintf("lbl%d", g.n)
	g.n++
	return l
}
