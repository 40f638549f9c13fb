// Package symtable implements a three-part symbol table: globals,
// per-function ordered locals, and string literals.
package symtable

// Global describes a top-level variable or array: its type tag and the
// comma-separated initializer text suitable for a .word directive.
type Global struct {
	Type string // "int" or "char".
	Init string // e.g. "0" or "1, 2, 3".
}

// Local describes one declared local variable or array within a function:
// its type tag and its width in words (1 for scalars, N for arrays).
type Local struct {
	Type  string
	Width int
}

// Table is the symbol table for a single compile: a globals map, a
// per-function ordered locals map, and a string-literal map.
type Table struct {
	globals     map[string]*Global
	globalOrder []string // declaration order, for deterministic emission.
	// localNames[fn] holds fn's local names in declaration order and
	// localVals[fn] maps each name to its Local: declaration order matters
	// because OffsetOf sums preceding widths.
	localNames map[string][]string
	localVals  map[string]map[string]*Local
	strings    map[string]string // label -> quoted literal (including quotes)
	strOrder   []string          // string-label declaration order, for deterministic C7 emission.
}

// New returns a new, empty Table.
func New() *Table {
	return &Table{
		globals:    make(map[string]*Global),
		localNames: make(map[string][]string),
		localVals:  make(map[string]map[string]*Local),
		strings:    make(map[string]string),
	}
}

// DeclareGlobal records a global variable or array with its initializer
// text. Re-declaring a name overwrites the previous entry but keeps its
// original position in GlobalNames's declaration order.
func (t *Table) DeclareGlobal(name, typ, init string) {
	if _, exists := t.globals[name]; !exists {
		t.globalOrder = append(t.globalOrder, name)
	}
	t.globals[name] = &Global{Type: typ, Init: init}
}

// IsGlobal reports whether name is declared as a global.
func (t *Table) IsGlobal(name string) bool {
	_, ok := t.globals[name]
	return ok
}

// Global returns the Global entry for name, or nil if it is not a global.
func (t *Table) Global(name string) *Global {
	return t.globals[name]
}

// GlobalNames returns the declared global names in declaration order.
func (t *Table) GlobalNames() []string {
	names := make([]string, len(t.globalOrder))
	copy(names, t.globalOrder)
	return names
}

// DeclareLocal records a local variable or array of the given width (in
// words) under function fn, in declaration order. Calling this for the same
// (fn, name) pair twice overwrites the entry's type and width but keeps its
// original position in the declaration order; no second slot is added.
func (t *Table) DeclareLocal(fn, name, typ string, width int) {
	if _, ok := t.localVals[fn]; !ok {
		t.localVals[fn] = make(map[string]*Local)
	}
	if _, exists := t.localVals[fn][name]; !exists {
		t.localNames[fn] = append(t.localNames[fn], name)
	}
	t.localVals[fn][name] = &Local{Type: typ, Width: width}
}

// IsLocal reports whether name is declared as a local of function fn.
func (t *Table) IsLocal(fn, name string) bool {
	vals, ok := t.localVals[fn]
	if !ok {
		return false
	}
	_, ok = vals[name]
	return ok
}

// Local returns the Local entry for name within function fn, or nil.
func (t *Table) Local(fn, name string) *Local {
	vals, ok := t.localVals[fn]
	if !ok {
		return nil
	}
	return vals[name]
}

// OffsetOf returns the byte offset of name within function fn's stack
// frame: 4 * (1 + sum of widths of locals declared before name). Slot 0 is
// reserved for the saved return address.
func (t *Table) OffsetOf(fn, name string) int {
	sum := 0
	for _, n := range t.localNames[fn] {
		if n == name {
			break
		}
		sum += t.localVals[fn][n].Width
	}
	return 4 * (sum + 1)
}

// FrameWords returns 1 (for the saved $ra slot) plus the sum of all
// declared local widths for fn. Multiplying by 4 gives the frame's byte
// size.
func (t *Table) FrameWords(fn string) int {
	total := 1
	for _, n := range t.localNames[fn] {
		total += t.localVals[fn][n].Width
	}
	return total
}

// LocalNames returns the declared local names of fn in declaration order.
func (t *Table) LocalNames(fn string) []string {
	return t.localNames[fn]
}

// DeclareString records a string literal under label, including its
// surrounding quotes, ready for .asciiz emission.
func (t *Table) DeclareString(label, quoted string) {
	if _, exists := t.strings[label]; !exists {
		t.strOrder = append(t.strOrder, label)
	}
	t.strings[label] = quoted
}

// Strings returns the string table.
func (t *Table) Strings() map[string]string {
	return t.strings
}

// StringLabels returns the declared string labels in declaration order.
func (t *Table) StringLabels() []string {
	labels := make([]string, len(t.strOrder))
	copy(labels, t.strOrder)
	return labels
}
