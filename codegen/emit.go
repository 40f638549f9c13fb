package codegen

import "fmt"

// This file holds the low-level MIPS instruction formatters, one per
// instruction form. Each function returns the formatted line rather than
// writing into a shared buffer, so the statement/function emitters can run
// placeholder substitution (STACK/START/END) on the text before folding it
// into an enclosing result.

func emitLabel(label string) string { return fmt.Sprintf("%s:\n", label) }

func emitComment(text string) string { return fmt.Sprintf("\t# %s\n", text) }

func emitAdd(dst, a, b string) string { return fmt.Sprintf("\tadd %s, %s, %s\n", dst, a, b) }

func emitAddImm(dst, a string, lit int) string {
	return fmt.Sprintf("\taddi %s, %s, %d\n", dst, a, lit)
}

func emitSub(dst, a, b string) string { return fmt.Sprintf("\tsub %s, %s, %s\n", dst, a, b) }

func emitSubImm(dst, a string, lit int) string {
	return fmt.Sprintf("\tsubi %s, %s, %d\n", dst, a, lit)
}

// emitAddImmPlaceholder emits an addi whose immediate is an unresolved
// textual placeholder (STACK) rather than a literal int, patched later by
// the statement/function emitters once the real value is known.
func emitAddImmPlaceholder(dst, a, placeholder string) string {
	return fmt.Sprintf("\taddi %s, %s, %s\n", dst, a, placeholder)
}

func emitMult(dst, a, b string) string { return fmt.Sprintf("\tmul %s, %s, %s\n", dst, a, b) }

func emitDiv(dst, a, b string) string {
	return fmt.Sprintf("\tdiv %s, %s\n\tmflo %s\n", a, b, dst)
}

func emitAnd(dst, a, b string) string { return fmt.Sprintf("\tand %s, %s, %s\n", dst, a, b) }

func emitAndImm(dst, a string, lit int) string {
	return fmt.Sprintf("\tandi %s, %s, %d\n", dst, a, lit)
}

func emitOr(dst, a, b string) string { return fmt.Sprintf("\tor %s, %s, %s\n", dst, a, b) }

func emitOrImm(dst, a string, lit int) string {
	return fmt.Sprintf("\tori %s, %s, %d\n", dst, a, lit)
}

func emitXor(dst, a, b string) string { return fmt.Sprintf("\txor %s, %s, %s\n", dst, a, b) }

func emitXorImm(dst, a string, lit int) string {
	return fmt.Sprintf("\txori %s, %s, %d\n", dst, a, lit)
}

func emitNeg(dst, src string) string { return fmt.Sprintf("\tsub %s, $zero, %s\n", dst, src) }

func emitNot(dst, src string) string { return fmt.Sprintf("\tnot %s, %s\n", dst, src) }

func emitLoadImm(dst string, lit int) string { return fmt.Sprintf("\tli %s, %d\n", dst, lit) }

func emitLoadAddr(dst, name string) string { return fmt.Sprintf("\tla %s, %s\n", dst, name) }

func emitLoadWordGlobal(dst, name string) string { return fmt.Sprintf("\tlw %s, %s\n", dst, name) }

func emitLoadWordOff(dst string, off int, base string) string {
	return fmt.Sprintf("\tlw %s, %d(%s)\n", dst, off, base)
}

func emitLoadWordInd(dst, base string) string { return fmt.Sprintf("\tlw %s, (%s)\n", dst, base) }

func emitStoreWordGlobal(src, name string) string { return fmt.Sprintf("\tsw %s, %s\n", src, name) }

func emitStoreWordOff(src string, off int, base string) string {
	return fmt.Sprintf("\tsw %s, %d(%s)\n", src, off, base)
}

func emitStoreWordInd(src, base string) string { return fmt.Sprintf("\tsw %s, (%s)\n", src, base) }

func emitMove(dst, src string) string { return fmt.Sprintf("\tadd %s, $zero, %s\n", dst, src) }

func emitJump(label string) string { return fmt.Sprintf("\tj %s\n", label) }

func emitJumpAndLink(name string) string { return fmt.Sprintf("\tjal %s\n", name) }

func emitJumpReturn() string { return "\tjr $ra\n" }

func emitBranchEqual(a, b, label string) string  { return fmt.Sprintf("\tbeq %s, %s, %s\n", a, b, label) }
func emitBranchNotEqual(a, b, label string) string {
	return fmt.Sprintf("\tbne %s, %s, %s\n", a, b, label)
}
func emitBranchLess(a, b, label string) string { return fmt.Sprintf("\tblt %s, %s, %s\n", a, b, label) }
func emitBranchGreater(a, b, label string) string {
	return fmt.Sprintf("\tbgt %s, %s, %s\n", a, b, label)
}
func emitBranchLessEqual(a, b, label string) string {
	return fmt.Sprintf("\tble %s, %s, %s\n", a, b, label)
}
func emitBranchGreaterEqual(a, b, label string) string {
	return fmt.Sprintf("\tbge %s, %s, %s\n", a, b, label)
}

func emitSyscall() string { return "\tsyscall\n" }

func emitRaw(text string) string { return fmt.Sprintf("\t%s\n", text) }
