package codegen

import (
	"strconv"
	"strings"
	"testing"

	"github.com/saicheems/simplec/lexer"
	"github.com/saicheems/simplec/parser"
)

// compile runs the full lexer -> parser -> codegen pipeline over src and
// returns the Generator used (so a test can inspect its symbol table and
// register pool) alongside the assembled output.
func compile(t *testing.T, src string) (*Generator, string) {
	t.Helper()
	l := lexer.NewFromString(src)
	p := parser.New(l)
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	g := New(nil)
	asm, err := g.Generate(tree)
	if err != nil {
		t.Fatalf("Generate(%q) error: %v", src, err)
	}
	return g, asm
}

func TestGenerateReturnZero(t *testing.T) {
	_, asm := compile(t, "int main() { return 0; }")
	if !strings.Contains(asm, "main:") {
		t.Error("output missing main: label")
	}
	if !strings.Contains(asm, "li $v0, 0") {
		t.Error("output missing li $v0, 0 for the return value")
	}
	if !strings.Contains(asm, "li $v0, 10") {
		t.Error("output missing the exit syscall's li $v0, 10")
	}
	if !strings.Contains(asm, "syscall") {
		t.Error("output missing syscall")
	}
}

func TestGenerateNoMainIsError(t *testing.T) {
	l := lexer.NewFromString("int f() { return 0; }")
	p := parser.New(l)
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	g := New(nil)
	if _, err := g.Generate(tree); err == nil {
		t.Error("Generate() with no main: want error, got nil")
	}
}

func TestGeneratePoolReturnsToZero(t *testing.T) {
	g, _ := compile(t, `
		int x;
		int f(int a, int b) { return a + b; }
		int main() {
			int arr[3] = {1, 2, 3};
			x = f(arr[0], arr[1]);
			if (x < 10 && arr[2] > 0) {
				x = x + 1;
			} else {
				x = x - 1;
			}
			while (x > 0) { x = x - 1; }
			return x;
		}`)
	if got := g.Pool().InUseCount(); got != 0 {
		t.Errorf("Pool().InUseCount() after compile = %d, want 0", got)
	}
}

func TestGenerateGlobalScalarAndArray(t *testing.T) {
	g, asm := compile(t, "int x = 5; int arr[3] = {1, 2}; int main() { return x; }")
	if g.Symbols().Global("x").Init != "5" {
		t.Errorf("global x init = %q, want 5", g.Symbols().Global("x").Init)
	}
	if g.Symbols().Global("arr").Init != "1, 2, 0" {
		t.Errorf("global arr init = %q, want %q", g.Symbols().Global("arr").Init, "1, 2, 0")
	}
	if !strings.Contains(asm, "x: .word 5") {
		t.Error("output missing x: .word 5")
	}
	if !strings.Contains(asm, "arr: .word 1, 2, 0") {
		t.Error("output missing arr: .word 1, 2, 0")
	}
}

func TestGenerateLocalArrayFrameSize(t *testing.T) {
	g, _ := compile(t, "int main() { int arr[4] = {1,2,3,4}; return arr[0]; }")
	// 1 word for the saved $ra plus 4 words for arr.
	if got, want := g.Symbols().FrameWords("main"), 5; got != want {
		t.Errorf("FrameWords(main) = %d, want %d", got, want)
	}
}

func TestGenerateForLoopWithPrintStr(t *testing.T) {
	_, asm := compile(t, `int main() {
		for (int i = 0; i < 3; i = i + 1) {
			printstr("hi");
		}
		return 0;
	}`)
	if !strings.Contains(asm, ".asciiz") {
		t.Error("output missing .asciiz string literal")
	}
	if !strings.Contains(asm, "li $v0, 4") {
		t.Error("output missing syscall-4 setup for printstr")
	}
}

func TestGenerateCallArgumentPassing(t *testing.T) {
	_, asm := compile(t, `
		int add(int a, int b) { return a + b; }
		int main() { return add(1, 2); }`)
	if !strings.Contains(asm, "jal add") {
		t.Error("output missing jal add")
	}
	if !strings.Contains(asm, "li $a0, 1") {
		t.Error("output missing argument 1 load into $a0")
	}
	if !strings.Contains(asm, "li $a1, 2") {
		t.Error("output missing argument 2 load into $a1")
	}
}

func TestGenerateAddressOfLocalOffset(t *testing.T) {
	g, asm := compile(t, "int main() { int a; int b; int p = &b; return p; }")
	off := g.Symbols().OffsetOf("main", "b")
	want := "addi $" // partial: exact register name varies, assert the immediate operand matches off
	if !strings.Contains(asm, want) {
		t.Fatalf("output missing any addi instruction")
	}
	if !strings.Contains(asm, ", $sp, "+strconv.Itoa(off)) {
		t.Errorf("output missing address-of b using its stack offset %d", off)
	}
}

func TestGenerateMainMissingIsDetectedEvenWithOtherFunctions(t *testing.T) {
	l := lexer.NewFromString("int a() { return 1; } int b() { return 2; }")
	p := parser.New(l)
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	g := New(nil)
	if _, err := g.Generate(tree); err == nil {
		t.Error("Generate() with no main: want error, got nil")
	}
}
