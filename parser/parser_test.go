package parser

import (
	"testing"

	"github.com/saicheems/simplec/ast"
	"github.com/saicheems/simplec/lexer"
)

type testPair struct {
	test   string
	expect bool // whether Parse is expected to succeed
}

var tests = []testPair{
	{"", true}, // an empty program parses to an empty Block
	{"int main() { return 0; }", true},
	{"int main() {", false},
	{"int x; int main() { return x; }", true},
	{"int arr[4] = {1, 2, 3, 4}; int main() { return arr[0]; }", true},
	{"int main() { if (1 < 2) { return 1; } else { return 0; } }", true},
	{"int main() { while (1 == 1) { break; } return 0; }", true},
	{"int main() { do { continue; } while (0 != 0); return 0; }", true},
	{"int main() { for (int i = 0; i < 10; i = i + 1) { } return 0; }", true},
	{"int f(int a, int b) { return a + b; } int main() { return f(1, 2); }", true},
	{"int main() { asm(\"nop\"); printstr(\"hi\"); return 0; }", true},
	{"int main() { int x = 1 && 2 || 3; return x; }", false},
	{"int main() { return }", false},
	{"void f(", false},
}

func TestParse(t *testing.T) {
	for _, pair := range tests {
		l := lexer.NewFromString(pair.test)
		p := New(l)
		_, err := p.Parse()
		got := err == nil
		if got != pair.expect {
			t.Errorf("Parse(%q): err = %v, want success = %v", pair.test, err, pair.expect)
		}
	}
}

func TestParseFunctionShape(t *testing.T) {
	l := lexer.NewFromString("int main() { return 0; }")
	p := New(l)
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if tree.Tag != ast.Fun {
		t.Fatalf("tree.Tag = %d, want ast.Fun", tree.Tag)
	}
	if tree.Name != "main" {
		t.Errorf("tree.Name = %q, want main", tree.Name)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("len(tree.Children) = %d, want 2", len(tree.Children))
	}
	body := tree.Children[1]
	if body.Tag != ast.Block || len(body.Children) != 1 {
		t.Fatalf("body = %+v, want a single-statement Block", body)
	}
	if body.Children[0].Tag != ast.Ret {
		t.Errorf("body.Children[0].Tag = %d, want ast.Ret", body.Children[0].Tag)
	}
}

func TestParseArrayAssignment(t *testing.T) {
	l := lexer.NewFromString("int main() { int a[4]; a[1] = 2; return 0; }")
	p := New(l)
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	body := tree.Children[1]
	if len(body.Children) != 3 {
		t.Fatalf("len(body.Children) = %d, want 3", len(body.Children))
	}
	assign := body.Children[1]
	if assign.Tag != ast.ArrAssign {
		t.Fatalf("assign.Tag = %d, want ast.ArrAssign", assign.Tag)
	}
	if assign.Name != "a" {
		t.Errorf("assign.Name = %q, want a", assign.Name)
	}
}

func TestParseCondPrecedence(t *testing.T) {
	// 1 < 2 && 3 < 4 || 5 < 6 should parse as ((1<2)&&(3<4)) || (5<6):
	// the outer node must be the OrOr Cond.
	l := lexer.NewFromString("int main() { if (1 < 2 && 3 < 4 || 5 < 6) { return 1; } return 0; }")
	p := New(l)
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	ifNode := tree.Children[1].Children[0]
	if ifNode.Tag != ast.If {
		t.Fatalf("ifNode.Tag = %d, want ast.If", ifNode.Tag)
	}
	cond := ifNode.Children[0]
	if cond.Tag != ast.Cond {
		t.Fatalf("cond.Tag = %d, want ast.Cond", cond.Tag)
	}
	left := cond.Children[0]
	if left.Tag != ast.Cond {
		t.Fatalf("left.Tag = %d, want ast.Cond (the && group)", left.Tag)
	}
}
