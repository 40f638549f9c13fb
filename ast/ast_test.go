package ast

import "testing"

func TestNewFunDefaultsNilParams(t *testing.T) {
	body := NewBlock()
	n := NewFun("int", "main", 1, nil, body)
	if n.Tag != Fun {
		t.Fatalf("Tag = %d, want Fun", n.Tag)
	}
	if len(n.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(n.Children))
	}
	if n.Children[0].Tag != ParamList || len(n.Children[0].Children) != 0 {
		t.Errorf("Children[0] = %+v, want an empty ParamList", n.Children[0])
	}
}

func TestNewForDefaultsNilClauses(t *testing.T) {
	n := NewFor(nil, nil, nil, NewBlock())
	if len(n.Children) != 4 {
		t.Fatalf("len(Children) = %d, want 4", len(n.Children))
	}
	for i := 0; i < 3; i++ {
		if n.Children[i].Tag != Block || len(n.Children[i].Children) != 0 {
			t.Errorf("Children[%d] = %+v, want an empty Block", i, n.Children[i])
		}
	}
}

func TestNewRetOptionalExpr(t *testing.T) {
	bare := NewRet(nil)
	if len(bare.Children) != 0 {
		t.Errorf("NewRet(nil).Children = %v, want empty", bare.Children)
	}
	withExpr := NewRet(NewIntLit(1))
	if len(withExpr.Children) != 1 {
		t.Errorf("NewRet(expr).Children = %v, want 1 child", withExpr.Children)
	}
}

func TestNewCallDefaultsNilArgs(t *testing.T) {
	n := NewCall("f", 1, nil)
	if n.Children[0].Tag != ArgList || len(n.Children[0].Children) != 0 {
		t.Errorf("Children[0] = %+v, want an empty ArgList", n.Children[0])
	}
}

func TestAppendNode(t *testing.T) {
	n := New(Block)
	n.AppendNode(NewBreak(), NewContinue())
	if len(n.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(n.Children))
	}
	if n.Children[0].Tag != Break || n.Children[1].Tag != Continue {
		t.Errorf("Children = %+v, want [Break, Continue]", n.Children)
	}
}
