package symtable

import "testing"

func TestDeclareGlobalPreservesOrder(t *testing.T) {
	tab := New()
	tab.DeclareGlobal("b", "int", "0")
	tab.DeclareGlobal("a", "int", "1")
	tab.DeclareGlobal("b", "int", "2") // re-declare: keeps original position

	got := tab.GlobalNames()
	want := []string{"b", "a"}
	if len(got) != len(want) {
		t.Fatalf("GlobalNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GlobalNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if g := tab.Global("b"); g == nil || g.Init != "2" {
		t.Errorf("Global(b) = %+v, want Init=2", g)
	}
}

func TestIsGlobal(t *testing.T) {
	tab := New()
	tab.DeclareGlobal("x", "int", "0")
	if !tab.IsGlobal("x") {
		t.Error("IsGlobal(x) = false, want true")
	}
	if tab.IsGlobal("y") {
		t.Error("IsGlobal(y) = true, want false")
	}
}

func TestOffsetOfAndFrameWords(t *testing.T) {
	tab := New()
	tab.DeclareLocal("f", "a", "int", 1)
	tab.DeclareLocal("f", "b", "int", 3)
	tab.DeclareLocal("f", "c", "int", 1)

	cases := []struct {
		name string
		want int
	}{
		{"a", 4},  // slot 0 reserved for $ra
		{"b", 8},  // after a's 1 word
		{"c", 20}, // after a (1) + b (3) = 4 words
	}
	for _, c := range cases {
		if got := tab.OffsetOf("f", c.name); got != c.want {
			t.Errorf("OffsetOf(f, %q) = %d, want %d", c.name, got, c.want)
		}
	}

	if got, want := tab.FrameWords("f"), 6; got != want { // 1 + 1 + 3 + 1
		t.Errorf("FrameWords(f) = %d, want %d", got, want)
	}
}

func TestFrameWordsEmptyFunction(t *testing.T) {
	tab := New()
	if got, want := tab.FrameWords("empty"), 1; got != want {
		t.Errorf("FrameWords(empty) = %d, want %d", got, want)
	}
}

func TestDeclareStringPreservesOrder(t *testing.T) {
	tab := New()
	tab.DeclareString("lbl1", `"hello"`)
	tab.DeclareString("lbl0", `"world"`)

	got := tab.StringLabels()
	want := []string{"lbl1", "lbl0"}
	if len(got) != len(want) {
		t.Fatalf("StringLabels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("StringLabels()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if s := tab.Strings()["lbl1"]; s != `"hello"` {
		t.Errorf("Strings()[lbl1] = %q, want %q", s, `"hello"`)
	}
}

func TestIsLocalScopedPerFunction(t *testing.T) {
	tab := New()
	tab.DeclareLocal("f", "x", "int", 1)
	if !tab.IsLocal("f", "x") {
		t.Error("IsLocal(f, x) = false, want true")
	}
	if tab.IsLocal("g", "x") {
		t.Error("IsLocal(g, x) = true, want false")
	}
}
