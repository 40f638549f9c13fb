package regalloc

import "testing"

func TestAllocReturnsDeclarationOrder(t *testing.T) {
	p := NewPool()
	r1, err := p.Alloc()
	if err != nil {
		t.Fatalf("Alloc() error: %v", err)
	}
	if r1 != "t0" {
		t.Errorf("first Alloc() = %q, want t0", r1)
	}
	r2, err := p.Alloc()
	if err != nil {
		t.Fatalf("Alloc() error: %v", err)
	}
	if r2 != "t1" {
		t.Errorf("second Alloc() = %q, want t1", r2)
	}
}

func TestAllocReusesFreedRegister(t *testing.T) {
	p := NewPool()
	r1, _ := p.Alloc()
	p.Free(r1)
	r2, err := p.Alloc()
	if err != nil {
		t.Fatalf("Alloc() error: %v", err)
	}
	if r2 != r1 {
		t.Errorf("Alloc() after Free(%q) = %q, want %q", r1, r2, r1)
	}
}

func TestAllocExhaustion(t *testing.T) {
	p := NewPool()
	for i := 0; i < len(names); i++ {
		if _, err := p.Alloc(); err != nil {
			t.Fatalf("Alloc() #%d: unexpected error: %v", i, err)
		}
	}
	if _, err := p.Alloc(); err == nil {
		t.Fatal("Alloc() after exhausting the pool: want error, got nil")
	}
}

func TestFreeNonAllocatedRegisterIsNoop(t *testing.T) {
	p := NewPool()
	p.Free("v0") // not one of the allocatable temporaries
	if got := p.InUseCount(); got != 0 {
		t.Errorf("InUseCount() = %d, want 0", got)
	}
}

func TestIsRegisterRecognizesNonAllocatable(t *testing.T) {
	if !IsRegister("v0") {
		t.Error("IsRegister(v0) = false, want true")
	}
	if !IsRegister("t0") {
		t.Error("IsRegister(t0) = false, want true")
	}
	if IsRegister("zzz") {
		t.Error("IsRegister(zzz) = true, want false")
	}
}

func TestInUseCount(t *testing.T) {
	p := NewPool()
	a, _ := p.Alloc()
	_, _ = p.Alloc()
	if got := p.InUseCount(); got != 2 {
		t.Errorf("InUseCount() = %d, want 2", got)
	}
	p.Free(a)
	if got := p.InUseCount(); got != 1 {
		t.Errorf("InUseCount() after Free = %d, want 1", got)
	}
}

func TestFreeResultFreesNestedTuple(t *testing.T) {
	p := NewPool()
	r1, _ := p.Alloc()
	r2, _ := p.Alloc()
	atom := TupleAtom{RegAtom(r1), LitAtom("4"), TupleAtom{RegAtom(r2)}}
	p.FreeResult(atom)
	if got := p.InUseCount(); got != 0 {
		t.Errorf("InUseCount() after FreeResult = %d, want 0", got)
	}
}

func TestFreeResultNilIsNoop(t *testing.T) {
	p := NewPool()
	p.FreeResult(nil) // must not panic
}

func TestLabelGenMonotonic(t *testing.T) {
	g := NewLabelGen()
	l0 := g.New()
	l1 := g.New()
	if l0 != "lbl0" || l1 != "lbl1" {
		t.Errorf("labels = %q, %q, want lbl0, lbl1", l0, l1)
	}
}
