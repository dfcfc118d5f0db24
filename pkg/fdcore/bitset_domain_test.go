package fdcore

import "testing"

func TestBitSetDomainBasics(t *testing.T) {
	d := NewBitSetDomain(0, 9)
	if d.Count() != 10 {
		t.Fatalf("Count() = %d, want 10", d.Count())
	}
	if d.Min().I != 0 || d.Max().I != 9 {
		t.Fatalf("bounds = [%d,%d], want [0,9]", d.Min().I, d.Max().I)
	}
	if !d.Has(5) {
		t.Fatal("expected 5 to be present")
	}
	if d.Remove(5); d.Has(5) {
		t.Fatal("5 should have been removed")
	}
	if d.Count() != 9 {
		t.Fatalf("Count() after remove = %d, want 9", d.Count())
	}
}

func TestBitSetDomainSetMinMax(t *testing.T) {
	d := NewBitSetDomain(0, 9)
	if !d.SetMin(3) {
		t.Fatal("SetMin(3) should report a change")
	}
	if d.Min().I != 3 {
		t.Fatalf("Min() = %d, want 3", d.Min().I)
	}
	if !d.SetMax(6) {
		t.Fatal("SetMax(6) should report a change")
	}
	if d.Max().I != 6 {
		t.Fatalf("Max() = %d, want 6", d.Max().I)
	}
	if d.Count() != 4 { // 3,4,5,6
		t.Fatalf("Count() = %d, want 4", d.Count())
	}
}

func TestBitSetDomainEmptyAfterExhaustion(t *testing.T) {
	d := NewBitSetDomain(0, 0)
	if d.IsEmpty() {
		t.Fatal("singleton domain should not start empty")
	}
	if !d.IsFixed() {
		t.Fatal("singleton domain should be fixed")
	}
	d.Remove(0)
	if !d.IsEmpty() {
		t.Fatal("domain should be empty after removing its only value")
	}
}

func TestBitSetDomainReversibleViaTrail(t *testing.T) {
	tr := NewTrail()
	d := NewBitSetDomain(0, 9)
	d.Attach(tr)

	cp := tr.Checkpoint()
	d.Remove(5)
	d.SetMin(2)
	if d.Has(5) {
		t.Fatal("5 should be removed before restore")
	}
	tr.Restore(cp)
	if !d.Has(5) {
		t.Fatal("5 should be restored")
	}
	if d.Min().I != 0 {
		t.Fatalf("Min() after restore = %d, want 0", d.Min().I)
	}
}

func TestBitSetDomainIterateValues(t *testing.T) {
	d := NewBitSetDomain(5, 8)
	d.Remove(6)
	var got []int
	d.IterateValues(func(v int) { got = append(got, v) })
	want := []int{5, 7, 8}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
