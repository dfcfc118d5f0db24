package fdcore

import "testing"

func TestSparseSetDomainBasics(t *testing.T) {
	d := NewSparseSetDomain(0, 199)
	if d.Count() != 200 {
		t.Fatalf("Count() = %d, want 200", d.Count())
	}
	if d.Min().I != 0 || d.Max().I != 199 {
		t.Fatalf("bounds = [%d,%d], want [0,199]", d.Min().I, d.Max().I)
	}
	if !d.Remove(100) {
		t.Fatal("Remove(100) should report a change")
	}
	if d.Has(100) {
		t.Fatal("100 should no longer be present")
	}
	if d.Count() != 199 {
		t.Fatalf("Count() = %d, want 199", d.Count())
	}
}

func TestSparseSetDomainBoundsAfterRemovingExtreme(t *testing.T) {
	d := NewSparseSetDomain(0, 9)
	d.Remove(0)
	if d.Min().I != 1 {
		t.Fatalf("Min() after removing lower bound = %d, want 1", d.Min().I)
	}
	d.Remove(9)
	if d.Max().I != 8 {
		t.Fatalf("Max() after removing upper bound = %d, want 8", d.Max().I)
	}
}

func TestSparseSetDomainSetMinMax(t *testing.T) {
	d := NewSparseSetDomain(0, 199)
	if !d.SetMin(50) {
		t.Fatal("SetMin(50) should report a change")
	}
	if !d.SetMax(150) {
		t.Fatal("SetMax(150) should report a change")
	}
	if d.Count() != 101 {
		t.Fatalf("Count() = %d, want 101", d.Count())
	}
	if d.Min().I != 50 || d.Max().I != 150 {
		t.Fatalf("bounds = [%d,%d], want [50,150]", d.Min().I, d.Max().I)
	}
}

func TestSparseSetDomainReversibleViaTrail(t *testing.T) {
	tr := NewTrail()
	d := NewSparseSetDomain(0, 199)
	d.Attach(tr)

	cp := tr.Checkpoint()
	d.Remove(100)
	d.SetMin(10)
	tr.Restore(cp)

	if !d.Has(100) {
		t.Fatal("100 should be restored")
	}
	if d.Count() != 200 {
		t.Fatalf("Count() after restore = %d, want 200", d.Count())
	}
	if d.Min().I != 0 {
		t.Fatalf("Min() after restore = %d, want 0", d.Min().I)
	}
}

func TestSparseSetDomainComplementIteration(t *testing.T) {
	d := NewSparseSetDomain(0, 9)
	d.Remove(3)
	d.Remove(7)
	var removed []int
	d.IterateComplement(func(v int) { removed = append(removed, v) })
	if len(removed) != 2 {
		t.Fatalf("IterateComplement gave %v, want 2 entries", removed)
	}
	seen := map[int]bool{}
	for _, v := range removed {
		seen[v] = true
	}
	if !seen[3] || !seen[7] {
		t.Fatalf("IterateComplement gave %v, want {3,7}", removed)
	}
}

func TestSparseSetDomainPreferComplement(t *testing.T) {
	d := NewSparseSetDomain(0, 99)
	if !d.PreferComplement() {
		t.Fatal("fresh domain with no removals should prefer the (empty) complement")
	}
	for v := 0; v < 90; v++ {
		d.Remove(v)
	}
	if d.PreferComplement() {
		t.Fatal("domain with most values removed should not prefer complement iteration")
	}
}

// Equivalence invariant: a bitset domain and a sparse-set
// domain built over the same small universe and subjected to the same
// sequence of removals/bound tightenings must agree on every query.
func TestBitSetAndSparseSetDomainsAgree(t *testing.T) {
	bs := NewBitSetDomain(0, 19)
	ss := NewSparseSetDomain(0, 19)

	ops := func(remove func(int) bool, setMin, setMax func(int) bool) {
		remove(5)
		remove(12)
		setMin(2)
		setMax(17)
	}
	ops(bs.Remove, bs.SetMin, bs.SetMax)
	ops(ss.Remove, ss.SetMin, ss.SetMax)

	if bs.Count() != ss.Count() {
		t.Fatalf("Count mismatch: bitset=%d sparseset=%d", bs.Count(), ss.Count())
	}
	if bs.Min().I != ss.Min().I || bs.Max().I != ss.Max().I {
		t.Fatalf("bounds mismatch: bitset=[%d,%d] sparseset=[%d,%d]",
			bs.Min().I, bs.Max().I, ss.Min().I, ss.Max().I)
	}
	for v := 0; v < 20; v++ {
		if bs.Has(v) != ss.Has(v) {
			t.Fatalf("Has(%d) mismatch: bitset=%v sparseset=%v", v, bs.Has(v), ss.Has(v))
		}
	}
}
