package fdcore

import "testing"

func TestFloatIntervalDomainBasics(t *testing.T) {
	d := NewFloatIntervalDomain(1.0, 10.0, Step(6))
	if d.IsEmpty() {
		t.Fatal("fresh interval should not be empty")
	}
	if d.Min().F != 1.0 || d.Max().F != 10.0 {
		t.Fatalf("bounds = [%g,%g], want [1,10]", d.Min().F, d.Max().F)
	}
}

func TestFloatIntervalDomainSetMinMaxWithinTolerance(t *testing.T) {
	step := 0.01
	d := NewFloatIntervalDomain(0.0, 1.0, step)

	// Re-tightening to (within floating noise of) the domain's current
	// bound must be a no-op: otherwise repeated
	// propagation of the same logical bound never reaches a fixed point.
	if !d.SetMin(0.3) {
		t.Fatal("SetMin(0.3) should report the first change")
	}
	if d.SetMin(0.3 - 1e-15) {
		t.Fatal("re-tightening to within tolerance of the current bound should report no change")
	}
	if !d.SetMax(0.7) {
		t.Fatal("SetMax(0.7) should report the first change")
	}
	if d.SetMax(0.7 + 1e-15) {
		t.Fatal("re-tightening to within tolerance of the current bound should report no change")
	}
}

func TestFloatIntervalDomainSetMinMaxActualChange(t *testing.T) {
	step := 0.01
	d := NewFloatIntervalDomain(0.0, 10.0, step)
	if !d.SetMin(5.0) {
		t.Fatal("SetMin(5.0) should report a change")
	}
	if d.Min().F != 5.0 {
		t.Fatalf("Min() = %g, want 5.0", d.Min().F)
	}
	if !d.SetMax(6.0) {
		t.Fatal("SetMax(6.0) should report a change")
	}
	if d.Max().F != 6.0 {
		t.Fatalf("Max() = %g, want 6.0", d.Max().F)
	}
}

func TestFloatIntervalDomainFeasibleWithinTolerance(t *testing.T) {
	// x in [0,1]: x = 0.9999999 should be treated as feasible within
	// tolerance of 1.
	d := NewFloatIntervalDomain(0.0, 1.0, Step(6))
	if !d.Contains(FloatValue(0.9999999)) {
		t.Fatal("0.9999999 should be within tolerance of the upper bound 1")
	}
}

func TestFloatIntervalDomainSetMinNearUpperBoundSucceeds(t *testing.T) {
	// Tightening x.min to 0.9999995 when the domain is [0, 1] must succeed
	// (leaving a fixed domain at the boundary), not report failure.
	d := NewFloatIntervalDomain(0.0, 1.0, Step(6))
	if !d.SetMin(0.9999995) {
		t.Fatal("SetMin(0.9999995) should report a change")
	}
	if d.IsEmpty() {
		t.Fatal("domain must not become empty at the tolerance boundary")
	}
}

func TestFloatIntervalDomainPinToOffGridValue(t *testing.T) {
	// Fixing both bounds to a value whose v/step quotient computes slightly
	// off the grid (0.04 at step 1e-6) must not cross the bounds.
	d := NewFloatIntervalDomain(0.0, 10.0, Step(6))
	d.SetMax(0.04)
	d.SetMin(0.04)
	if d.IsEmpty() {
		t.Fatal("pinning to 0.04 emptied the domain")
	}
	if !d.IsFixed() {
		t.Fatalf("domain [%g,%g] should be fixed", d.Min().F, d.Max().F)
	}
}

func TestFloatIntervalDomainStrictBounds(t *testing.T) {
	step := 0.1
	d := NewFloatIntervalDomain(0.0, 10.0, step)
	d.SetMaxStrict(5.5)
	if d.Max().F >= 5.5 {
		t.Fatalf("Max() = %g, want strictly less than 5.5", d.Max().F)
	}
}

func TestFloatIntervalDomainBecomesEmpty(t *testing.T) {
	step := 0.1
	d := NewFloatIntervalDomain(0.0, 1.0, step)
	d.SetMin(0.9)
	d.SetMax(0.1)
	if !d.IsEmpty() {
		t.Fatal("crossed bounds should make the domain empty")
	}
}

func TestFloatIntervalDomainReversibleViaTrail(t *testing.T) {
	tr := NewTrail()
	d := NewFloatIntervalDomain(0.0, 10.0, 0.01)
	d.Attach(tr)

	cp := tr.Checkpoint()
	d.SetMin(5.0)
	d.SetMax(6.0)
	tr.Restore(cp)

	if d.Min().F != 0.0 || d.Max().F != 10.0 {
		t.Fatalf("bounds after restore = [%g,%g], want [0,10]", d.Min().F, d.Max().F)
	}
}
