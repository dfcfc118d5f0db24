package fdcore

import "testing"

func TestTrailCheckpointRestore(t *testing.T) {
	tr := NewTrail()
	x := 1
	cp := tr.Checkpoint()
	tr.record(func() { x = 1 })
	x = 2
	tr.record(func() { x = 2 })
	x = 3

	if x != 3 {
		t.Fatalf("x = %d, want 3", x)
	}
	tr.Restore(cp)
	if x != 1 {
		t.Fatalf("after restore x = %d, want 1 (pre-mutation value)", x)
	}
	if tr.Len() != cp {
		t.Fatalf("trail length after restore = %d, want %d", tr.Len(), cp)
	}
}

func TestTrailNestedCheckpoints(t *testing.T) {
	tr := NewTrail()
	v := 0

	cp1 := tr.Checkpoint()
	tr.record(func() { v = 0 })
	v = 1

	cp2 := tr.Checkpoint()
	tr.record(func() { v = 1 })
	v = 2

	tr.Restore(cp2)
	if v != 1 {
		t.Fatalf("after restoring cp2, v = %d, want 1", v)
	}
	tr.Restore(cp1)
	if v != 0 {
		t.Fatalf("after restoring cp1, v = %d, want 0", v)
	}
}

func TestTrailRestoreNoOpAboveCurrentLength(t *testing.T) {
	tr := NewTrail()
	tr.record(func() {})
	n := tr.Len()
	tr.Restore(n + 10) // beyond current length; must not panic
	if tr.Len() != n {
		t.Fatalf("Len() = %d, want %d", tr.Len(), n)
	}
}
