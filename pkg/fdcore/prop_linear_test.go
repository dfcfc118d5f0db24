package fdcore

import (
	"errors"
	"testing"
)

func TestLinearEqWithZeroCoefficientIgnoresThatTerm(t *testing.T) {
	m := NewModel(DefaultConfig())
	x, _ := m.NewIntVar("x", 0, 10)
	y, _ := m.NewIntVar("y", 0, 10)
	// x + 0*y = 5: y must be left totally unconstrained by this constraint.
	if err := m.AddLinearEq([]VarID{x, y}, []float64{1, 0}, 5); err != nil {
		t.Fatalf("AddLinearEq: %v", err)
	}
	sol, _, err := m.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.GetInt(x) != 5 {
		t.Fatalf("x = %d, want 5", sol.GetInt(x))
	}
	if sol.GetInt(y) < 0 || sol.GetInt(y) > 10 {
		t.Fatalf("y = %d out of its original range", sol.GetInt(y))
	}
}

func TestLinearNeExcludesForcedValue(t *testing.T) {
	m := NewModel(DefaultConfig())
	x, _ := m.NewIntVar("x", 0, 3)
	y := constInt(t, m, 2)
	// x + y != 5 with y fixed at 2 forces x != 3.
	if err := m.AddLinearNe([]VarID{x, y}, []float64{1, 1}, 5); err != nil {
		t.Fatalf("AddLinearNe: %v", err)
	}
	sol, _, err := m.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.GetInt(x) == 3 {
		t.Fatal("x should never equal 3 (3+2=5 is excluded)")
	}
}

func TestLinearLeInfeasibleAtRoot(t *testing.T) {
	m := NewModel(DefaultConfig())
	x, _ := m.NewIntVar("x", 10, 20)
	y, _ := m.NewIntVar("y", 10, 20)
	// min possible sum is 20, constraint demands <= 5: infeasible immediately.
	if err := m.AddLinearLe([]VarID{x, y}, []float64{1, 1}, 5); err != nil {
		t.Fatalf("AddLinearLe: %v", err)
	}
	_, _, err := m.Solve()
	if err == nil {
		t.Fatal("expected infeasibility")
	}
}

func TestLinearOverflowReportsInternalError(t *testing.T) {
	m := NewModel(DefaultConfig())
	x, _ := m.NewIntVar("x", 0, 1000)
	y, _ := m.NewIntVar("y", 0, 1000)
	// 1e13 * 1000 exceeds the exact-float64 accumulation range; the
	// propagator must report the overflow, not silently lose precision.
	if err := m.AddLinearEq([]VarID{x, y}, []float64{1e13, 1}, 5); err != nil {
		t.Fatalf("AddLinearEq: %v", err)
	}

	_, _, err := m.Solve()
	var se *SolveError
	if !errors.As(err, &se) || se.Kind != ErrInternal {
		t.Fatalf("expected an InternalError for overflowing terms, got %v", err)
	}
}

func TestLinearEqPropagatesBothDirections(t *testing.T) {
	m := NewModel(DefaultConfig())
	x, _ := m.NewIntVar("x", 0, 100)
	y := constInt(t, m, 4)
	if err := m.AddLinearEq([]VarID{x, y}, []float64{2, 3}, 20); err != nil {
		t.Fatalf("AddLinearEq: %v", err)
	}
	// 2x + 12 = 20 => x = 4
	sol, _, err := m.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.GetInt(x) != 4 {
		t.Fatalf("x = %d, want 4", sol.GetInt(x))
	}
}
