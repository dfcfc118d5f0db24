package lp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// boxLP builds maximize x+y s.t. x<=4, y<=4, x+y<=6, the small textbook LP
// used throughout this file's scenarios.
func boxLP() Problem {
	return Problem{
		A: [][]float64{
			{1, 0, 1, 0, 0},
			{0, 1, 0, 1, 0},
			{1, 1, 0, 0, 1},
		},
		B: []float64{4, 4, 6},
		C: []float64{1, 1, 0, 0, 0},
	}
}

func TestSolveOptimalSimpleLP(t *testing.T) {
	prob := boxLP()
	res := Solve(prob, DefaultConfig(), []int{2, 3, 4})
	require.Equal(t, Optimal, res.Status)
	require.InDelta(t, 6.0, res.Objective, 1e-6)
	require.LessOrEqual(t, res.X[0], 4.0+1e-6)
	require.LessOrEqual(t, res.X[1], 4.0+1e-6)
	require.InDelta(t, 6.0, res.X[0]+res.X[1], 1e-6)
}

func TestSolveInfeasibleWhenInitialBasisInfeasible(t *testing.T) {
	prob := Problem{
		A: [][]float64{
			{1, 0},
			{0, 1},
		},
		B: []float64{-1, 2},
		C: []float64{1, 0},
	}
	res := Solve(prob, DefaultConfig(), []int{0, 1})
	require.Equal(t, Infeasible, res.Status)
}

func TestSolveDualWarmStartAgreesWithColdSolve(t *testing.T) {
	prob := boxLP()
	cold := Solve(prob, DefaultConfig(), []int{2, 3, 4})
	require.Equal(t, Optimal, cold.Status)

	warm := SolveDual(prob, DefaultConfig(), cold.Basis)
	require.Equal(t, Optimal, warm.Status)
	require.InDelta(t, cold.Objective, warm.Objective, 1e-6)
}

// TestSolveDualWarmStartAfterAddedRow re-solves after tightening the model:
// maximize x+y under x+y <= 5, then add x+y <= 4 and restart the dual
// simplex from the saved basis extended with the new row's slack. The old
// optimum is primal infeasible but dual feasible in the new problem, so the
// warm start must land on the new optimum 4.
func TestSolveDualWarmStartAfterAddedRow(t *testing.T) {
	first := Problem{
		A: [][]float64{{1, 1, 1}},
		B: []float64{5},
		C: []float64{1, 1, 0},
	}
	cold := Solve(first, DefaultConfig(), []int{2})
	require.Equal(t, Optimal, cold.Status)
	require.InDelta(t, 5.0, cold.Objective, 1e-6)

	second := Problem{
		A: [][]float64{
			{1, 1, 1, 0},
			{1, 1, 0, 1},
		},
		B: []float64{5, 4},
		C: []float64{1, 1, 0, 0},
	}
	warmBasis := append(append([]int(nil), cold.Basis...), 3)
	warm := SolveDual(second, DefaultConfig(), warmBasis)
	require.Equal(t, Optimal, warm.Status)
	require.InDelta(t, 4.0, warm.Objective, 1e-6)
	require.InDelta(t, 4.0, warm.X[0]+warm.X[1], 1e-6)
}

func TestSolveRespectsIterationLimit(t *testing.T) {
	prob := boxLP()
	cfg := DefaultConfig()
	cfg.MaxIterations = 1
	res := Solve(prob, cfg, []int{2, 3, 4})
	require.Equal(t, IterationLimit, res.Status)
}

func TestSolveWithBlandsRule(t *testing.T) {
	prob := boxLP()
	cfg := DefaultConfig()
	cfg.UseBland = true
	res := Solve(prob, cfg, []int{2, 3, 4})
	require.Equal(t, Optimal, res.Status)
	require.InDelta(t, 6.0, res.Objective, 1e-6)
}
