package lp

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// pollInterval is how often (in iterations) the simplex loop checks the
// wall-clock timeout. Memory usage is not checked: Config.MemoryLimitMB is
// not read, and no solve returns MemoryExceeded.
const pollInterval = 100

func column(prob Problem, j int) []float64 {
	m := len(prob.B)
	col := make([]float64, m)
	for i := 0; i < m; i++ {
		col[i] = prob.A[i][j]
	}
	return col
}

func basisMatrix(prob Problem, basis []int) *mat.Dense {
	m := len(prob.B)
	b := mat.NewDense(m, m, nil)
	for j, idx := range basis {
		col := column(prob, idx)
		for i := 0; i < m; i++ {
			b.Set(i, j, col[i])
		}
	}
	return b
}

func assemble(n int, basis []int, xB []float64) []float64 {
	x := make([]float64, n)
	for i, idx := range basis {
		x[idx] = xB[i]
	}
	return x
}

// Solve runs the revised primal simplex method starting from
// initialBasis: at each iteration it factorizes the current basis, solves
// for the basic values and the simplex multipliers, picks an entering
// variable by the most-positive-reduced-cost rule (Bland's smallest-index
// rule when cfg.UseBland is set, for guaranteed termination), runs the
// minimum-ratio test for the leaving variable, swaps, and refactorizes.
func Solve(prob Problem, cfg Config, initialBasis []int) Result {
	m, n := prob.dims()
	basis := append([]int(nil), initialBasis...)
	start := time.Now()

	for iter := 0; ; iter++ {
		if cfg.MaxIterations > 0 && iter >= cfg.MaxIterations {
			return Result{Status: IterationLimit, Basis: basis}
		}
		if iter%pollInterval == 0 && iter > 0 {
			if cfg.Timeout > 0 && time.Since(start) > cfg.Timeout {
				return Result{Status: TimedOut, Basis: basis}
			}
		}

		f, err := factorize(basisMatrix(prob, basis))
		if err != nil {
			return Result{Status: Infeasible, Err: err, Basis: basis}
		}
		xB, err := f.solve(prob.B)
		if err != nil {
			return Result{Status: Infeasible, Err: err, Basis: basis}
		}
		for _, v := range xB {
			if v < -cfg.FeasibilityTol {
				return Result{Status: Infeasible, Basis: basis}
			}
		}

		cB := make([]float64, m)
		for i, bi := range basis {
			cB[i] = prob.C[bi]
		}
		y, err := f.solveTranspose(cB)
		if err != nil {
			return Result{Status: Infeasible, Err: err, Basis: basis}
		}

		inBasis := make(map[int]bool, m)
		for _, bi := range basis {
			inBasis[bi] = true
		}

		entering := -1
		bestRC := cfg.OptimalityTol
		for j := 0; j < n; j++ {
			if inBasis[j] {
				continue
			}
			rc := prob.C[j] - floats.Dot(y, column(prob, j))
			if rc > bestRC {
				entering = j
				if cfg.UseBland {
					break
				}
				bestRC = rc
			}
		}
		if entering == -1 {
			x := assemble(n, basis, xB)
			return Result{Status: Optimal, X: x, Objective: floats.Dot(prob.C, x), Basis: basis}
		}

		d, err := f.solve(column(prob, entering))
		if err != nil {
			return Result{Status: Infeasible, Err: err, Basis: basis}
		}

		leavingRow := -1
		bestRatio := math.Inf(1)
		for i := 0; i < m; i++ {
			if d[i] <= cfg.FeasibilityTol {
				continue
			}
			ratio := xB[i] / d[i]
			if ratio < bestRatio-1e-9 {
				bestRatio = ratio
				leavingRow = i
			} else if ratio < bestRatio+1e-9 && leavingRow != -1 && basis[i] < basis[leavingRow] {
				leavingRow = i // Bland's rule tie-break: smallest basis index leaves
			}
		}
		if leavingRow == -1 {
			return Result{Status: Unbounded, Basis: basis}
		}
		basis[leavingRow] = entering
	}
}

// SolveDual runs the dual simplex method for warm starts: it
// assumes warmBasis is dual feasible (every reduced cost already <= the
// optimality tolerance) but possibly primal infeasible, and iterates
// picking the most primal-infeasible basic variable to leave, then an
// entering variable by the dual ratio test, until primal feasibility (and
// hence optimality) is restored. Returns Infeasible if no entering
// variable exists for some leaving row (primal infeasible, dual
// unbounded) — callers should fall back to Solve from scratch in that
// case.
func SolveDual(prob Problem, cfg Config, warmBasis []int) Result {
	m, n := prob.dims()
	basis := append([]int(nil), warmBasis...)
	start := time.Now()

	for iter := 0; ; iter++ {
		if cfg.MaxIterations > 0 && iter >= cfg.MaxIterations {
			return Result{Status: IterationLimit, Basis: basis}
		}
		if iter%pollInterval == 0 && iter > 0 {
			if cfg.Timeout > 0 && time.Since(start) > cfg.Timeout {
				return Result{Status: TimedOut, Basis: basis}
			}
		}

		f, err := factorize(basisMatrix(prob, basis))
		if err != nil {
			return Result{Status: Infeasible, Err: err, Basis: basis}
		}
		xB, err := f.solve(prob.B)
		if err != nil {
			return Result{Status: Infeasible, Err: err, Basis: basis}
		}

		leavingRow := -1
		mostNeg := -cfg.FeasibilityTol
		for i, v := range xB {
			if v < mostNeg {
				mostNeg = v
				leavingRow = i
			}
		}
		if leavingRow == -1 {
			x := assemble(n, basis, xB)
			return Result{Status: Optimal, X: x, Objective: floats.Dot(prob.C, x), Basis: basis}
		}

		cB := make([]float64, m)
		for i, bi := range basis {
			cB[i] = prob.C[bi]
		}
		y, err := f.solveTranspose(cB)
		if err != nil {
			return Result{Status: Infeasible, Err: err, Basis: basis}
		}

		e := make([]float64, m)
		e[leavingRow] = 1
		rowVec, err := f.solveTranspose(e)
		if err != nil {
			return Result{Status: Infeasible, Err: err, Basis: basis}
		}

		inBasis := make(map[int]bool, m)
		for _, bi := range basis {
			inBasis[bi] = true
		}

		entering := -1
		bestRatio := math.Inf(1)
		for j := 0; j < n; j++ {
			if inBasis[j] {
				continue
			}
			aj := column(prob, j)
			alpha := floats.Dot(rowVec, aj)
			if alpha >= -cfg.FeasibilityTol {
				continue
			}
			rc := prob.C[j] - floats.Dot(y, aj)
			ratio := rc / alpha
			if ratio < bestRatio-1e-9 {
				bestRatio = ratio
				entering = j
			} else if ratio < bestRatio+1e-9 && entering != -1 && j < entering {
				entering = j
			}
		}
		if entering == -1 {
			return Result{Status: Infeasible, Basis: basis}
		}
		basis[leavingRow] = entering
	}
}
