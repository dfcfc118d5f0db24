// Package lp implements the revised-simplex LP subsolver: a
// bound-tightening oracle the CSP engine may consult when a model has
// enough float-linear structure. It is used standalone here; wiring it to
// the CSP engine lives in the parent package's lpintegration.go.
package lp

import (
	"errors"
	"time"
)

// Status is the outcome of one Solve/SolveDual call.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Unbounded
	IterationLimit
	TimedOut
	MemoryExceeded
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	case IterationLimit:
		return "IterationLimit"
	case TimedOut:
		return "TimedOut"
	case MemoryExceeded:
		return "MemoryExceeded"
	default:
		return "Unknown"
	}
}

// ErrSingularBasis is returned by the LU factorization when the candidate
// basis matrix is numerically singular (condition number infinite, NaN or
// above singularCondTol).
var ErrSingularBasis = errors.New("lp: singular basis matrix")

// Problem is a linear program in standard form: maximize C·x subject to
// A x = B, x >= 0 (inequalities are already converted to
// equalities via slack variables by the caller).
type Problem struct {
	A [][]float64 // m x n
	B []float64   // length m
	C []float64   // length n, maximization objective
}

func (p Problem) dims() (m, n int) {
	m = len(p.B)
	if m == 0 {
		return 0, 0
	}
	return m, len(p.A[0])
}

// Config holds the simplex tolerances and limits.
type Config struct {
	FeasibilityTol float64
	OptimalityTol  float64
	MaxIterations  int
	Timeout        time.Duration
	MemoryLimitMB  uint64
	// UseBland forces Bland's smallest-index entering rule, guaranteeing
	// termination at the cost of slower typical-case convergence. The
	// default entering rule is most-positive reduced cost; the ratio test
	// always breaks ties toward the smallest basis index, which is what
	// prevents cycling in the degenerate cases that matter here.
	UseBland bool
}

// DefaultConfig returns the default simplex tolerances and limits.
func DefaultConfig() Config {
	return Config{
		FeasibilityTol: 1e-6,
		OptimalityTol:  1e-6,
		MaxIterations:  10000,
	}
}

// Result is the outcome of a solve: status, the full (basic+nonbasic) x
// vector, objective value, and the basis index list (retained for warm
// starting the next solve).
type Result struct {
	Status    Status
	X         []float64
	Objective float64
	Basis     []int
	Err       error
}
