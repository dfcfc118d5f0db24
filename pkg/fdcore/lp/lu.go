package lp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// singularCondTol bounds the condition number gonum's LU factorization may
// report before a basis is rejected as numerically singular. gonum's
// mat.LU performs partial pivoting internally; Cond() is the practical
// proxy for "pivot too small" once the factorization itself has run.
const singularCondTol = 1e14

// factorization wraps gonum's partial-pivoting LU decomposition of one
// basis matrix B, providing the solve, transpose-solve (needed for reduced
// cost computation) and multi-RHS operations the simplex loop requires.
type factorization struct {
	lu  mat.LU
	dim int
}

// factorize builds a factorization of the given square basis matrix,
// returning ErrSingularBasis if it is numerically singular.
func factorize(basis *mat.Dense) (*factorization, error) {
	r, c := basis.Dims()
	if r != c {
		return nil, fmt.Errorf("lp: basis must be square, got %dx%d", r, c)
	}
	f := &factorization{dim: r}
	f.lu.Factorize(basis)
	if cond := f.lu.Cond(); math.IsInf(cond, 1) || math.IsNaN(cond) || cond > singularCondTol {
		return nil, ErrSingularBasis
	}
	return f, nil
}

// solve returns x solving B x = b.
func (f *factorization) solve(b []float64) ([]float64, error) {
	bv := mat.NewVecDense(f.dim, append([]float64(nil), b...))
	var xv mat.VecDense
	if err := f.lu.SolveVecTo(&xv, false, bv); err != nil {
		return nil, ErrSingularBasis
	}
	out := make([]float64, f.dim)
	for i := range out {
		out[i] = xv.AtVec(i)
	}
	return out, nil
}

// solveTranspose returns y solving B^T y = c, used for the simplex
// multipliers in reduced-cost computation.
func (f *factorization) solveTranspose(c []float64) ([]float64, error) {
	cv := mat.NewVecDense(f.dim, append([]float64(nil), c...))
	var yv mat.VecDense
	if err := f.lu.SolveVecTo(&yv, true, cv); err != nil {
		return nil, ErrSingularBasis
	}
	out := make([]float64, f.dim)
	for i := range out {
		out[i] = yv.AtVec(i)
	}
	return out, nil
}

// solveMulti solves B X = RHS for several right-hand sides at once,
// packed column-major in rhs (dim x k).
func (f *factorization) solveMulti(rhs *mat.Dense) (*mat.Dense, error) {
	var x mat.Dense
	if err := f.lu.SolveTo(&x, false, rhs); err != nil {
		return nil, ErrSingularBasis
	}
	return &x, nil
}
