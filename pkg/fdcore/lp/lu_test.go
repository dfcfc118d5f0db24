package lp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFactorizeSolvesLinearSystem(t *testing.T) {
	basis := mat.NewDense(2, 2, []float64{2, 0, 0, 4})
	f, err := factorize(basis)
	require.NoError(t, err)

	x, err := f.solve([]float64{6, 8})
	require.NoError(t, err)
	require.InDelta(t, 3.0, x[0], 1e-9)
	require.InDelta(t, 2.0, x[1], 1e-9)
}

func TestFactorizeSolveTranspose(t *testing.T) {
	basis := mat.NewDense(2, 2, []float64{1, 2, 0, 1})
	f, err := factorize(basis)
	require.NoError(t, err)

	// B^T y = c: [[1,0],[2,1]] y = [1,5] => y0=1, y1=3
	y, err := f.solveTranspose([]float64{1, 5})
	require.NoError(t, err)
	require.InDelta(t, 1.0, y[0], 1e-9)
	require.InDelta(t, 3.0, y[1], 1e-9)
}

func TestFactorizeDetectsSingularBasis(t *testing.T) {
	basis := mat.NewDense(2, 2, []float64{1, 2, 2, 4}) // rows are linearly dependent
	_, err := factorize(basis)
	require.ErrorIs(t, err, ErrSingularBasis)
}

func TestFactorizeSolveMultiRHS(t *testing.T) {
	basis := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	f, err := factorize(basis)
	require.NoError(t, err)

	rhs := mat.NewDense(2, 2, []float64{1, 3, 2, 4})
	x, err := f.solveMulti(rhs)
	require.NoError(t, err)
	require.InDelta(t, 1.0, x.At(0, 0), 1e-9)
	require.InDelta(t, 3.0, x.At(0, 1), 1e-9)
	require.InDelta(t, 2.0, x.At(1, 0), 1e-9)
	require.InDelta(t, 4.0, x.At(1, 1), 1e-9)
}
