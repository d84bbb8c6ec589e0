package statespace

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Predict propagates the state deterministically over the horizon:
// X[0] = x0, X[i] = T*X[i-1]. The result is a 2x(horizon+1) matrix; a
// zero horizon yields the initial state alone.
func Predict(t mat.Matrix, x0 []float64, horizon int) (*mat.Dense, error) {
	return propagate(t, x0, horizon, nil, nil)
}

// Simulate propagates the state with an i.i.d. Gaussian innovation per
// step: X[i] = T*X[i-1] + eps[i-1], eps ~ N(0, sigma). The random
// source is injected so runs are reproducible. sigma must be positive
// semi-definite; it may be singular (the structural covariance is), so
// sampling goes through an eigendecomposition rather than a Cholesky
// factor. A zero sigma degenerates to Predict.
func Simulate(t mat.Matrix, sigma *mat.SymDense, x0 []float64, horizon int, rng *rand.Rand) (*mat.Dense, error) {
	factor, err := covFactor(sigma)
	if err != nil {
		return nil, err
	}
	return propagate(t, x0, horizon, factor, rng)
}

func propagate(t mat.Matrix, x0 []float64, horizon int, factor *mat.Dense, rng *rand.Rand) (*mat.Dense, error) {
	if len(x0) != 2 {
		return nil, fmt.Errorf("%w: initial state has %d entries, want 2", ErrShapeMismatch, len(x0))
	}
	if horizon < 0 {
		return nil, fmt.Errorf("%w: negative horizon %d", ErrShapeMismatch, horizon)
	}

	traj := mat.NewDense(2, horizon+1, nil)
	traj.Set(0, 0, x0[0])
	traj.Set(1, 0, x0[1])

	for i := 1; i <= horizon; i++ {
		for r := 0; r < 2; r++ {
			v := t.At(r, 0)*traj.At(0, i-1) + t.At(r, 1)*traj.At(1, i-1)
			traj.Set(r, i, v)
		}
		if factor != nil {
			z0, z1 := rng.NormFloat64(), rng.NormFloat64()
			traj.Set(0, i, traj.At(0, i)+factor.At(0, 0)*z0+factor.At(0, 1)*z1)
			traj.Set(1, i, traj.At(1, i)+factor.At(1, 0)*z0+factor.At(1, 1)*z1)
		}
	}
	return traj, nil
}

// covFactor returns L with L*L^T = sigma via the eigendecomposition,
// tolerating singular but positive semi-definite matrices. Eigenvalues
// below the negative tolerance reject the matrix.
func covFactor(sigma *mat.SymDense) (*mat.Dense, error) {
	var eig mat.EigenSym
	if !eig.Factorize(sigma, true) {
		return nil, fmt.Errorf("%w: eigendecomposition failed", ErrNotPositiveSemiDefinite)
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	var maxVal float64
	for _, v := range vals {
		if v > maxVal {
			maxVal = v
		}
	}
	tol := 1e-12 * math.Max(maxVal, 1)

	n := len(vals)
	factor := mat.NewDense(n, n, nil)
	for j, v := range vals {
		if v < -tol {
			return nil, fmt.Errorf("%w: eigenvalue %g", ErrNotPositiveSemiDefinite, v)
		}
		if v < 0 {
			v = 0
		}
		s := math.Sqrt(v)
		for i := 0; i < n; i++ {
			factor.Set(i, j, vecs.At(i, j)*s)
		}
	}
	return factor, nil
}
