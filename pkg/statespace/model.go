// Package statespace maps a fitted AR(2) speed process into a 2x2
// linear state-space model on the (speed, acceleration) state, and
// propagates that model forward, deterministically or with injected
// Gaussian innovations.
package statespace

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrShapeMismatch           = errors.New("coefficient shape mismatch")
	ErrNotPositiveSemiDefinite = errors.New("covariance is not positive semi-definite")
)

// FromAR2 converts AR(2) coefficients (phi1, phi2) into the transition
// matrix
//
//	T = [ phi1+phi2        -dt*phi2 ]
//	    [ (phi1+phi2-1)/dt   -phi2  ]
//
// acting on the state (speed, accel), where accel is the backward
// finite difference of speed over dt. The conversion is exact, not an
// estimate: it restates the scalar AR(2) recursion in the difference
// coordinates.
func FromAR2(coef []float64, dt float64) (*mat.Dense, error) {
	if len(coef) != 2 {
		return nil, fmt.Errorf("%w: need 2 AR coefficients, got %d", ErrShapeMismatch, len(coef))
	}
	p1, p2 := coef[0], coef[1]
	return mat.NewDense(2, 2, []float64{
		p1 + p2, -dt * p2,
		(p1 + p2 - 1) / dt, -p2,
	}), nil
}

// States builds the 2xN state history from a speed record: row 0 is the
// speed, row 1 its backward difference over dt, with accel[0] = 0 by
// convention since there is no prior sample.
func States(speed []float64, dt float64) *mat.Dense {
	n := len(speed)
	s := mat.NewDense(2, n, nil)
	for i := 0; i < n; i++ {
		s.Set(0, i, speed[i])
		if i > 0 {
			s.Set(1, i, (speed[i]-speed[i-1])/dt)
		}
	}
	return s
}

// StructuralCovariance is the analytic innovation covariance
//
//	[ 1     1/dt   ] * innovVar
//	[ 1/dt  1/dt^2 ]
//
// The acceleration channel is a scaled finite difference of the speed
// channel, so the two error channels are perfectly correlated and the
// matrix is rank one. This is the default covariance for simulation.
func StructuralCovariance(innovVar, dt float64) *mat.SymDense {
	return mat.NewSymDense(2, []float64{
		innovVar, innovVar / dt,
		innovVar / dt, innovVar / (dt * dt),
	})
}

// ResidualCovariance estimates the innovation covariance empirically as
// the sample covariance of the one-step prediction residuals
// X[:,k+1] - T*X[:,k]. Kept as a diagnostic alongside the structural
// form.
func ResidualCovariance(t mat.Matrix, states mat.Matrix) (*mat.SymDense, error) {
	d, n := states.Dims()
	if d != 2 {
		return nil, fmt.Errorf("%w: state history has %d rows, want 2", ErrShapeMismatch, d)
	}
	if n < 3 {
		return nil, fmt.Errorf("%w: %d state columns cannot support a residual covariance", ErrShapeMismatch, n)
	}

	var pred mat.Dense
	pred.Mul(t, states)

	resid := mat.NewDense(n-1, 2, nil)
	for k := 0; k < n-1; k++ {
		resid.Set(k, 0, states.At(0, k+1)-pred.At(0, k))
		resid.Set(k, 1, states.At(1, k+1)-pred.At(1, k))
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, resid, nil)
	return &cov, nil
}
