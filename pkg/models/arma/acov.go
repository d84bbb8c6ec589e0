package arma

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/wavegrid/searev/pkg/stats"
)

// Autocovariance computes the exact autocovariance of the stationary
// process defined by m at lags 0..maxLag, under the given innovation
// variance. It follows Brockwell & Davis (3.3.8)/(3.3.9): the first
// n = max(p, q+1) lags come from a direct solve of the folded Toeplitz
// system built on the impulse response, the rest from the pure-AR
// recursion, which is exact once MA terms have vanished.
//
// A singular system means the AR polynomial has a unit root; such a
// model has no stationary autocovariance and ErrNonStationaryModel is
// returned.
func Autocovariance(m Model, maxLag int, innovVar float64) ([]float64, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	if maxLag < 0 {
		return nil, fmt.Errorf("%w: maxlag %d", stats.ErrInvalidLag, maxLag)
	}

	p, q := m.P(), m.Q()

	num := make([]float64, q+1)
	num[0] = 1
	copy(num[1:], m.MA)
	den := make([]float64, p+1)
	den[0] = 1
	for i, c := range m.AR {
		den[i+1] = -c
	}

	// Impulse response h(0)..h(q) of the ARMA transfer function.
	delta := make([]float64, q+1)
	delta[0] = 1
	impRes := lfilter(num, den, delta)

	n := p
	if q+1 > n {
		n = q + 1
	}

	// Right-hand side b(0)..b(n): the reversed, zero-padded impulse
	// response pushed through the MA polynomial.
	impRev := make([]float64, q+1+n)
	for i := 0; i <= q; i++ {
		impRev[i] = impRes[q-i]
	}
	b := lfilter(num, []float64{1}, impRev)[q:]
	for i := range b {
		b[i] *= innovVar
	}

	// Toeplitz coefficient matrix from the negated, reversed AR
	// coefficients, folded so that cov(-k) and cov(k) share a column.
	arExt := make([]float64, n)
	copy(arExt, m.AR)
	rv := func(k int) float64 {
		switch {
		case k == n:
			return 1
		case k >= 0 && k < n:
			return -arExt[n-1-k]
		default:
			return 0
		}
	}
	a := mat.NewDense(n+1, n+1, nil)
	for i := 0; i <= n; i++ {
		a.Set(i, 0, rv(n-i))
		for j := 1; j <= n; j++ {
			v := rv(n + j - i)
			if n-j >= i {
				v += rv(n - j - i)
			}
			a.Set(i, j, v)
		}
	}

	var covN mat.VecDense
	if err := covN.SolveVec(a, mat.NewVecDense(n+1, b)); err != nil {
		return nil, fmt.Errorf("%w: covariance system is singular", ErrNonStationaryModel)
	}

	cov := make([]float64, maxLag+1)
	for i := 0; i <= maxLag && i <= n; i++ {
		cov[i] = covN.AtVec(i)
	}
	// Beyond lag n the MA part contributes nothing and the AR
	// recursion propagates the covariance exactly.
	for i := n + 1; i <= maxLag; i++ {
		var v float64
		for k, c := range m.AR {
			v += c * cov[i-1-k]
		}
		cov[i] = v
	}
	return cov, nil
}

// Autocorrelation is Autocovariance normalized by the lag-0 variance.
// The innovation variance cancels in the normalization, so none is
// taken.
func Autocorrelation(m Model, maxLag int) ([]float64, error) {
	acov, err := Autocovariance(m, maxLag, 1)
	if err != nil {
		return nil, err
	}
	if acov[0] <= 0 {
		return nil, fmt.Errorf("%w: model variance %g", stats.ErrDegenerateVariance, acov[0])
	}
	acf := make([]float64, len(acov))
	for i, v := range acov {
		acf[i] = v / acov[0]
	}
	return acf, nil
}

// lfilter applies the causal linear filter num/den to x. den[0] is
// assumed to be 1; a den of length 1 makes it a plain FIR filter.
func lfilter(num, den, x []float64) []float64 {
	y := make([]float64, len(x))
	for i := range x {
		var v float64
		for j, c := range num {
			if i-j >= 0 {
				v += c * x[i-j]
			}
		}
		for j := 1; j < len(den); j++ {
			if i-j >= 0 {
				v -= den[j] * y[i-j]
			}
		}
		y[i] = v
	}
	return y
}
