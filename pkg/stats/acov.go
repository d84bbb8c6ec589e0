// Package stats provides empirical second-order statistics of sampled
// signals: autocovariance, autocorrelation and a few scalar helpers.
// Signals are assumed zero-mean; the autocovariance estimator is the
// biased one (normalized by the full sample count) and does not subtract
// the sample mean.
package stats

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLag         = errors.New("lag out of range")
	ErrDegenerateVariance = errors.New("non-positive variance at lag zero")
)

// Autocovariance estimates the autocovariance of x at lags 0..maxLag:
//
//	acov[h] = (1/N) * sum_t x[t]*x[t+h]
//
// maxLag must satisfy 0 <= maxLag < len(x).
func Autocovariance(x []float64, maxLag int) ([]float64, error) {
	if maxLag < 0 || maxLag >= len(x) {
		return nil, fmt.Errorf("%w: maxlag %d with %d samples", ErrInvalidLag, maxLag, len(x))
	}
	lags := make([]int, maxLag+1)
	for i := range lags {
		lags[i] = i
	}
	return AutocovarianceAt(x, lags)
}

// AutocovarianceAt estimates the autocovariance of x at an explicit set
// of lags. Cheaper than Autocovariance when only a sparse subset of a
// large lag range is needed.
func AutocovarianceAt(x []float64, lags []int) ([]float64, error) {
	n := len(x)
	out := make([]float64, len(lags))
	for i, h := range lags {
		if h < 0 || h >= n {
			return nil, fmt.Errorf("%w: lag %d with %d samples", ErrInvalidLag, h, n)
		}
		var sum float64
		for t := 0; t+h < n; t++ {
			sum += x[t] * x[t+h]
		}
		out[i] = sum / float64(n)
	}
	return out, nil
}

// Autocorrelation is Autocovariance normalized by the lag-0 entry, so
// the returned sequence always starts with exactly 1.
func Autocorrelation(x []float64, maxLag int) ([]float64, error) {
	acov, err := Autocovariance(x, maxLag)
	if err != nil {
		return nil, err
	}
	if acov[0] <= 0 {
		return nil, fmt.Errorf("%w: acov(0) = %g", ErrDegenerateVariance, acov[0])
	}
	acf := make([]float64, len(acov))
	for i, v := range acov {
		acf[i] = v / acov[0]
	}
	return acf, nil
}
