// Package arma implements ARMA(p, q) process analytics: the exact
// autocovariance function of a model, estimation of AR coefficients
// from data, and simulation of realizations with injected innovations.
package arma

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrShapeMismatch      = errors.New("coefficient shape mismatch")
	ErrNonStationaryModel = errors.New("model is not stationary")
	ErrNotConverged       = errors.New("optimizer did not converge")
)

// Model is an ARMA(p, q) specification: AR holds the autoregressive
// coefficients phi(1..p), MA the moving-average coefficients
// theta(1..q). The zero value is white noise. A Model is a plain value;
// it round-trips through the fitter and the covariance engine without
// any encoding.
type Model struct {
	AR []float64
	MA []float64
}

// NewAR returns a pure autoregressive model with the given coefficients.
func NewAR(coef []float64) Model {
	return Model{AR: coef}
}

func (m Model) P() int { return len(m.AR) }
func (m Model) Q() int { return len(m.MA) }

func (m Model) check() error {
	for _, c := range m.AR {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: non-finite AR coefficient %g", ErrShapeMismatch, c)
		}
	}
	for _, c := range m.MA {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: non-finite MA coefficient %g", ErrShapeMismatch, c)
		}
	}
	return nil
}
