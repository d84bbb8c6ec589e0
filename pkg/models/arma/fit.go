package arma

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/wavegrid/searev/pkg/stats"
)

const (
	fitTolerance     = 1e-6
	fitMaxIterations = 2000
)

// ARFit is the outcome of an AR(p) estimation: the coefficient vector,
// the innovation variance, and whether the optimizer met its
// convergence criterion. A non-converged fit still carries the best
// estimate found.
type ARFit struct {
	Coef               []float64
	InnovationVariance float64
	Converged          bool
}

// Model returns the fitted process as an ARMA specification.
func (f ARFit) Model() Model { return NewAR(f.Coef) }

// FitARByACF estimates an AR(p) model for x by least-squares matching
// of autocorrelation functions: starting from the one-step OLS seed,
// the mean squared difference between the model's analytic
// autocorrelation and the empirical autocorrelation of x over lags
// 0..maxLag is minimized with a Nelder-Mead simplex (tolerance 1e-6 on
// the objective). A negative maxLag skips the optimization and returns
// the seed directly.
//
// The innovation variance is rescaled afterwards so that the fitted
// process reproduces the empirical lag-0 variance of x exactly.
//
// The objective surface has multiple local optima, so the result is
// sensitive to the seed and not guaranteed globally optimal. When the
// iteration budget runs out the best estimate is returned together
// with ErrNotConverged and Converged set to false.
func FitARByACF(x []float64, p, maxLag int) (ARFit, error) {
	coef, err := olsSeed(x, p)
	if err != nil {
		return ARFit{}, err
	}

	converged := true
	var fitErr error
	if maxLag >= 0 && p > 0 {
		empACF, err := stats.Autocorrelation(x, maxLag)
		if err != nil {
			return ARFit{}, err
		}
		objective := func(c []float64) float64 {
			modelACF, err := Autocorrelation(Model{AR: c}, maxLag)
			if err != nil {
				// Non-stationary candidate; steer the simplex away.
				return math.Inf(1)
			}
			var sse float64
			for i := range modelACF {
				d := modelACF[i] - empACF[i]
				sse += d * d
			}
			return sse / float64(len(modelACF))
		}

		problem := optimize.Problem{Func: objective}
		settings := &optimize.Settings{
			MajorIterations: fitMaxIterations,
			Converger: &optimize.FunctionConverge{
				Absolute:   fitTolerance,
				Iterations: 20,
			},
		}
		result, err := optimize.Minimize(problem, append([]float64(nil), coef...), settings, &optimize.NelderMead{})
		if result != nil && len(result.X) == p {
			coef = result.X
		}
		if err != nil {
			converged = false
			fitErr = fmt.Errorf("%w: %v", ErrNotConverged, err)
		} else if result.Status == optimize.IterationLimit {
			converged = false
			fitErr = fmt.Errorf("%w: iteration budget of %d exhausted", ErrNotConverged, fitMaxIterations)
		}
	}

	resVar, err := rescaleVariance(x, coef)
	if err != nil {
		return ARFit{}, err
	}
	return ARFit{Coef: coef, InnovationVariance: resVar, Converged: converged}, fitErr
}

// FitARCMLE estimates an AR(p) model with no intercept by conditional
// maximum likelihood: under Gaussian innovations this is the
// least-squares regression of x[t] on its p predecessors over
// t = p..N-1, with innovation variance RSS/(N-p). Used as a comparison
// baseline for FitARByACF.
func FitARCMLE(x []float64, p int) (ARFit, error) {
	n := len(x)
	if p < 0 || n < 2*p || n <= p {
		return ARFit{}, fmt.Errorf("%w: %d samples cannot support an AR(%d) regression", ErrShapeMismatch, n, p)
	}
	if p == 0 {
		acov0, err := stats.Autocovariance(x, 0)
		if err != nil {
			return ARFit{}, err
		}
		return ARFit{Coef: nil, InnovationVariance: acov0[0], Converged: true}, nil
	}

	rows := n - p
	design := mat.NewDense(rows, p, nil)
	target := mat.NewVecDense(rows, nil)
	for t := p; t < n; t++ {
		for i := 0; i < p; i++ {
			design.Set(t-p, i, x[t-1-i])
		}
		target.SetVec(t-p, x[t])
	}

	var beta mat.VecDense
	if err := beta.SolveVec(design, target); err != nil {
		return ARFit{}, fmt.Errorf("%w: singular regression: %v", ErrNonStationaryModel, err)
	}

	coef := make([]float64, p)
	var rss float64
	for t := p; t < n; t++ {
		pred := 0.0
		for i := 0; i < p; i++ {
			pred += beta.AtVec(i) * x[t-1-i]
		}
		r := x[t] - pred
		rss += r * r
	}
	for i := range coef {
		coef[i] = beta.AtVec(i)
	}
	return ARFit{Coef: coef, InnovationVariance: rss / float64(rows), Converged: true}, nil
}

// olsSeed is the one-step least-squares predictor used to seed the ACF
// fit: column i of the regressor holds x lagged by i+1 samples and the
// target is the leading segment of x.
func olsSeed(x []float64, p int) ([]float64, error) {
	n := len(x)
	if p < 0 || (p > 0 && n < 2*p) {
		return nil, fmt.Errorf("%w: %d samples cannot support an AR(%d) seed", ErrShapeMismatch, n, p)
	}
	if p == 0 {
		return nil, nil
	}

	rows := n - p
	design := mat.NewDense(rows, p, nil)
	for i := 0; i < p; i++ {
		for t := 0; t < rows; t++ {
			design.Set(t, i, x[i+1+t])
		}
	}
	target := mat.NewVecDense(rows, append([]float64(nil), x[:rows]...))

	var beta mat.VecDense
	if err := beta.SolveVec(design, target); err != nil {
		return nil, fmt.Errorf("%w: singular seed regression: %v", ErrNonStationaryModel, err)
	}
	coef := make([]float64, p)
	for i := range coef {
		coef[i] = beta.AtVec(i)
	}
	return coef, nil
}

// rescaleVariance picks the innovation variance that makes the model's
// lag-0 variance match the empirical lag-0 variance of x.
func rescaleVariance(x, coef []float64) (float64, error) {
	acov0, err := stats.Autocovariance(x, 0)
	if err != nil {
		return 0, err
	}
	modelVar, err := Autocovariance(NewAR(coef), 0, 1)
	if err != nil {
		return 0, err
	}
	if modelVar[0] <= 0 {
		return 0, fmt.Errorf("%w: unit-innovation variance %g", stats.ErrDegenerateVariance, modelVar[0])
	}
	return acov0[0] / modelVar[0], nil
}
