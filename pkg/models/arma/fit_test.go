package arma

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavegrid/searev/pkg/stats"
)

func testSeries(t *testing.T, coef []float64, n int) []float64 {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	x := Simulate(NewAR(coef), n, 1, rng)
	// Drop the burn-in so the start-from-rest transient does not bias
	// the estimators.
	return x[200:]
}

func TestFitARCMLE(t *testing.T) {
	truth := []float64{0.6, -0.3}
	x := testSeries(t, truth, 4200)

	fit, err := FitARCMLE(x, 2)
	require.NoError(t, err)
	require.Len(t, fit.Coef, 2)
	assert.True(t, fit.Converged)

	assert.InDelta(t, truth[0], fit.Coef[0], 0.06)
	assert.InDelta(t, truth[1], fit.Coef[1], 0.06)
	assert.InDelta(t, 1.0, fit.InnovationVariance, 0.1)
}

func TestFitARCMLE_shortSample(t *testing.T) {
	_, err := FitARCMLE([]float64{1, 2, 3}, 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFitARByACF_seedOnly(t *testing.T) {
	x := testSeries(t, []float64{0.6, -0.3}, 2200)

	// Negative maxLag skips the simplex and returns the OLS seed.
	fit, err := FitARByACF(x, 2, -1)
	require.NoError(t, err)
	require.Len(t, fit.Coef, 2)
	assert.True(t, fit.Converged)
}

func TestFitARByACF_varianceRescale(t *testing.T) {
	x := testSeries(t, []float64{0.6, -0.3}, 2200)

	fit, err := FitARByACF(x, 2, 50)
	require.NoError(t, err)

	// The fitted process must reproduce the empirical lag-0 variance
	// of the data exactly.
	empirical, err := stats.Autocovariance(x, 0)
	require.NoError(t, err)
	model, err := Autocovariance(fit.Model(), 0, fit.InnovationVariance)
	require.NoError(t, err)
	assert.InEpsilon(t, empirical[0], model[0], 1e-9)
}

func TestFitARByACF_doesNotWorsenObjective(t *testing.T) {
	x := testSeries(t, []float64{0.6, -0.3}, 2200)
	const maxLag = 60

	empACF, err := stats.Autocorrelation(x, maxLag)
	require.NoError(t, err)
	objective := func(coef []float64) float64 {
		modelACF, err := Autocorrelation(NewAR(coef), maxLag)
		require.NoError(t, err)
		var sse float64
		for i := range modelACF {
			d := modelACF[i] - empACF[i]
			sse += d * d
		}
		return sse / float64(len(modelACF))
	}

	seed, err := FitARByACF(x, 2, -1)
	require.NoError(t, err)
	fit, err := FitARByACF(x, 2, maxLag)
	require.NoError(t, err)

	assert.LessOrEqual(t, objective(fit.Coef), objective(seed.Coef)+1e-12)
}

func TestFitARByACF_whiteNoiseOrder(t *testing.T) {
	x := testSeries(t, nil, 700)

	fit, err := FitARByACF(x, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, fit.Coef)

	empirical, err := stats.Autocovariance(x, 0)
	require.NoError(t, err)
	assert.InEpsilon(t, empirical[0], fit.InnovationVariance, 1e-12)
}
