package statespace

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testTransition(t *testing.T) *mat.Dense {
	t.Helper()
	tr, err := FromAR2([]float64{0.9, -0.05}, 0.1)
	require.NoError(t, err)
	return tr
}

func TestPredict_zeroHorizon(t *testing.T) {
	tr := testTransition(t)

	traj, err := Predict(tr, []float64{1.5, -0.3}, 0)
	require.NoError(t, err)

	r, n := traj.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1.5, traj.At(0, 0))
	assert.Equal(t, -0.3, traj.At(1, 0))
}

func TestPredict_recursion(t *testing.T) {
	tr := testTransition(t)
	x0 := []float64{1, 0.5}

	traj, err := Predict(tr, x0, 5)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		for r := 0; r < 2; r++ {
			want := tr.At(r, 0)*traj.At(0, i-1) + tr.At(r, 1)*traj.At(1, i-1)
			assert.Equal(t, want, traj.At(r, i))
		}
	}
}

func TestSimulate_zeroCovarianceMatchesPredict(t *testing.T) {
	tr := testTransition(t)
	x0 := []float64{1, 0.5}

	pred, err := Predict(tr, x0, 20)
	require.NoError(t, err)
	sim, err := Simulate(tr, mat.NewSymDense(2, nil), x0, 20, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.True(t, mat.Equal(pred, sim))
}

func TestSimulate_singularStructuralCovariance(t *testing.T) {
	tr := testTransition(t)
	const dt = 0.1
	sigma := StructuralCovariance(0.04, dt)
	x0 := []float64{1, 0.5}

	traj, err := Simulate(tr, sigma, x0, 200, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	// The structural covariance is rank one with the acceleration
	// error a 1/dt multiple of the speed error; every injected
	// innovation must lie on that ray.
	for i := 1; i <= 200; i++ {
		e0 := traj.At(0, i) - (tr.At(0, 0)*traj.At(0, i-1) + tr.At(0, 1)*traj.At(1, i-1))
		e1 := traj.At(1, i) - (tr.At(1, 0)*traj.At(0, i-1) + tr.At(1, 1)*traj.At(1, i-1))
		assert.InDelta(t, e0/dt, e1, 1e-9)
	}
}

func TestSimulate_reproducible(t *testing.T) {
	tr := testTransition(t)
	sigma := StructuralCovariance(0.04, 0.1)
	x0 := []float64{1, 0.5}

	a, err := Simulate(tr, sigma, x0, 50, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	b, err := Simulate(tr, sigma, x0, 50, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.True(t, mat.Equal(a, b))
}

func TestSimulate_rejectsIndefiniteCovariance(t *testing.T) {
	tr := testTransition(t)
	sigma := mat.NewSymDense(2, []float64{1, 2, 2, 1}) // eigenvalues 3 and -1

	_, err := Simulate(tr, sigma, []float64{1, 0}, 10, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNotPositiveSemiDefinite)
}

func TestPredict_badInitialState(t *testing.T) {
	tr := testTransition(t)

	_, err := Predict(tr, []float64{1}, 5)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Predict(tr, []float64{1, 2}, -1)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPredictionMSE_exactModelIsZero(t *testing.T) {
	tr := testTransition(t)

	n := 80
	states := mat.NewDense(2, n, nil)
	states.Set(0, 0, 1)
	states.Set(1, 0, 0.5)
	for i := 1; i < n; i++ {
		for r := 0; r < 2; r++ {
			states.Set(r, i, tr.At(r, 0)*states.At(0, i-1)+tr.At(r, 1)*states.At(1, i-1))
		}
	}

	assert.InDelta(t, 0, PredictionMSE(tr, states, 10), 1e-18)
}

func TestPredictionMSE_penalizesWrongModel(t *testing.T) {
	tr := testTransition(t)

	states := States([]float64{1, 0.9, 1.1, 0.8, 1.2, 0.7, 1.3}, 0.1)
	wrong := mat.NewDense(2, 2, []float64{2, 0, 0, 2})

	assert.Greater(t, PredictionMSE(wrong, states, 3), PredictionMSE(tr, states, 3))
}
