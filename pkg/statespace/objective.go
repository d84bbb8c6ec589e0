package statespace

import "gonum.org/v1/gonum/mat"

// PredictionMSE scores a transition matrix by its multi-step forecast
// error on an observed 2xN state history: for each horizon i in
// 1..maxHorizon, the squared error between the observed states and the
// i-step propagation from every valid starting column is summed,
// normalized by the number of comparable columns, and averaged over
// horizons.
func PredictionMSE(t mat.Matrix, states mat.Matrix, maxHorizon int) float64 {
	d, n := states.Dims()
	if maxHorizon <= 0 || maxHorizon >= n {
		return 0
	}

	prev := mat.DenseCopyOf(states)
	next := mat.NewDense(d, n, nil)

	var total float64
	for i := 1; i <= maxHorizon; i++ {
		next.Mul(t, prev)
		prev, next = next, prev

		var sum float64
		for c := 0; c+i < n; c++ {
			for r := 0; r < d; r++ {
				e := states.At(r, c+i) - prev.At(r, c)
				sum += e * e
			}
		}
		total += sum / float64(n-i) / float64(maxHorizon)
	}
	return total
}
