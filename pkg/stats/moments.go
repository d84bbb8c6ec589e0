package stats

import "math"

func Mean(xs []float64) float64 {
	var sum float64
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}

// StdDev is the population standard deviation (mean subtracted,
// normalized by N).
func StdDev(xs []float64) float64 {
	mean := Mean(xs)
	var sum float64
	for _, v := range xs {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}
