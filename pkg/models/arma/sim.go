package arma

import (
	"math"
	"math/rand"
)

// Simulate draws a length-n realization of the process with Gaussian
// innovations of the given variance. The random source is injected so
// runs are reproducible.
func Simulate(m Model, n int, innovVar float64, rng *rand.Rand) []float64 {
	innov := make([]float64, n)
	sd := math.Sqrt(innovVar)
	for i := range innov {
		innov[i] = rng.NormFloat64() * sd
	}
	return SimulateWith(m, innov)
}

// SimulateWith runs the ARMA recursion over an explicit innovation
// sequence, one output sample per innovation. The recursion starts from
// rest: samples and innovations before t=0 are taken as zero.
func SimulateWith(m Model, innov []float64) []float64 {
	out := make([]float64, len(innov))
	for t := range out {
		v := innov[t]
		for j, c := range m.MA {
			if t-1-j >= 0 {
				v += c * innov[t-1-j]
			}
		}
		for j, c := range m.AR {
			if t-1-j >= 0 {
				v += c * out[t-1-j]
			}
		}
		out[t] = v
	}
	return out
}
