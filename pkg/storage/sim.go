// Package storage simulates an energy-storage dispatch smoothing the
// produced power of the converter, and scores the resulting grid power.
package storage

import (
	"errors"
	"fmt"
)

var ErrSeriesMismatch = errors.New("input series differ in length")

// Law decides the storage power for the current step: energy is the
// stored energy [MJ], speed [rad/s] and accel [rad/s^2] the converter
// state, prod the produced power [MW]. Positive return values charge
// the storage; the grid receives prod minus the returned value.
type Law func(energy, speed, accel, prod float64) float64

// Configuration sizes the storage and the penalty.
type Configuration struct {
	// ERated is the usable storage capacity [MJ].
	ERated float64
	// PowerMax is the grid power rating [MW] normalizing the quadratic
	// penalty.
	PowerMax float64
	// Dt is the sample interval [s].
	Dt float64
	// EnforceBounds saturates the dispatch so the stored energy stays
	// inside [0, ERated]. Disable only for laws that guarantee the
	// bounds themselves.
	EnforceBounds bool
}

// LinearLaw keeps the grid power proportional to the stored energy,
// with time constant tau [s]: the storage absorbs prod - energy/tau.
// Larger tau smooths harder at the cost of more stored energy swing.
func LinearLaw(tau float64) Law {
	return func(energy, speed, accel, prod float64) float64 {
		return prod - energy/tau
	}
}

// Result holds one dispatch simulation. StoragePower and GridPower
// have one entry per input sample; Energy has one more, carrying the
// state after the final step.
type Result struct {
	StoragePower []float64 // [MW]
	GridPower    []float64 // [MW]
	Energy       []float64 // [MJ]
}

// Simulate runs the dispatch law over a produced-power record, starting
// from a half-full storage.
func Simulate(speed, accel, prod []float64, law Law, cfg Configuration) (*Result, error) {
	n := len(prod)
	if len(speed) != n || len(accel) != n {
		return nil, fmt.Errorf("%w: speed %d, accel %d, power %d", ErrSeriesMismatch, len(speed), len(accel), n)
	}

	res := &Result{
		StoragePower: make([]float64, n),
		GridPower:    make([]float64, n),
		Energy:       make([]float64, n+1),
	}

	energy := cfg.ERated / 2
	for k := 0; k < n; k++ {
		res.Energy[k] = energy

		pSto := law(energy, speed[k], accel[k], prod[k])
		if cfg.EnforceBounds {
			if next := energy + pSto*cfg.Dt; next > cfg.ERated {
				pSto = (cfg.ERated - energy) / cfg.Dt
			} else if next < 0 {
				pSto = -energy / cfg.Dt
			}
		}

		res.StoragePower[k] = pSto
		res.GridPower[k] = prod[k] - pSto
		energy += pSto * cfg.Dt
	}
	res.Energy[n] = energy
	return res, nil
}
