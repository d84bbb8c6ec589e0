package searev

import (
	"errors"
	"fmt"
)

var ErrColumnMismatch = errors.New("trace columns differ in length")

// Dataset is one SEAREV simulation trace: five equal-length columns
// sampled at a fixed interval. Acceleration and power are derived, not
// stored. Immutable once built.
type Dataset struct {
	Time      []float64 // [s], regenerated as i*dt
	Elevation []float64 // wave elevation [m]
	Angle     []float64 // pendulum angle [rad]
	Speed     []float64 // angular speed [rad/s]
	Torque    []float64 // PTO torque [N.m]
}

// NewDataset assembles a trace from its raw columns. The recorded time
// column is discarded and regenerated as i*dt: the raw files carry
// irregularities in their time stamps.
func NewDataset(timeCol, elev, angle, speed, torque []float64, dt float64) (*Dataset, error) {
	n := len(timeCol)
	for name, col := range map[string][]float64{
		"elevation": elev, "angle": angle, "speed": speed, "torque": torque,
	} {
		if len(col) != n {
			return nil, fmt.Errorf("%w: %s has %d samples, time has %d", ErrColumnMismatch, name, len(col), n)
		}
	}

	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) * dt
	}
	return &Dataset{Time: t, Elevation: elev, Angle: angle, Speed: speed, Torque: torque}, nil
}

func (d *Dataset) Len() int { return len(d.Speed) }

// Accel derives the angular acceleration [rad/s^2] as the backward
// finite difference of speed over dt, with accel[0] = 0 since there is
// no prior sample.
func (d *Dataset) Accel(dt float64) []float64 {
	accel := make([]float64, len(d.Speed))
	for i := 1; i < len(accel); i++ {
		accel[i] = (d.Speed[i] - d.Speed[i-1]) / dt
	}
	return accel
}

// Power is the produced power record in MW.
func (d *Dataset) Power() []float64 {
	return PowerSeries(d.Speed, d.Torque)
}
