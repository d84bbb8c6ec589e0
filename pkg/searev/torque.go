package searev

// TorqueLaw maps angular speed [rad/s] to PTO torque [N.m]. It is kept
// as a plain callable so alternative control strategies can be injected
// when generating power series.
type TorqueLaw func(speed float64) float64

// NewTorqueLaw is the reference PTO strategy: linear damping torque,
// saturated first at TorqueMax and then at PowerMax.
func NewTorqueLaw(cfg Config) TorqueLaw {
	return func(speed float64) float64 {
		tor := speed * cfg.Damping
		if tor > cfg.TorqueMax {
			tor = cfg.TorqueMax
		}
		if tor < -cfg.TorqueMax {
			tor = -cfg.TorqueMax
		}
		if tor*speed > cfg.PowerMax {
			tor = cfg.PowerMax / speed
		}
		return tor
	}
}

// PowerSeries converts recorded speed and torque into produced power
// in MW.
func PowerSeries(speed, torque []float64) []float64 {
	power := make([]float64, len(speed))
	for i := range power {
		power[i] = speed[i] * torque[i] / 1e6
	}
	return power
}

// SimulatedPower applies a torque law to a (typically simulated) speed
// series and returns the produced power in MW.
func SimulatedPower(speed []float64, law TorqueLaw) []float64 {
	power := make([]float64, len(speed))
	for i, s := range speed {
		power[i] = s * law(s) / 1e6
	}
	return power
}
