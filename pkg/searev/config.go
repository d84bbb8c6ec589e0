// Package searev holds the physical model of the SEAREV wave-energy
// converter: the power take-off configuration, the torque command law
// and the simulation trace dataset.
package searev

// Config collects the physical constants of the converter and its
// simulation traces. All fitting and simulation entry points receive
// it explicitly; there is no package-level state.
type Config struct {
	// Damping is the PTO damping coefficient in N/(rad/s). The torque
	// demand is Damping * speed before saturation.
	Damping float64
	// TorqueMax is the torque saturation in N.m.
	TorqueMax float64
	// PowerMax is the power saturation in W; above it the torque is
	// cut back to PowerMax/speed.
	PowerMax float64
	// Dt is the sample interval of the simulation traces in seconds.
	Dt float64
}

// DefaultConfig matches the reference SEAREV simulation setup.
func DefaultConfig() Config {
	return Config{
		Damping:   4e6,
		TorqueMax: 2e6,
		PowerMax:  1.1e6,
		Dt:        0.1,
	}
}
