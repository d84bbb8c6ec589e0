package main

const (
	TraceFile = "data/Em_1.txt"
	OutputDir = "data_output"

	// AR order of the speed model.
	FitOrder = 2
	// Lag range of the ACF fit; at dt = 0.1 s this covers 15 s.
	ACFFitLags = 150
	// Horizon count of the multi-step prediction-error score.
	PredictionLags = 200
	// Length of the forecast and simulated trajectories.
	TrajectoryLags = 1000

	// Time constant of the linear storage law [s].
	StorageTau = 60.0
	// Usable storage capacity [MJ].
	StorageCapacity = 10.0

	Seed = 1
)
