package main

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/wavegrid/searev/pkg/data/csvout"
	"github.com/wavegrid/searev/pkg/data/text"
	"github.com/wavegrid/searev/pkg/models/arma"
	"github.com/wavegrid/searev/pkg/searev"
	"github.com/wavegrid/searev/pkg/statespace"
	"github.com/wavegrid/searev/pkg/storage"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	runID := uuid.Must(uuid.NewV7())
	logger.Info("searevfit", zap.String("run_id", runID.String()), zap.String("trace", TraceFile))
	defer logger.Info("done")

	cfg := searev.DefaultConfig()
	rng := rand.New(rand.NewSource(Seed))

	ds, err := text.Load(TraceFile, cfg.Dt)
	if err != nil {
		logger.Fatal("error loading trace", zap.Error(err))
	}
	speed := ds.Speed
	accel := ds.Accel(cfg.Dt)
	power := ds.Power()
	logger.Info("trace loaded", zap.Int("samples", ds.Len()), zap.Float64("dt_s", cfg.Dt))

	// Conditional-MLE baseline fit.
	cmle, err := arma.FitARCMLE(speed, FitOrder)
	if err != nil {
		logger.Fatal("error fitting cmle model", zap.Error(err))
	}
	logger.Info("speed AR(2) model from cmle",
		zap.Float64s("ar_coef", cmle.Coef),
		zap.Float64("innovation_sd", math.Sqrt(cmle.InnovationVariance)))

	// ACF least-squares fit.
	fit, err := arma.FitARByACF(speed, FitOrder, ACFFitLags)
	if err != nil {
		if !errors.Is(err, arma.ErrNotConverged) {
			logger.Fatal("error fitting acf model", zap.Error(err))
		}
		logger.Warn("acf fit did not converge, keeping best estimate", zap.Error(err))
	}
	logger.Info("speed AR(2) model from acf fit",
		zap.Float64("fit_window_s", ACFFitLags*cfg.Dt),
		zap.Float64s("ar_coef", fit.Coef),
		zap.Float64("innovation_sd", math.Sqrt(fit.InnovationVariance)))

	// Simulated speed and power series from the fitted scalar model.
	speedSim := arma.Simulate(fit.Model(), ds.Len(), fit.InnovationVariance, rng)
	powerSim := searev.SimulatedPower(speedSim, searev.NewTorqueLaw(cfg))

	// State-space model on (speed, accel).
	transition, err := statespace.FromAR2(fit.Coef, cfg.Dt)
	if err != nil {
		logger.Fatal("error building state-space model", zap.Error(err))
	}
	states := statespace.States(speed, cfg.Dt)
	logger.Info("multi-step prediction score",
		zap.Int("horizons", PredictionLags),
		zap.Float64("mse", statespace.PredictionMSE(transition, states, PredictionLags)))

	if diag, err := statespace.ResidualCovariance(transition, states); err == nil {
		logger.Info("empirical innovation covariance (diagnostic)",
			zap.Float64("speed_var", diag.At(0, 0)),
			zap.Float64("cross", diag.At(0, 1)),
			zap.Float64("accel_var", diag.At(1, 1)))
	}
	sigma := statespace.StructuralCovariance(fit.InnovationVariance, cfg.Dt)

	// Forecast and stochastic continuation from the last observed state.
	n := ds.Len()
	x0 := []float64{speed[n-1], accel[n-1]}
	pred, err := statespace.Predict(transition, x0, TrajectoryLags)
	if err != nil {
		logger.Fatal("error predicting trajectory", zap.Error(err))
	}
	traj, err := statespace.Simulate(transition, sigma, x0, TrajectoryLags, rng)
	if err != nil {
		logger.Fatal("error simulating trajectory", zap.Error(err))
	}

	// Storage smoothing on the recorded production.
	storageCfg := storage.Configuration{
		ERated:        StorageCapacity,
		PowerMax:      cfg.PowerMax / 1e6,
		Dt:            cfg.Dt,
		EnforceBounds: true,
	}
	dispatch, err := storage.Simulate(speed, accel, power, storage.LinearLaw(StorageTau), storageCfg)
	if err != nil {
		logger.Fatal("error simulating storage dispatch", zap.Error(err))
	}
	report := storage.Evaluate(power, dispatch, storageCfg)
	report.RunID = runID
	report.Trace = TraceFile
	report.Print(logger)

	if err := os.MkdirAll(OutputDir, 0o755); err != nil {
		logger.Fatal("error creating output directory", zap.Error(err))
	}
	writeOutputs(logger, pred, traj, speedSim, powerSim, dispatch)
}

func writeOutputs(logger *zap.Logger, pred, traj *mat.Dense, speedSim, powerSim []float64, dispatch *storage.Result) {
	outputs := []struct {
		name   string
		labels []string
		series [][]float64
	}{
		{
			name:   "trajectories.csv",
			labels: []string{"speed_pred", "accel_pred", "speed_sim", "accel_sim"},
			series: [][]float64{
				mat.Row(nil, 0, pred), mat.Row(nil, 1, pred),
				mat.Row(nil, 0, traj), mat.Row(nil, 1, traj),
			},
		},
		{
			name:   "series_sim.csv",
			labels: []string{"speed_sim", "power_sim"},
			series: [][]float64{speedSim, powerSim},
		},
		{
			name:   "lin_smooth.csv",
			labels: []string{"P_sto", "P_grid", "E_sto"},
			series: [][]float64{dispatch.StoragePower, dispatch.GridPower, dispatch.Energy[:len(dispatch.StoragePower)]},
		},
	}

	for _, out := range outputs {
		path := filepath.Join(OutputDir, out.name)
		if err := csvout.WriteFile(path, out.labels, out.series...); err != nil {
			logger.Fatal("error writing output", zap.String("path", path), zap.Error(err))
		}
		logger.Info("output written", zap.String("path", path))
	}
}
