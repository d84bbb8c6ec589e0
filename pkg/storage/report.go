package storage

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wavegrid/searev/pkg/stats"
)

// Report compares the grid power statistics of a dispatch against the
// raw production: standard deviation and the mean quadratic penalty
// (P_grid/PowerMax)^2.
type Report struct {
	RunID uuid.UUID
	Trace string

	StdNoStorage float64
	MSENoStorage float64
	Std          float64
	MSE          float64
}

// Evaluate scores a dispatch result against the produced power it
// smoothed.
func Evaluate(prod []float64, res *Result, cfg Configuration) Report {
	return Report{
		StdNoStorage: stats.StdDev(prod),
		MSENoStorage: meanPenalty(prod, cfg.PowerMax),
		Std:          stats.StdDev(res.GridPower),
		MSE:          meanPenalty(res.GridPower, cfg.PowerMax),
	}
}

func meanPenalty(grid []float64, powerMax float64) float64 {
	var sum float64
	for _, p := range grid {
		r := p / powerMax
		sum += r * r
	}
	return sum / float64(len(grid))
}

func (r Report) Print(logger *zap.Logger) {
	logger.Info("storage smoothing report",
		zap.String("run_id", r.RunID.String()),
		zap.String("trace", r.Trace),
		zap.Float64("grid_std_no_storage_mw", r.StdNoStorage),
		zap.Float64("grid_std_mw", r.Std),
		zap.Float64("penalty_no_storage", r.MSENoStorage),
		zap.Float64("penalty", r.MSE),
	)
}
