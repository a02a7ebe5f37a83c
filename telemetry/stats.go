package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	Population int `csv:"population"`
	Gen0       int `csv:"gen0"`
	Gen1       int `csv:"gen1"`
	Gen2       int `csv:"gen2"`
	Gen3Plus   int `csv:"gen3_plus"`
	DeepestGen int `csv:"deepest_gen"`

	// Events during window
	Spawned       int     `csv:"spawned"`
	Decays        int     `csv:"decays"`
	Daughters     int     `csv:"daughters"`
	Expired       int     `csv:"expired"`
	DecaysPerSec  float64 `csv:"decays_per_sec"`
	MeanDaughters float64 `csv:"mean_daughters"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Remaining-life fraction across the arena
	MeanLifeFrac float64 `csv:"life_frac_mean"`
}

// ComputeSpeedStats calculates mean and percentiles from speed samples.
// Percentiles use the empirical quantile, so each reported value is an
// actual sample.
func ComputeSpeedStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Int("gen0", s.Gen0),
		slog.Int("gen1", s.Gen1),
		slog.Int("gen2", s.Gen2),
		slog.Int("gen3_plus", s.Gen3Plus),
		slog.Int("deepest_gen", s.DeepestGen),
		slog.Int("spawned", s.Spawned),
		slog.Int("decays", s.Decays),
		slog.Int("daughters", s.Daughters),
		slog.Int("expired", s.Expired),
		slog.Float64("decays_per_sec", s.DecaysPerSec),
		slog.Float64("mean_daughters", s.MeanDaughters),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("life_frac_mean", s.MeanLifeFrac),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"population", s.Population,
		"gen0", s.Gen0,
		"gen1", s.Gen1,
		"gen2", s.Gen2,
		"gen3_plus", s.Gen3Plus,
		"deepest_gen", s.DeepestGen,
		"spawned", s.Spawned,
		"decays", s.Decays,
		"daughters", s.Daughters,
		"expired", s.Expired,
		"decays_per_sec", s.DecaysPerSec,
		"mean_daughters", s.MeanDaughters,
		"speed_mean", s.SpeedMean,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"life_frac_mean", s.MeanLifeFrac,
	)
}
