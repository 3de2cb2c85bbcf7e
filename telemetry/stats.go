package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Sampled at window end
	Particles     int     `csv:"particles"`
	CentralMass   float64 `csv:"central_mass"`
	CentralRadius float64 `csv:"central_radius"`
	GravityLevel  float64 `csv:"gravity_level"`

	// Events during window
	Spawns          int     `csv:"spawns"`
	SpawnRejects    int     `csv:"spawn_rejects"`
	Spawned         int     `csv:"spawned"`
	Absorbed        int     `csv:"absorbed"`
	AbsorbedMass    float64 `csv:"absorbed_mass"`
	MassPerSec      float64 `csv:"mass_per_sec"`
	Merges          int     `csv:"merges"`
	Purchases       int     `csv:"purchases"`
	PurchaseDenials int     `csv:"purchase_denials"`
	MassSpent       float64 `csv:"mass_spent"`

	// Particle mass distribution (sampled at window end)
	ParticleMassMean float64 `csv:"particle_mass_mean"`
	ParticleMassP50  float64 `csv:"particle_mass_p50"`
	ParticleMassP90  float64 `csv:"particle_mass_p90"`
}

// Percentile returns the empirical p-th quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = max(0, min(p, 1))
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeMassStats calculates mean and percentiles of particle masses.
func ComputeMassStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	// Sort a copy for quantiles
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// MassSpread returns the largest mass and the standard deviation of masses.
func MassSpread(values []float64) (largest, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	largest = floats.Max(values)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}
	return largest, std
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.Particles),
		slog.Float64("central_mass", s.CentralMass),
		slog.Float64("central_radius", s.CentralRadius),
		slog.Float64("gravity_level", s.GravityLevel),
		slog.Int("spawns", s.Spawns),
		slog.Int("spawn_rejects", s.SpawnRejects),
		slog.Int("spawned", s.Spawned),
		slog.Int("absorbed", s.Absorbed),
		slog.Float64("absorbed_mass", s.AbsorbedMass),
		slog.Float64("mass_per_sec", s.MassPerSec),
		slog.Int("merges", s.Merges),
		slog.Int("purchases", s.Purchases),
		slog.Int("purchase_denials", s.PurchaseDenials),
		slog.Float64("mass_spent", s.MassSpent),
		slog.Float64("particle_mass_mean", s.ParticleMassMean),
		slog.Float64("particle_mass_p50", s.ParticleMassP50),
		slog.Float64("particle_mass_p90", s.ParticleMassP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"particles", s.Particles,
		"central_mass", s.CentralMass,
		"gravity_level", s.GravityLevel,
		"spawned", s.Spawned,
		"spawn_rejects", s.SpawnRejects,
		"absorbed", s.Absorbed,
		"absorbed_mass", s.AbsorbedMass,
		"mass_per_sec", s.MassPerSec,
		"merges", s.Merges,
		"purchases", s.Purchases,
		"purchase_denials", s.PurchaseDenials,
	)
}
