package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
// With progression disabled every accessor returns its base value, which
// keeps the default tuning exact.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		if d.cfg.Enabled {
			return d.initialLevel
		}
		return 0
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// ScrollSpeed returns the current scroll speed for the given base speed.
func (d *DifficultyManager) ScrollSpeed(base float64, score, ticks int) float64 {
	if !d.cfg.Enabled {
		return base
	}
	level := d.Level(score, ticks)
	return base * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// PipeGap returns the current pipe gap for the given base gap.
func (d *DifficultyManager) PipeGap(base float64, score, ticks int) float64 {
	if !d.cfg.Enabled {
		return base
	}
	level := d.Level(score, ticks)
	gap := base - level*d.cfg.Scaling.GapReduction
	if gap < base/2 {
		gap = base / 2 // Keep runs survivable at max difficulty
	}
	return gap
}

// SpawnInterval returns the current survival spawn interval in frames.
func (d *DifficultyManager) SpawnInterval(base int, score, ticks int) int {
	if !d.cfg.Enabled {
		return base
	}
	level := d.Level(score, ticks)
	interval := base - int(level*float64(d.cfg.Scaling.IntervalReduction))
	if interval < 30 {
		interval = 30
	}
	return interval
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
