// Package config provides YAML-based game configuration loading and
// difficulty management for birdrush.
package config

// GameConfig contains all tuning for the simulation. Positions and sizes
// are in virtual canvas units; the renderer scales them to the terminal.
type GameConfig struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Bird       BirdConfig       `yaml:"bird"`
	Pipes      PipesConfig      `yaml:"pipes"`
	PowerUps   PowerUpsConfig   `yaml:"powerups"`
	Survival   SurvivalConfig   `yaml:"survival"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CanvasConfig defines the virtual playfield dimensions.
type CanvasConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// GroundY returns the y-coordinate of the top of the ground strip.
func (c CanvasConfig) GroundY() float64 {
	return c.Height - c.GroundHeight
}

// PhysicsConfig defines bird and scroll physics.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	FlapImpulse  float64 `yaml:"flap_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	ScrollSpeed  float64 `yaml:"scroll_speed"`
}

// BirdConfig defines the player hitbox.
type BirdConfig struct {
	X           float64 `yaml:"x"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	HitboxInset float64 `yaml:"hitbox_inset"`
}

// PipesConfig defines pipe geometry and spawn cadence.
type PipesConfig struct {
	Width         float64 `yaml:"width"`
	Gap           float64 `yaml:"gap"`
	MinHeight     float64 `yaml:"min_height"`
	SpawnInterval int     `yaml:"spawn_interval"` // frames between spawns
	DespawnMargin float64 `yaml:"despawn_margin"` // distance past the left edge
}

// PowerUpsConfig defines pickup behavior for powerups mode.
type PowerUpsConfig struct {
	Chance          float64 `yaml:"chance"`           // probability a pipe carries a pickup
	DurationMS      int     `yaml:"duration_ms"`      // slowmo/double lifetime
	SlowFactor      float64 `yaml:"slow_factor"`      // speed modifier while slowmo active
	ScoreMultiplier int     `yaml:"score_multiplier"` // pipe points while double active
	Size            float64 `yaml:"size"`             // pickup hitbox edge length
}

// SurvivalConfig defines obstacle parameters for survival mode.
type SurvivalConfig struct {
	SpawnInterval   int           `yaml:"spawn_interval"`    // base frames between spawns
	SpawnJitter     int           `yaml:"spawn_jitter"`      // +/- frames of random jitter
	ScoreIntervalMS int           `yaml:"score_interval_ms"` // wall-clock ms per survival point
	PortalBonus     int           `yaml:"portal_bonus"`
	Spike           SpikeConfig   `yaml:"spike"`
	Laser           LaserConfig   `yaml:"laser"`
	Portal          PortalConfig  `yaml:"portal"`
	Meteor          MeteorConfig  `yaml:"meteor"`
	Barrier         BarrierConfig `yaml:"barrier"`
}

// SpikeConfig defines ground/ceiling spike geometry.
type SpikeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LaserConfig defines laser beam geometry and duty cycle (in frames).
type LaserConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	OnFrames  int     `yaml:"on_frames"`
	OffFrames int     `yaml:"off_frames"`
	BandTop   float64 `yaml:"band_top"`    // min spawn y
	BandFloor float64 `yaml:"band_floor"`  // clearance kept above the ground
}

// PortalConfig defines portal geometry.
type PortalConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	BandTop   float64 `yaml:"band_top"`
	BandFloor float64 `yaml:"band_floor"`
}

// MeteorConfig defines meteor size and fall motion.
type MeteorConfig struct {
	Size       float64 `yaml:"size"`
	FallSpeed  float64 `yaml:"fall_speed"`  // constant downward velocity
	DriftSpeed float64 `yaml:"drift_speed"` // leftward velocity added to scroll
}

// BarrierConfig defines the oscillating-gap barrier.
type BarrierConfig struct {
	Width     float64 `yaml:"width"`
	GapHeight float64 `yaml:"gap_height"`
	GapSpeed  float64 `yaml:"gap_speed"`
	Margin    float64 `yaml:"margin"` // oscillation clearance from top and ground
}

// DifficultyConfig defines the optional difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // extra scroll speed at max level
	GapReduction      float64 `yaml:"gap_reduction"`      // pipe gap shrink at max level
	IntervalReduction int     `yaml:"interval_reduction"` // survival spawn interval shrink
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}
