package config

import (
	_ "embed"
)

//go:embed defaults/birdrush.yaml
var defaultGameYAML []byte

// Default returns the default game configuration.
func Default() GameConfig {
	return GameConfig{
		Canvas: CanvasConfig{
			Width:        400,
			Height:       600,
			GroundHeight: 80,
		},
		Physics: PhysicsConfig{
			Gravity:      0.5,
			FlapImpulse:  -8.0,
			MaxFallSpeed: 10.0,
			ScrollSpeed:  2.0,
		},
		Bird: BirdConfig{
			X:           80,
			Width:       34,
			Height:      24,
			HitboxInset: 4,
		},
		Pipes: PipesConfig{
			Width:         60,
			Gap:           150,
			MinHeight:     50,
			SpawnInterval: 90,
			DespawnMargin: 50,
		},
		PowerUps: PowerUpsConfig{
			Chance:          0.35,
			DurationMS:      5000,
			SlowFactor:      0.5,
			ScoreMultiplier: 2,
			Size:            24,
		},
		Survival: SurvivalConfig{
			SpawnInterval:   120,
			SpawnJitter:     60,
			ScoreIntervalMS: 1000,
			PortalBonus:     3,
			Spike:           SpikeConfig{Width: 40, Height: 60},
			Laser: LaserConfig{
				Width:     90,
				Height:    12,
				OnFrames:  60,
				OffFrames: 45,
				BandTop:   60,
				BandFloor: 120,
			},
			Portal: PortalConfig{
				Width:     40,
				Height:    60,
				BandTop:   60,
				BandFloor: 150,
			},
			Meteor: MeteorConfig{
				Size:       30,
				FallSpeed:  4.0,
				DriftSpeed: 1.5,
			},
			Barrier: BarrierConfig{
				Width:     30,
				GapHeight: 140,
				GapSpeed:  2.0,
				Margin:    40,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				GapReduction:      40,
				IntervalReduction: 40,
			},
		},
	}
}
