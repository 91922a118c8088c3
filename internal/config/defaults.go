package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
// It mirrors defaults/platformer.yaml.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:          1800,
			MaxSpeed:         420,
			Acceleration:     3600,
			Friction:         0.8,
			JumpImpulse:      -780,
			SpringMultiplier: 1.6,
			StompBounce:      -400,
			MaxFrameDelta:    0.0333333,
			LandingEpsilon:   10,
			EdgeInset:        5,
			PitMargin:        100,
			AxisDeadzone:     0.1,
			AxisThreshold:    0.2,
		},
		Player: PlayerConfig{
			Width:          40,
			Height:         54,
			StartX:         100,
			StartOffsetY:   100,
			RespawnLift:    20,
			Invulnerable:   2.0,
			CoinPickupDist: 40,
		},
		Enemies: EnemyConfig{
			Width:          40,
			Height:         40,
			PatrolSpeed:    80,
			FlierSpeed:     100,
			FlierAmplitude: 12,
			FlierFrequency: 5,
		},
		Camera: CameraConfig{
			Offset:         300,
			Decay:          0.0018,
			ViewportWidth:  900,
			ViewportHeight: 600,
		},
		Generator: GeneratorConfig{
			Levels:     12,
			BaseWidth:  3000,
			WidthStep:  400,
			GroundY:    480,
			GroundH:    120,
			TailMargin: 400,
			FinishW:    150,
			FinishH:    200,

			HoleStart:    600,
			HoleSpacing:  600,
			HoleShift:    50,
			HoleMinWidth: 120,
			HoleMaxWidth: 170,

			SegmentStart:     400,
			Segment:          300,
			PlatformMinW:     140,
			PlatformMaxW:     200,
			PlatformH:        20,
			PlatformMinLift:  100,
			PlatformLiftVar:  120,
			MovingRangeMin:   60,
			MovingRangeMax:   140,
			MovingSpeedMin:   1.0,
			MovingSpeedMax:   2.0,
			SpringW:          40,
			SpringH:          20,
			SpikeH:           15,
			SpikeInset:       40,
			GroundSpikeW:     60,
			GroundCoins:      10,
			CoinLift:         30,
			SafeStart:        400,
			HoleClearance:    80,
			MinPatrolSegment: 300,
		},
		Scoring: ScoringConfig{
			Coin:               10,
			Stomp:              20,
			WrongAnswerPenalty: 50,
		},
		Quiz: QuizConfig{
			TimeLimit:      20,
			MaxOperand:     9,
			OptionCount:    4,
			OptionSpread:   3,
			AddProbability: 0.6,
		},
		Difficulty: DifficultyConfig{
			InitialLevel: 0.0,
			MaxAt:        11,
			Scaling: ScalingConfig{
				PlatformChance:    [2]float64{0.7, 0.85},
				MovingChance:      [2]float64{0.15, 0.35},
				SpringChance:      [2]float64{0.05, 0.2},
				EnemyChance:       [2]float64{0.4, 0.6},
				FlierChance:       [2]float64{0.3, 0.5},
				SpikeChance:       [2]float64{0.3, 0.5},
				CoinChance:        [2]float64{0.5, 0.5},
				GroundEnemyEvery:  3,
				GroundSpikeEvery:  4,
				HoleEvery:         2,
				BaseHoles:         3,
				SpikesFromLevel:   2,
				FliersFromLevel:   3,
				MovingFromLevel:   1,
				GroundHazardsFrom: 3,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
