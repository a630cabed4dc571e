package config

import (
	_ "embed"
)

//go:embed defaults/blockbreaker.yaml
var defaultBlockBreakerYAML []byte

// DefaultBlockBreakerConfig returns the built-in Block Breaker configuration.
// It matches defaults/blockbreaker.yaml and is used when the embedded file
// cannot be parsed.
func DefaultBlockBreakerConfig() BlockBreakerConfig {
	return BlockBreakerConfig{
		Grid: GridConfig{
			Width:      30,
			Height:     20,
			CellWidth:  32,
			CellHeight: 32,
		},
		Physics: PhysicsConfig{
			BallSpeedX:     12,
			BallSpeedY:     -18,
			SpinFactor:     9.0,
			PaddleHitWidth: 3.3,
			BlockHitRadius: 2,
		},
		Paddle: PaddleConfig{
			Step:   1.2,
			Margin: 2,
			Width:  5,
			Row:    3,
		},
		Blocks: BlocksConfig{
			SpawnIntervalMS: 1000,
			GraceMS:         100,
			BottomGap:       10,
			Types: []BlockTypeConfig{
				{Name: "red", Color: "red", DurationMS: 5000, Value: 10, Weight: 0.1},
				{Name: "blue", Color: "blue", DurationMS: 10000, Value: 5, Weight: 0.3},
				{Name: "green", Color: "green", DurationMS: 15000, Value: 3, Weight: 0.6},
			},
		},
		Round: RoundConfig{
			Seconds: 60,
		},
		Scoring: ScoringConfig{
			MissPenalty: 10,
		},
		Input: InputConfig{
			HoldWindowMS: 150,
		},
		Report: ReportConfig{
			Enabled:   true,
			URL:       "http://127.0.0.1:5000/scores",
			TimeoutMS: 3000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBlockBreakerYAML
}
