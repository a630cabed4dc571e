package config

import (
	"math"
	"testing"
)

func TestDifficultyLevelByScore(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 0.5},
	})

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{500, 1.0},
		{-40, 0.2},
	}
	for _, tc := range tests {
		if got := dm.Level(tc.score, 0); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.want)
		}
	}
}

func TestDifficultyDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.4,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1},
	})

	if dm.IsEnabled() {
		t.Error("manager should be disabled")
	}
	if got := dm.Speed(18, 1000, 0); math.Abs(got-18*1.4) > 1e-9 {
		t.Errorf("Speed = %v, expected %v", got, 18*1.4)
	}
}

func TestDifficultySpeedByTime(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 300},
		Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
	})

	if got := dm.Speed(18, 0, 150); math.Abs(got-18*1.25) > 1e-9 {
		t.Errorf("Speed at half progression = %v, expected %v", got, 18*1.25)
	}
}
