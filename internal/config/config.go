// Package config provides YAML-based game configuration loading and
// difficulty management for Block Breaker.
package config

// BlockBreakerConfig contains all configuration for the Block Breaker game.
type BlockBreakerConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Blocks     BlocksConfig     `yaml:"blocks"`
	Round      RoundConfig      `yaml:"round"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Input      InputConfig      `yaml:"input"`
	Report     ReportConfig     `yaml:"report"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the playfield dimensions.
type GridConfig struct {
	Width      int     `yaml:"width"`       // Cells across
	Height     int     `yaml:"height"`      // Cells down
	CellWidth  float64 `yaml:"cell_width"`  // Sub-cell resolution (pixels per cell)
	CellHeight float64 `yaml:"cell_height"` // Sub-cell resolution (pixels per cell)
}

// PhysicsConfig defines ball and collision parameters.
type PhysicsConfig struct {
	BallSpeedX     float64 `yaml:"ball_speed_x"`     // Initial horizontal speed, pixels per tick
	BallSpeedY     float64 `yaml:"ball_speed_y"`     // Initial vertical speed, pixels per tick (negative = up)
	SpinFactor     float64 `yaml:"spin_factor"`      // Horizontal speed per cell of paddle offset
	PaddleHitWidth float64 `yaml:"paddle_hit_width"` // Max ball/paddle centre distance for a hit
	BlockHitRadius float64 `yaml:"block_hit_radius"` // Per-axis distance for a block hit
}

// PaddleConfig defines paddle movement and size.
type PaddleConfig struct {
	Step   float64 `yaml:"step"`   // Cells moved per tick
	Margin float64 `yaml:"margin"` // Distance kept from each side wall
	Width  int     `yaml:"width"`  // Drawn width in cells
	Row    int     `yaml:"row"`    // Distance from the bottom of the grid
}

// BlocksConfig defines block spawning and block types.
type BlocksConfig struct {
	SpawnIntervalMS int               `yaml:"spawn_interval_ms"`
	GraceMS         int               `yaml:"grace_ms"`     // Blocks younger than this cannot be hit
	BottomGap       int               `yaml:"bottom_gap"`   // Rows kept free above the bottom edge
	Types           []BlockTypeConfig `yaml:"types"`
}

// BlockTypeConfig defines one block category.
type BlockTypeConfig struct {
	Name       string  `yaml:"name"`
	Color      string  `yaml:"color"`
	DurationMS int     `yaml:"duration_ms"`
	Value      int     `yaml:"value"`
	Weight     float64 `yaml:"weight"` // Share of spawns, weights are normalised
}

// RoundConfig defines the round timer.
type RoundConfig struct {
	Seconds int `yaml:"seconds"`
}

// ScoringConfig defines score adjustments.
type ScoringConfig struct {
	MissPenalty int `yaml:"miss_penalty"`
}

// InputConfig defines how terminal key events become held keys.
type InputConfig struct {
	HoldWindowMS int `yaml:"hold_window_ms"`
}

// ReportConfig defines the final score report.
type ReportConfig struct {
	Enabled   bool   `yaml:"enabled"`
	URL       string `yaml:"url"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to ball speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

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
