package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config search path.
const ConfigFile = "blockbreaker.yaml"

// LoadBlockBreaker loads Block Breaker configuration.
// Search order: customPath -> ~/.blockbreaker/configs/blockbreaker.yaml ->
// ./configs/blockbreaker.yaml -> embedded default.
func LoadBlockBreaker(customPath string) (BlockBreakerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlockBreakerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return BlockBreakerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultBlockBreakerYAML)
	if err != nil {
		return DefaultBlockBreakerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults and validates the result.
// Fields missing from the document keep their default values.
func Parse(data []byte) (BlockBreakerConfig, error) {
	cfg := DefaultBlockBreakerConfig()
	// Types are replaced wholesale rather than merged element by element.
	cfg.Blocks.Types = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BlockBreakerConfig{}, err
	}
	if len(cfg.Blocks.Types) == 0 {
		cfg.Blocks.Types = DefaultBlockBreakerConfig().Blocks.Types
	}
	if err := cfg.Validate(); err != nil {
		return BlockBreakerConfig{}, err
	}
	return cfg, nil
}

// Validate reports configuration values the game cannot run with.
func (c BlockBreakerConfig) Validate() error {
	var errs []error

	if c.Grid.Width < 10 || c.Grid.Height < 12 {
		errs = append(errs, fmt.Errorf("grid must be at least 10x12, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Grid.CellWidth <= 0 || c.Grid.CellHeight <= 0 {
		errs = append(errs, errors.New("grid cell size must be positive"))
	}
	if c.Blocks.BottomGap >= c.Grid.Height-1 {
		errs = append(errs, fmt.Errorf("blocks.bottom_gap %d leaves no spawn rows", c.Blocks.BottomGap))
	}
	if c.Blocks.SpawnIntervalMS <= 0 {
		errs = append(errs, errors.New("blocks.spawn_interval_ms must be positive"))
	}
	total := 0.0
	for _, t := range c.Blocks.Types {
		if t.DurationMS <= 0 {
			errs = append(errs, fmt.Errorf("block type %q: duration_ms must be positive", t.Name))
		}
		if t.Weight < 0 {
			errs = append(errs, fmt.Errorf("block type %q: weight must not be negative", t.Name))
		}
		total += t.Weight
	}
	if total <= 0 {
		errs = append(errs, errors.New("block type weights must sum to a positive value"))
	}
	if c.Round.Seconds < 0 {
		errs = append(errs, errors.New("round.seconds must not be negative"))
	}

	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockbreaker", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BlockBreakerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Round.Seconds = cfg.Round.Seconds * 3 / 2
		cfg.Physics.PaddleHitWidth += 1
		cfg.Scoring.MissPenalty /= 2
	case DifficultyHard:
		cfg.Round.Seconds = cfg.Round.Seconds * 2 / 3
		cfg.Physics.PaddleHitWidth -= 0.8
	}
}
