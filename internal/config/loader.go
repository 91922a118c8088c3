package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "platformer.yaml"

// Load loads the platformer configuration.
// Search order: customPath -> ~/.mathrun/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func Load(customPath string) (PlatformerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(ConfigFile); userCfgPath != "" {
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
	cfg, err := Parse(defaultPlatformerYAML)
	if err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the default configuration and normalizes the result.
func Parse(data []byte) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultPlatformerConfig(), err
	}
	cfg.normalize()
	return cfg, nil
}

// ResolvePath returns the file Load would read, or "" when the embedded default is used.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	if p := UserConfigPath(ConfigFile); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	local := filepath.Join("configs", ConfigFile)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return ""
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mathrun", "configs", filename)
}

// normalize replaces values that would stall or break the simulation.
func (c *PlatformerConfig) normalize() {
	d := DefaultPlatformerConfig()
	if c.Generator.Levels < 1 {
		c.Generator.Levels = 1
	}
	if c.Physics.MaxFrameDelta <= 0 {
		c.Physics.MaxFrameDelta = d.Physics.MaxFrameDelta
	}
	if c.Physics.Friction < 0 || c.Physics.Friction > 1 {
		c.Physics.Friction = d.Physics.Friction
	}
	if c.Camera.Decay <= 0 || c.Camera.Decay >= 1 {
		c.Camera.Decay = d.Camera.Decay
	}
	if c.Camera.ViewportWidth <= 0 || c.Camera.ViewportHeight <= 0 {
		c.Camera.ViewportWidth = d.Camera.ViewportWidth
		c.Camera.ViewportHeight = d.Camera.ViewportHeight
	}
	if c.Generator.HoleMaxWidth < c.Generator.HoleMinWidth {
		c.Generator.HoleMaxWidth = c.Generator.HoleMinWidth
	}
	if c.Generator.PlatformMaxW < c.Generator.PlatformMinW {
		c.Generator.PlatformMaxW = c.Generator.PlatformMinW
	}
	if c.Generator.Segment <= 0 {
		c.Generator.Segment = d.Generator.Segment
	}
	if c.Generator.WidthStep <= 0 {
		c.Generator.WidthStep = d.Generator.WidthStep
	}
	if c.Quiz.OptionCount < 1 {
		c.Quiz.OptionCount = 1
	}
	if c.Quiz.MaxOperand < 0 {
		c.Quiz.MaxOperand = 0
	}
	c.Difficulty.InitialLevel = clampF(c.Difficulty.InitialLevel, 0, 1)
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust recovery based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Quiz.TimeLimit = 30
		cfg.Player.Invulnerable = 2.5
		cfg.Scoring.WrongAnswerPenalty = 25
	case DifficultyHard:
		cfg.Quiz.TimeLimit = 12
		cfg.Player.Invulnerable = 1.5
		cfg.Scoring.WrongAnswerPenalty = 100
	}
}
