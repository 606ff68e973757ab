package game

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/CassBennett/Escape/internal/entities"
	"github.com/CassBennett/Escape/internal/spatial"
)

const (
	configDirName  = "ghostescape"
	configFileName = "config.yaml"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config tunes a room. Any key left out of config.yaml keeps its default.
type Config struct {
	SoundsDir         string `yaml:"sounds_dir"`
	SynthesizeMissing bool   `yaml:"synthesize_missing"`
	SampleRate        int    `yaml:"sample_rate"`
	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
	// TurnSteps is how many 45 degree steps one turn key press applies.
	TurnSteps int `yaml:"turn_steps"`

	Ghost   entities.GhostConfig   `yaml:"ghost"`
	Critter entities.CritterConfig `yaml:"critter"`
	Player  entities.PlayerConfig  `yaml:"player"`
}

func DefaultConfig() Config {
	return Config{
		SoundsDir:  "assets/sounds",
		SampleRate: 44100,
		TurnSteps:  2,
		Ghost:      entities.DefaultGhostConfig(),
		Critter:    entities.DefaultCritterConfig(),
		Player:     entities.DefaultPlayerConfig(),
	}
}

// configBaseDir determines the directory holding config.yaml.
// If GHOSTESCAPE_CONFIG_DIR is set, it is used as-is. Otherwise, use UserConfigDir()/ghostescape.
func configBaseDir() (string, error) {
	if env := os.Getenv("GHOSTESCAPE_CONFIG_DIR"); env != "" {
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName), nil
}

func configFilePath() (string, error) {
	dir, err := configBaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadConfig reads config.yaml over the defaults. A missing file is not an
// error. GHOSTESCAPE_SOUNDS_DIR overrides sounds_dir.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path, err := configFilePath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if dir := os.Getenv("GHOSTESCAPE_SOUNDS_DIR"); dir != "" {
		cfg.SoundsDir = dir
	}
	return cfg, cfg.Validate()
}

// SaveConfig writes cfg to config.yaml atomically, creating the directory
// if needed.
func SaveConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir, err := configBaseDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, configFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ConfigExists reports whether a config.yaml is present.
func ConfigExists() bool {
	path, err := configFilePath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	positive("sample_rate", float64(c.SampleRate))
	positive("turn_steps", float64(c.TurnSteps))
	positive("ghost.speed", c.Ghost.Speed)
	positive("ghost.hit_radius", c.Ghost.HitRadius)
	positive("ghost.detection_radius", c.Ghost.DetectionRadius)
	positive("ghost.stage_limit", float64(c.Ghost.StageLimit))
	positive("critter.speed", c.Critter.Speed)
	positive("critter.depth", float64(c.Critter.Depth))
	if c.Critter.MinInterval < 0 {
		errs = append(errs, fmt.Errorf("critter.min_interval must not be negative, got %v", c.Critter.MinInterval))
	}
	if c.Critter.MaxInterval <= c.Critter.MinInterval {
		errs = append(errs, fmt.Errorf("critter.max_interval %v must exceed min_interval %v",
			c.Critter.MaxInterval, c.Critter.MinInterval))
	}
	if c.Critter.RightLimit <= c.Critter.LeftLimit {
		errs = append(errs, fmt.Errorf("critter.right_limit %v must exceed left_limit %v",
			c.Critter.RightLimit, c.Critter.LeftLimit))
	}
	if c.Player.FootstepCooldown < 0 || c.Player.TurnCooldown < 0 {
		errs = append(errs, errors.New("player cooldowns must not be negative"))
	}
	if _, ok := spatial.ParseDirection(c.Player.Facing); !ok {
		errs = append(errs, fmt.Errorf("player.facing %q is not a compass direction", c.Player.Facing))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Rand returns the random source for a room built from c.
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
