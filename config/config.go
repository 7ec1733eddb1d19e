// Package config loads blockfall settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plus3/blockfall/tetris"
)

// Config is the full set of host settings.
type Config struct {
	Game  Game                `yaml:"game"`
	Store Store               `yaml:"store"`
	Keys  map[string][]string `yaml:"keys"`
	Debug Debug               `yaml:"debug"`
}

type Game struct {
	// Seed fixes the piece order. Zero picks a random seed.
	Seed    int64    `yaml:"seed"`
	MaxStep Duration `yaml:"max_step"`
}

type Store struct {
	// Path of the SQLite database. Empty keeps scores in memory only.
	Path string `yaml:"path"`
}

type Debug struct {
	Overlay bool `yaml:"overlay"`
}

// Duration is a time.Duration written as a Go duration string ("50ms").
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// DefaultKeys maps intent names to ebiten key names.
func DefaultKeys() map[string][]string {
	return map[string][]string{
		tetris.MoveLeft.String():          {"ArrowLeft", "A"},
		tetris.MoveRight.String():         {"ArrowRight", "D"},
		tetris.SoftDropIntent.String():    {"ArrowDown", "S"},
		tetris.HardDropIntent.String():    {"Space"},
		tetris.RotateCW.String():          {"ArrowUp", "W", "X"},
		tetris.RotateCCW.String():         {"Z"},
		tetris.HoldIntent.String():        {"C"},
		tetris.TogglePauseIntent.String(): {"P"},
		tetris.RestartIntent.String():     {"R"},
		tetris.StartIntent.String():       {"Enter"},
	}
}

func Default() *Config {
	return &Config{
		Game: Game{
			MaxStep: Duration(tetris.DefaultMaxStep),
		},
		Store: Store{
			Path: "blockfall.db",
		},
		Keys: DefaultKeys(),
	}
}

// Load reads the YAML file at path over the defaults. Intents missing from
// the file's keys section keep their default bindings.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config data over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	defaults := cfg.Keys
	cfg.Keys = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	for name, keys := range defaults {
		if _, ok := cfg.Keys[name]; !ok {
			if cfg.Keys == nil {
				cfg.Keys = make(map[string][]string, len(defaults))
			}
			cfg.Keys[name] = keys
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every key binding names a known intent and the step is
// positive.
func (c *Config) Validate() error {
	var errs []error
	if c.Game.MaxStep <= 0 {
		errs = append(errs, fmt.Errorf("game.max_step must be positive, got %s", time.Duration(c.Game.MaxStep)))
	}
	for name := range c.Keys {
		if _, err := tetris.ParseIntent(name); err != nil {
			errs = append(errs, fmt.Errorf("keys: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// Bindings resolves the key table into intents. Names are validated, so
// unknown intents are skipped.
func (c *Config) Bindings() map[tetris.Intent][]string {
	out := make(map[tetris.Intent][]string, len(c.Keys))
	for name, keys := range c.Keys {
		intent, err := tetris.ParseIntent(name)
		if err != nil {
			continue
		}
		out[intent] = keys
	}
	return out
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
