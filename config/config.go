// Package config loads the game's TOML configuration.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
)

// PathEnv names the environment variable holding the config file path.
const PathEnv = "SKIRMISH_CONFIG"

// DefaultPath is used when PathEnv is unset.
const DefaultPath = "config/skirmish.toml"

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Loop    LoopConfig    `toml:"loop"`
	Game    GameConfig    `toml:"game"`
	Events  EventsConfig  `toml:"events"`
	ECS     ECSConfig     `toml:"ecs"`
	Debug   DebugConfig   `toml:"debug"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	Fullscreen bool   `toml:"fullscreen"`
	Resizable  bool   `toml:"resizable"`
}

type LoopConfig struct {
	TPS int `toml:"tps"` // ticks per second
}

type GameConfig struct {
	Level     string `toml:"level"`
	AssetsDir string `toml:"assets_dir"`
	PlayerTag string `toml:"player_tag"`
	// MapWidth and MapHeight bound movement when the level has no tilemap.
	MapWidth  int `toml:"map_width"`
	MapHeight int `toml:"map_height"`
}

type EventsConfig struct {
	MaxEmitDepth int `toml:"max_emit_depth"`
}

type ECSConfig struct {
	MaxComponentTypes int `toml:"max_component_types"`
	InitialCapacity   int `toml:"initial_capacity"`
}

type DebugConfig struct {
	ShowColliders bool `toml:"show_colliders"`
	ImGui         bool `toml:"imgui"`
	HistoryFrames int  `toml:"history_frames"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads .env if present, then the config file named by SKIRMISH_CONFIG or
// DefaultPath. A missing config file yields the defaults.
func Resolve() (*Config, string, error) {
	_ = godotenv.Load()

	path := os.Getenv(PathEnv)
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return defaults(), path, nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate rejects settings the game cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return eris.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Loop.TPS <= 0:
		return eris.Errorf("loop.tps must be positive, got %d", c.Loop.TPS)
	case c.Events.MaxEmitDepth <= 0:
		return eris.Errorf("events.max_emit_depth must be positive, got %d", c.Events.MaxEmitDepth)
	case c.ECS.MaxComponentTypes <= 0:
		return eris.Errorf("ecs.max_component_types must be positive, got %d", c.ECS.MaxComponentTypes)
	case c.Game.PlayerTag == "":
		return eris.New("game.player_tag must not be empty")
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     800,
			Height:    600,
			Title:     "Skirmish",
			Resizable: true,
		},
		Loop: LoopConfig{
			TPS: 60,
		},
		Game: GameConfig{
			Level:     "levels/level1.lua",
			AssetsDir: "assets",
			PlayerTag: "player",
		},
		Events: EventsConfig{
			MaxEmitDepth: 8,
		},
		ECS: ECSConfig{
			MaxComponentTypes: 256,
			InitialCapacity:   1024,
		},
		Debug: DebugConfig{
			HistoryFrames: 120,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
