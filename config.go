package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// config collects everything the command line can set; a TOML file may
// provide it, with explicit flags taking precedence.
type config struct {
	Prompt         string   `toml:"prompt"`
	Color          string   `toml:"color"`
	Trace          string   `toml:"trace"`
	MaxDepth       int      `toml:"max_depth"`
	DynamicControl bool     `toml:"dynamic_control"`
	Prelude        bool     `toml:"prelude"`
	HistoryFile    string   `toml:"history_file"`
	Load           []string `toml:"load"`
	Dump           bool     `toml:"dump"`
}

func defaultConfig() config {
	return config{
		Prompt:   "» ",
		Color:    "auto",
		Trace:    "Error",
		MaxDepth: 1 << 16,
		Prelude:  true,
	}
}

func (cfg *config) decodeFile(path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("reading config %v: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("reading config %v: unknown keys %v", path, undec)
	}
	return cfg.validate()
}

func (cfg config) validate() error {
	switch cfg.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid color mode %q, expected auto, on or off", cfg.Color)
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("invalid max depth %v", cfg.MaxDepth)
	}
	return nil
}

func (cfg config) vmOptions() []VMOption {
	opts := []VMOption{
		WithDynamicControl(cfg.DynamicControl),
		WithMaxDepth(cfg.MaxDepth),
	}
	if cfg.Prelude {
		opts = append(opts, WithPrelude())
	}
	return opts
}
