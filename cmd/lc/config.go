package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	defaultPrompt   = "λ> "
	defaultMaxSteps = 1000
	defaultHistory  = "~/.lc_history"
)

// config controls a session. Values come from the config file when one is
// present, overridden by command line flags.
type config struct {
	Prompt   string `yaml:"prompt"`
	MaxSteps int    `yaml:"max_steps"` // 0 means no step limit
	ShowAST  bool   `yaml:"show_ast"`
	Color    *bool  `yaml:"color"`
	History  string `yaml:"history"`
	// Prelude lists extra definition files loaded after the standard table.
	Prelude []string `yaml:"prelude"`

	// flag-only switches
	NoPrelude bool `yaml:"-"`
	Plain     bool `yaml:"-"`
	Debug     bool `yaml:"-"`
}

func defaultConfig() *config {
	return &config{
		Prompt:   defaultPrompt,
		MaxSteps: defaultMaxSteps,
		History:  defaultHistory,
	}
}

// configPath resolves where the config file lives: the --config flag when
// given, otherwise $XDG_CONFIG_HOME/lc/config.yaml with ~/.config as the
// fallback base.
func configPath(ctx *cli.Context) string {
	if p := ctx.String(configFlagName); p != "" {
		return p
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "lc", "config.yaml")
}

// loadConfig merges defaults, the config file, and command line flags, in
// that order. A missing file is only an error when --config named it.
func loadConfig(ctx *cli.Context) (*config, error) {
	cfg := defaultConfig()

	if path := configPath(ctx); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
		case ctx.IsSet(configFlagName):
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if ctx.IsSet(showASTFlagName) {
		cfg.ShowAST = ctx.Bool(showASTFlagName)
	}
	if ctx.IsSet(maxStepsFlagName) {
		cfg.MaxSteps = ctx.Int(maxStepsFlagName)
	}
	cfg.NoPrelude = ctx.Bool(noPreludeFlagName)
	cfg.Plain = ctx.Bool(plainFlagName)
	cfg.Debug = ctx.Bool(debugFlagName)

	if cfg.Prompt == "" {
		cfg.Prompt = defaultPrompt
	}
	if cfg.MaxSteps < 0 {
		cfg.MaxSteps = defaultMaxSteps
	}
	if cfg.History == "" {
		cfg.History = defaultHistory
	}
	return cfg, nil
}

// expandHome rewrites a leading ~ against the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
