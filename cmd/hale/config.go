package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// haleConfig holds defaults read from an optional hale.toml found in
// the working directory or any parent. Explicit flags always win.
type haleConfig struct {
	Parse  parseConfig  `toml:"parse"`
	Output outputConfig `toml:"output"`
}

type parseConfig struct {
	Lenient  bool   `toml:"lenient"`
	Encoding string `toml:"encoding"`
}

type outputConfig struct {
	Color  string `toml:"color"`
	Format string `toml:"format"`
}

func findHaleToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "hale.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig() haleConfig {
	var cfg haleConfig
	path, ok, err := findHaleToml(".")
	if err != nil || !ok {
		return cfg
	}
	// A broken config file should not take the tool down; it just
	// contributes no defaults.
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring %s: %v\n", path, err)
		return haleConfig{}
	}
	return cfg
}

// useColor resolves the effective color mode for output to f from the
// --color flag, falling back to the config file and then to terminal
// detection.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	if mode == "" {
		mode = loadConfig().Output.Color
	}
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// lenientMode resolves the --lenient flag against the config default.
func lenientMode(cmd *cobra.Command) bool {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("lenient") {
		v, _ := flags.GetBool("lenient")
		return v
	}
	return loadConfig().Parse.Lenient
}

// noteColor returns the style for advisory stderr notes, honoring the
// effective color mode.
func noteColor(cmd *cobra.Command) *color.Color {
	c := color.New(color.FgYellow)
	if useColor(cmd, os.Stderr) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// inputEncoding resolves the --encoding flag against the config
// default; empty means plain UTF-8/ASCII passthrough.
func inputEncoding(cmd *cobra.Command) string {
	enc, _ := cmd.Root().PersistentFlags().GetString("encoding")
	if enc == "" {
		enc = loadConfig().Parse.Encoding
	}
	return strings.TrimSpace(strings.ToLower(enc))
}
