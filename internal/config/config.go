// Package config loads the surrounding executable's on-disk configuration:
// shell path, font, theme. It is read-only to the terminal core; Grid and
// Terminal never see it.
//
// Uses github.com/BurntSushi/toml for the on-disk format: flat key/value
// configuration is TOML's home turf.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full on-disk configuration.
type Config struct {
	Shell ShellConfig `toml:"shell"`
	Font  FontConfig  `toml:"font"`
	Theme string      `toml:"theme"`
}

// ShellConfig controls which shell the PtyPort spawns.
type ShellConfig struct {
	Path string `toml:"path"`
}

// FontConfig controls the glyph atlas the Surface builds at startup.
type FontConfig struct {
	Path string  `toml:"path"`
	Size float64 `toml:"size"`
}

// Default returns the configuration used when no file exists on disk yet.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{Path: ""},
		Font:  FontConfig{Path: defaultFontPath(), Size: 14},
		Theme: "crow-black",
	}
}

// defaultFontPath picks a common monospace font file present on most Linux
// desktops; Surface falls back to an error exit (code 4, "cannot create
// font set") if it does not exist.
func defaultFontPath() string {
	candidates := []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
		"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationMono-Regular.ttf",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return candidates[0]
}

// Path returns the on-disk config file location, creating its parent
// directory if needed.
func Path() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".corvidterm.toml"
	}
	dir := filepath.Join(homeDir, ".config", "corvidterm")
	os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "config.toml")
}

// Load reads the configuration from disk, returning Default() (never an
// error reading the missing file) when no file exists yet. On first run it
// writes the default out so the file exists for the user to edit; a
// failure to do so is not fatal to startup.
func Load() (*Config, error) {
	path := Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			cfg.Save()
			return cfg, nil
		}
		return nil, err
	}
	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to disk as TOML.
func (c *Config) Save() error {
	f, err := os.Create(Path())
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
