// Package config loads optional pkgtop settings from a TOML file.
//
// The file supplies defaults for flags that would otherwise fall back to
// the built-in values; explicit command-line flags always win. A missing
// config file is not an error.
//
// Example ~/.config/pkgtop/config.toml:
//
//	mirror = "http://deb.debian.org/debian"
//	suite = "testing"
//	component = "main"
//	top = 20
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// appName is the directory name under the user config root.
const appName = "pkgtop"

// Config holds the user-configurable defaults.
type Config struct {
	Mirror    string `toml:"mirror"`
	Suite     string `toml:"suite"`
	Component string `toml:"component"`
	Top       int    `toml:"top"`
}

// Load reads the config file at path. A nonexistent path yields a zero
// Config without error; a present but malformed file is an error.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads the config from the first location that applies:
// $PKGTOP_CONFIG, then the XDG config directory.
func LoadDefault() (Config, error) {
	if path := os.Getenv("PKGTOP_CONFIG"); path != "" {
		return Load(path)
	}
	path, err := defaultPath()
	if err != nil {
		// No resolvable home directory; run on built-in defaults.
		return Config{}, nil
	}
	return Load(path)
}

// defaultPath returns the XDG-standard config location
// (~/.config/pkgtop/config.toml).
func defaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
