package config

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config carries environment-driven settings. Flags still win: commands only
// consult these values when the corresponding flag is unset.
type Config struct {
	// Dir is the data directory holding the profile blob and UI state.
	Dir string `envconfig:"DIR"`
	// LogFile receives structured logs; empty means <dir>/applock.log.
	LogFile string `envconfig:"LOG_FILE"`
	Debug   bool   `envconfig:"DEBUG"`
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("applock", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ResolveDir picks the data directory: explicit flag, then APPLOCK_DIR,
// then ~/.applock.
func (c Config) ResolveDir(flagDir string) (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if c.Dir != "" {
		return c.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".applock"), nil
}

func (c Config) ResolveLogFile(dir string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(dir, "applock.log")
}
