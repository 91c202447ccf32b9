package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/dialmaster/docktui/internal/constants"
)

// FindConfigFile searches for a config file in order of preference:
// the DOCKTUI_CONFIG environment variable, the current directory, then the
// user config directory. An empty string means no file was found and the
// defaults apply.
func FindConfigFile() string {
	if path := os.Getenv(constants.ConfigEnvVar); path != "" {
		return path
	}

	if _, err := os.Stat(constants.DefaultConfigFile); err == nil {
		return constants.DefaultConfigFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".config", "docktui", constants.DefaultConfigFile)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// LoadWithOverrides loads the config file at path (or defaults when path is
// empty), then applies environment overrides. A .env file in the working
// directory is merged into the environment first, lowest priority.
func LoadWithOverrides(path string) (*Config, error) {
	var cfg *Config
	var err error

	if path == "" {
		cfg = Default()
	} else {
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	}

	ApplyEnvOverrides(cfg, envLookup())
	return cfg, Validate(cfg)
}

// ApplyEnvOverrides overrides individual settings from the environment:
// DOCKTUI_LOG_MAX_LINES, DOCKTUI_LOG_TAIL, DOCKTUI_LOG_SINCE.
// Unparsable values are ignored.
func ApplyEnvOverrides(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup("DOCKTUI_LOG_MAX_LINES"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Log.MaxLines = n
		}
	}
	if v, ok := lookup("DOCKTUI_LOG_TAIL"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Log.Tail = n
		}
	}
	if v, ok := lookup("DOCKTUI_LOG_SINCE"); ok && v != "" {
		cfg.Log.Since = v
	}
}

// envLookup returns a lookup over the process environment, with values from
// an optional .env file filling in anything not already set.
func envLookup() func(string) (string, bool) {
	fileEnv, err := godotenv.Read(".env")
	if err != nil {
		fileEnv = nil
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}
}
