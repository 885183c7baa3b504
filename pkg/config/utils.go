package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"winterreise/pkg/core"
)

const (
	configRelPath = "winterreise/config.xml"
	tmpFileName   = "winterreise"
	inTmpPath     = "/tmp/winterreise"
)

// ErrNoRuntimeDir is returned when in_xdg_runtime is selected but XDG_RUNTIME_DIR is unset.
var ErrNoRuntimeDir = errors.New("XDG_RUNTIME_DIR is not set; use <tmpfile><in_tmp/></tmpfile> or <tmpfile><custom>...</custom></tmpfile> in the config")

// PrevWindowPath resolves the file that stores the previously focused window.
func (c *Config) PrevWindowPath() (string, error) {
	switch c.tmpfile {
	case InXdgRuntime:
		dir := os.Getenv("XDG_RUNTIME_DIR")
		if dir == "" {
			return "", ErrNoRuntimeDir
		}
		return filepath.Join(dir, tmpFileName), nil
	case InTmp:
		return inTmpPath, nil
	case Custom:
		return c.customPath, nil
	default:
		return "", fmt.Errorf("%w: unknown tmpfile policy %d", ErrInvalidConfig, c.tmpfile)
	}
}

// DefaultConfigPath returns the config location under the XDG config home,
// creating the parent directory.
func DefaultConfigPath() (string, error) {
	path, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return path, nil
}

// FindConfig loads the configuration from providedPath when set, otherwise
// from the default location, writing the default document there first if it
// does not exist yet.
func FindConfig(providedPath string, log core.Logger) (*Config, error) {
	log.Info("Looking for configuration", "provided_path", providedPath)

	if providedPath != "" {
		config, err := LoadFromFile(providedPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from provided path: %w", err)
		}
		return config, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		log.Error("Failed to get config path", err)
		return nil, err
	}

	return loadOrCreate(defaultPath, log)
}

func loadOrCreate(path string, log core.Logger) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Info("Writing default configuration", "path", path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := os.WriteFile(path, defaultConfigXML, 0644); err != nil {
			log.Error("Failed to write default config", err, "path", path)
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	return LoadFromFile(path, log)
}
