package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/minebot/assets"
	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/pkg/filesystem"
	"github.com/doeshing/minebot/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "MINEBOT_CONFIG"

// FileLoader loads YAML configuration from ~/.minebot/config.yaml
// (overridable via MINEBOT_CONFIG) and then applies environment overrides
// such as BOT_TOKEN and PORT.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	cfg, err := l.LoadFile()
	if err != nil {
		return domain.Config{}, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// LoadFile reads the config file without environment overrides, writing the
// embedded defaults first when it does not exist yet.
func (l *FileLoader) LoadFile() (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := writeConfig(path, cfg); err != nil {
				return domain.Config{}, fmt.Errorf("write default config: %w", err)
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return hydrateDefaults(cfg), nil
}

// ApplyEnv overlays environment variables onto cfg. Unset variables leave
// the file values untouched.
func ApplyEnv(cfg *domain.Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.DataDir(), "config.yaml")
}

// Save writes the given config back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// Reset overwrites the config with defaults and returns the default snapshot.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg := DefaultConfig()
	if err := l.Save(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return hydrateDefaults(domain.Config{ConfigFormatVersion: "1"})
	}
	return hydrateDefaults(cfg)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Display.Mine == "" {
		cfg.Display.Mine = domain.DefaultGlyphs.Mine
	}
	if cfg.Display.Safe == "" {
		cfg.Display.Safe = domain.DefaultGlyphs.Safe
	}
	if cfg.Display.Unmarked == "" {
		cfg.Display.Unmarked = domain.DefaultGlyphs.Unmarked
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
