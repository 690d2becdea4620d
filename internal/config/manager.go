package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"rephraser/internal/errs"
)

// Manager loads and persists the config file.
type Manager struct {
	path string
}

// NewManager resolves the config path: the explicit path if non-empty,
// otherwise ~/.rephraser/config.toml.
func NewManager(path string) (*Manager, error) {
	if path != "" {
		return &Manager{path: path}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errs.Wrap(errs.KindConfig, err, "could not resolve home directory")
	}
	return &Manager{path: filepath.Join(home, ".rephraser", "config.toml")}, nil
}

// Path returns the config file path.
func (m *Manager) Path() string {
	return m.path
}

// Exists reports whether the config file is present.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Load reads the config file. A missing file yields the defaults, so the
// tool works out of the box.
func (m *Manager) Load() (Config, error) {
	if !m.Exists() {
		return Default(), nil
	}
	var cfg Config
	if _, err := toml.DecodeFile(m.path, &cfg); err != nil {
		return Config{}, errs.Wrap(errs.KindConfig, err, "failed to parse %s", m.path)
	}
	return cfg, nil
}

// Save writes the config as TOML, creating the parent directory if needed.
func (m *Manager) Save(cfg Config) error {
	if dir := filepath.Dir(m.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrap(errs.KindConfig, err, "failed to create config directory")
		}
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return errs.Wrap(errs.KindConfig, err, "failed to serialize config")
	}
	if err := os.WriteFile(m.path, buf.Bytes(), 0o644); err != nil {
		return errs.Wrap(errs.KindConfig, err, "failed to write %s", m.path)
	}
	return nil
}

// Init creates the config file with defaults. Fails if it already exists.
func (m *Manager) Init() error {
	if m.Exists() {
		return errs.New(errs.KindConfig, "config file already exists at %s", m.path)
	}
	return m.Save(Default())
}

// Encode renders a config as TOML text, for `config show`.
func Encode(cfg Config) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", errs.Wrap(errs.KindConfig, err, "failed to serialize config")
	}
	return buf.String(), nil
}
