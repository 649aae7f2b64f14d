// Package settings loads and persists the API connection settings edited from
// the configuration screen.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no settings file is named on the command line.
const DefaultPath = "config.yaml"

// Server holds the controller connection parameters.
type Server struct {
	Host      string `yaml:"host" toml:"host"`
	Port      int    `yaml:"port" toml:"port"`
	VerifySSL bool   `yaml:"verify_ssl" toml:"verify_ssl"`
	Timeout   int    `yaml:"timeout" toml:"timeout"`
}

// Auth holds the API credentials.
type Auth struct {
	Username string `yaml:"username" toml:"username"`
	Password string `yaml:"password" toml:"password"`
}

// Config is the persisted settings document.
type Config struct {
	Server Server `yaml:"server" toml:"server"`
	Auth   Auth   `yaml:"auth" toml:"auth"`
}

// Default returns the settings used when no file exists yet. They point at the
// public DevNet always-on sandbox.
func Default() Config {
	return Config{
		Server: Server{
			Host:      "https://sandboxdnac.cisco.com",
			Port:      443,
			VerifySSL: false,
			Timeout:   30,
		},
		Auth: Auth{
			Username: "devnetuser",
			Password: "Cisco123!",
		},
	}
}

// Store reads and writes a settings file. Files ending in .toml are encoded
// as TOML, everything else as YAML.
type Store struct {
	path string
}

// NewStore returns a store bound to path, falling back to DefaultPath.
func NewStore(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path reports the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) isTOML() bool {
	return strings.EqualFold(filepath.Ext(s.path), ".toml")
}

// Load reads the settings file. A missing file yields Default(); keys absent
// from the file keep their default values.
func (s *Store) Load() (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read settings %s: %w", s.path, err)
	}
	if s.isTOML() {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Default(), fmt.Errorf("parse settings %s: %w", s.path, err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse settings %s: %w", s.path, err)
	}
	return cfg, nil
}

// Save writes cfg atomically: the document is written to a temporary file in
// the same directory and renamed over the target.
func (s *Store) Save(cfg Config) error {
	data, err := s.encode(cfg)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace settings %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) encode(cfg Config) ([]byte, error) {
	if s.isTOML() {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("encode settings: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return data, nil
}
