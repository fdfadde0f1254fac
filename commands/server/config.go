package server

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// ConfigFile is the name of the daemon configuration, relative to the
// home directory.
const ConfigFile = "config/app.toml"

// Config is the daemon configuration read from app.toml. Command line
// flags override any value set here.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind"`
	// Debug returns full error messages and stack traces to clients.
	Debug bool `toml:"debug"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `toml:"log_level"`
	// LogFile is where the logs are written, rotated by size. Empty means
	// standard output.
	LogFile string `toml:"log_file"`

	Metrics MetricsConfig `toml:"metrics"`
	Store   StoreConfig   `toml:"store"`
}

// MetricsConfig configures the prometheus endpoint.
type MetricsConfig struct {
	// Listen is the address serving /metrics. Empty disables it.
	Listen string `toml:"listen"`
}

// StoreConfig selects where the application state lives.
type StoreConfig struct {
	// Backend is "iavl" for a leveldb backed tree in the home directory or
	// "memory" for a tree that is lost on exit.
	Backend string `toml:"backend"`
	// CacheSize is the number of tree nodes kept in memory.
	CacheSize int `toml:"cache_size"`
}

// Store backends.
const (
	BackendIAVL   = "iavl"
	BackendMemory = "memory"
)

// DefaultConfig returns the configuration used when app.toml is missing.
func DefaultConfig() Config {
	return Config{
		Bind:     "tcp://127.0.0.1:26658",
		LogLevel: "info",
		Metrics: MetricsConfig{
			Listen: "localhost:26660",
		},
		Store: StoreConfig{
			Backend:   BackendIAVL,
			CacheSize: 10000,
		},
	}
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	if c.Bind == "" {
		return errors.Wrap(errors.ErrEmpty, "bind")
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "log_level: %s", err)
	}
	switch c.Store.Backend {
	case BackendIAVL, BackendMemory:
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "unknown store backend %q", c.Store.Backend)
	}
	if c.Store.CacheSize <= 0 {
		return errors.Wrap(errors.ErrInvalidInput, "cache_size must be positive")
	}
	return nil
}

// LoadConfig reads the configuration of the given home directory. Values
// missing from the file keep their defaults. A missing file is not an
// error.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(home, ConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(errors.ErrInvalidInput, "cannot decode %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Wrapf(errors.ErrInvalidInput, "unknown keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}

// WriteConfig stores the configuration in the given home directory unless
// a file exists already. It returns true if the file was written.
func WriteConfig(home string, cfg Config) (bool, error) {
	path := filepath.Join(home, ConfigFile)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return false, errors.Wrapf(errors.ErrInvalidInput, "cannot encode config: %s", err)
	}
	return true, nil
}
