package server

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	home, err := ioutil.TempDir("", "offerd-config")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	// missing file gives the defaults
	cfg, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())

	cfg.Debug = true
	cfg.Store.Backend = BackendMemory
	written, err := WriteConfig(home, cfg)
	require.NoError(t, err)
	assert.True(t, written)

	// an existing file is never overwritten
	written, err = WriteConfig(home, DefaultConfig())
	require.NoError(t, err)
	assert.False(t, written)

	loaded, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigPartialFile(t *testing.T) {
	home, err := ioutil.TempDir("", "offerd-config")
	require.NoError(t, err)
	defer os.RemoveAll(home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0755))

	raw := "log_level = \"debug\"\n\n[store]\nbackend = \"memory\"\n"
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, ConfigFile), []byte(raw), 0644))

	cfg, err := LoadConfig(home)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, DefaultConfig().Store.CacheSize, cfg.Store.CacheSize)
	assert.Equal(t, DefaultConfig().Bind, cfg.Bind)

	require.NoError(t, ioutil.WriteFile(filepath.Join(home, ConfigFile), []byte("unknown = 1\n"), 0644))
	_, err = LoadConfig(home)
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Config)
		wantErr *errors.Error
	}{
		"default":         {mutate: func(*Config) {}},
		"missing bind":    {mutate: func(c *Config) { c.Bind = "" }, wantErr: errors.ErrEmpty},
		"bad log level":   {mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: errors.ErrInvalidInput},
		"unknown backend": {mutate: func(c *Config) { c.Store.Backend = "redis" }, wantErr: errors.ErrInvalidInput},
		"zero cache":      {mutate: func(c *Config) { c.Store.CacheSize = 0 }, wantErr: errors.ErrInvalidInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogLevel = "error"
	logger, closer, err := NewLogger(cfg, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hidden")
	logger.Error("shown", "offer", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	dir, err := ioutil.TempDir("", "offerd-log")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	cfg.LogFile = filepath.Join(dir, "offerd.log")
	logger, closer, err = NewLogger(cfg, &buf)
	require.NoError(t, err)
	logger.Error("to file")
	require.NoError(t, closer.Close())

	content, err := ioutil.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "to file")
}
