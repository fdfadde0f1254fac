package server

import (
	"context"
	"io/ioutil"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/iov-one/ledger/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags(DefaultConfig(), []string{
		"-bind", "tcp://127.0.0.1:5555",
		"-debug",
		"-store", "memory",
		"-metrics", "",
	})
	require.NoError(t, err)
	assert.Equal(t, "tcp://127.0.0.1:5555", cfg.Bind)
	assert.True(t, cfg.Debug)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "", cfg.Metrics.Listen)
	// untouched values come from the config
	assert.Equal(t, DefaultConfig().LogLevel, cfg.LogLevel)

	_, err = parseFlags(DefaultConfig(), []string{"-store", "disk"})
	assert.True(t, errors.ErrInvalidInput.Is(err))

	_, err = parseFlags(DefaultConfig(), []string{"-unknown"})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestStartStopsOnContextDone(t *testing.T) {
	home, err := ioutil.TempDir("", "offerd-start")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	var got *Options
	gen := func(opts *Options) (abci.Application, error) {
		got = opts
		return abci.NewBaseApplication(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	args := []string{"-bind", "tcp://127.0.0.1:0", "-metrics", "", "-store", "memory", "-debug"}
	require.NoError(t, Start(ctx, gen, log.NewNopLogger(), home, args))

	require.NotNil(t, got)
	assert.Equal(t, home, got.Home)
	assert.True(t, got.Debug)
	assert.Equal(t, BackendMemory, got.Store.Backend)
	assert.NotNil(t, got.Metrics)
}

func TestStartGeneratorError(t *testing.T) {
	home, err := ioutil.TempDir("", "offerd-start")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	gen := func(*Options) (abci.Application, error) {
		return nil, errors.Wrap(errors.ErrDatabase, "locked")
	}
	err = Start(context.Background(), gen, log.NewNopLogger(), home, []string{"-metrics", ""})
	assert.True(t, errors.ErrDatabase.Is(err))
}

func TestServeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "offerd_test_total",
		Help: "Test counter.",
	})
	reg.MustRegister(counter)
	counter.Inc()

	addr, stop, err := serveMetrics("127.0.0.1:0", reg, log.NewNopLogger())
	require.NoError(t, err)
	defer stop()

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "offerd_test_total 1")
}
