package server

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iov-one/ledger/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind     = "bind"
	flagDebug    = "debug"
	flagLogLevel = "log_level"
	flagLogFile  = "log_file"
	flagMetrics  = "metrics"
	flagStore    = "store"

	shutdownTimeout = 5 * time.Second
)

// Options is everything an application needs to be constructed by the
// start command.
type Options struct {
	Home    string
	Logger  log.Logger
	Debug   bool
	Store   StoreConfig
	Metrics prometheus.Registerer
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

// parseFlags applies command line flags on top of the configuration
// loaded from app.toml.
func parseFlags(cfg Config, args []string) (Config, error) {
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&cfg.Bind, flagBind, cfg.Bind, "address server listens on")
	startFlags.BoolVar(&cfg.Debug, flagDebug, cfg.Debug, "call stack returned on error")
	startFlags.StringVar(&cfg.LogLevel, flagLogLevel, cfg.LogLevel, "debug, info, error or none")
	startFlags.StringVar(&cfg.LogFile, flagLogFile, cfg.LogFile, "rotated log file instead of stdout")
	startFlags.StringVar(&cfg.Metrics.Listen, flagMetrics, cfg.Metrics.Listen, "prometheus listen address, empty to disable")
	startFlags.StringVar(&cfg.Store.Backend, flagStore, cfg.Store.Backend, "state backend: iavl or memory")
	if err := startFlags.Parse(args); err != nil {
		return cfg, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return cfg, cfg.Validate()
}

// StartCmd runs the application until the process is interrupted.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Start(ctx, gen, logger, home, args)
}

// Start loads the configuration from home, builds the application and
// serves it over the ABCI socket until ctx is done. The given logger is
// filtered to the configured level, or replaced by a file logger when the
// configuration names a log file.
func Start(ctx context.Context, gen AppGenerator, logger log.Logger, home string, args []string) error {
	cfg, err := LoadConfig(home)
	if err != nil {
		return err
	}
	if cfg, err = parseFlags(cfg, args); err != nil {
		return err
	}

	if cfg.LogFile != "" {
		fileLogger, closer, err := NewLogger(cfg, nil)
		if err != nil {
			return err
		}
		defer closer.Close()
		logger = fileLogger
	} else {
		level, err := log.AllowLevel(cfg.LogLevel)
		if err != nil {
			return errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		logger = log.NewFilter(logger, level)
	}

	registry := prometheus.NewRegistry()
	app, err := gen(&Options{
		Home:    home,
		Logger:  logger,
		Debug:   cfg.Debug,
		Store:   cfg.Store,
		Metrics: registry,
	})
	if err != nil {
		return errors.Wrap(err, "cannot create application")
	}

	logger.Info("Starting ABCI app", "bind", cfg.Bind)
	svr, err := server.NewServer(cfg.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrInvalidState, "cannot start abci server: %s", err)
	}
	defer svr.Stop()

	if cfg.Metrics.Listen != "" {
		_, stopMetrics, err := serveMetrics(cfg.Metrics.Listen, registry, logger)
		if err != nil {
			return err
		}
		defer stopMetrics()
	}

	<-ctx.Done()
	logger.Info("Shutting down")
	return nil
}

// serveMetrics exposes the registry on /metrics in a background goroutine.
// It returns the address it listens on and a function stopping the
// listener.
func serveMetrics(addr string, reg *prometheus.Registry, logger log.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInvalidInput, "cannot listen on %s: %s", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux}

	logger.Info("Serving metrics", "addr", ln.Addr().String())
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", "err", err)
		}
	}()

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	return ln.Addr().String(), stop, nil
}
