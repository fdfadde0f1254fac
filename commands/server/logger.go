package server

import (
	"io"

	"github.com/iov-one/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log rotation limits.
const (
	logMaxSizeMB  = 100
	logMaxBackups = 10
	logMaxAgeDays = 28
)

// NewLogger returns the daemon logger filtered to the configured level.
// Logs go to out, or to a rotated file if the configuration names one. The
// returned closer releases the file.
func NewLogger(cfg Config, out io.Writer) (log.Logger, io.Closer, error) {
	level, err := log.AllowLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, errors.Wrapf(errors.ErrInvalidInput, "log level: %s", err)
	}

	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
		}
		out, closer = file, file
	}
	logger := log.NewTMLogger(log.NewSyncWriter(out))
	return log.NewFilter(logger, level), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
