package utils

import (
	"time"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ ledger.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (r Logging) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx ledger.Context, tx ledger.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := ledger.GetLogger(ctx).With(
		"duration", delta/time.Microsecond,
		"path", pathOf(tx),
	)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	switch {
	case err != nil:
		code, _ := errors.ABCIInfo(err, true)
		logger = logger.With("err", err, "code", code)
		if lowPrio {
			logger.Info(msg)
		} else {
			logger.Error(msg)
		}
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}

func pathOf(tx ledger.Tx) string {
	if tx == nil {
		return "(missing)"
	}
	return ledger.GetPath(tx)
}
