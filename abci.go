package ledger

import (
	"fmt"

	"github.com/iov-one/ledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successfully delivered transaction.
// Failures are always reported as errors, never as a result.
type DeliverResult struct {
	// Data is the machine readable return value, eg. the id of a created
	// offer.
	Data []byte
	// Log is a human readable message.
	Log string
	// Tags are indexed by tendermint and can be used to search for
	// transactions.
	Tags []common.KVPair
	// GasUsed is reported to tendermint for metrics only.
	GasUsed int64
}

// AddTag appends an indexed key value pair.
func (d *DeliverResult) AddTag(key, value []byte) {
	d.Tags = append(d.Tags, common.KVPair{Key: key, Value: value})
}

// CheckResult is the outcome of a transaction that passed CheckTx.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the fixed cost of the operation, tendermint uses it
	// to limit the number of transactions in a block.
	GasAllocated int64
}

// DeliverResponse converts the outcome of a DeliverTx call into its ABCI
// form. An error always takes precedence over the result.
func DeliverResponse(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := failure("deliver", err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: log}
	}
	if res == nil {
		return abci.ResponseDeliverTx{}
	}
	return abci.ResponseDeliverTx{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    res.Tags,
		GasUsed: res.GasUsed,
	}
}

// CheckResponse converts the outcome of a CheckTx call into its ABCI form.
func CheckResponse(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := failure("check", err, debug)
		return abci.ResponseCheckTx{Code: code, Log: log}
	}
	if res == nil {
		return abci.ResponseCheckTx{}
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}

func failure(phase string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	return code, fmt.Sprintf("cannot %s tx: %s", phase, log)
}

// ParseDeliverResponse is the inverse of DeliverResponse. A failed
// response is turned back into an error of the registered kind, so that
// clients can test it with Is.
func ParseDeliverResponse(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &DeliverResult{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    res.Tags,
		GasUsed: res.GasUsed,
	}, nil
}
