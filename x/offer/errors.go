package offer

import "github.com/iov-one/ledger/errors"

// ABCI Response Codes
// offer takes 1010-1020
var (
	// ErrSelfDealing is returned when the recipient of an offer is its
	// creator.
	ErrSelfDealing = errors.Register(1010, "self dealing")
)
