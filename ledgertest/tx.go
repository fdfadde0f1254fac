package ledgertest

import "github.com/iov-one/ledger"

// Tx represents a ledger transaction.
// It is a mock that returns given message and error.
type Tx struct {
	Msg ledger.Msg
	Err error
}

var _ ledger.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (ledger.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a message routed by its path only. ValidateErr is returned by
// Validate.
type Msg struct {
	RoutePath   string
	ValidateErr error
}

var _ ledger.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.ValidateErr
}
