package ledgertest

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/crypto"
)

// NewKey returns a new random ed25519 key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a new random key.
func NewCondition() ledger.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the address of a new random key.
func NewAddress() ledger.Address {
	return NewCondition().Address()
}
