package app

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/sigs"
)

// Tx is the only transaction type the application accepts: a single
// message signed by any number of keys.
type Tx struct {
	Msg        ledger.Msg           `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures,omitempty"`
}

// make sure tx fulfills all interfaces
var (
	_ ledger.Tx         = (*Tx)(nil)
	_ ledger.Marshaller = (*Tx)(nil)
	_ sigs.SignedTx     = (*Tx)(nil)
)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (ledger.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of the transaction.
func (tx *Tx) GetMsg() (ledger.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// signatures are never part of what is signed
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

// Marshal encodes the transaction with the application codec.
func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := TxCodec.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return bz, nil
}

// Unmarshal decodes a transaction encoded by Marshal.
func (tx *Tx) Unmarshal(bz []byte) error {
	if len(bz) == 0 {
		return errors.Wrap(errors.ErrEmpty, "transaction")
	}
	if err := TxCodec.UnmarshalBinaryBare(bz, tx); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}
