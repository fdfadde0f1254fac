package sigs

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/ledgertest"
)

// StdTx is a signed transaction whose sign bytes are a raw payload.
type StdTx struct {
	ledger.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ ledger.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &ledgertest.Msg{RoutePath: "test/payload"}
	return &StdTx{Tx: &ledgertest.Tx{Msg: msg}, Payload: payload}
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []ledger.Condition
}

var _ ledger.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &ledger.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &ledger.DeliverResult{}, nil
}
