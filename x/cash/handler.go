package cash

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x"
)

// RegisterRoutes registers the send handler. Reserved addresses belong to
// other extensions, like the offer custody wallet, and cannot receive a
// send.
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, control Controller, reserved ...ledger.Address) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control, reserved...))
}

// RegisterQuery exposes wallets under "/wallets".
func RegisterQuery(qr ledger.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler moves tokens between two wallets. Only the owner of the
// source wallet may sign.
type SendHandler struct {
	auth     x.Authenticator
	control  Controller
	reserved []ledger.Address
}

var _ ledger.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller, reserved ...ledger.Address) SendHandler {
	return SendHandler{
		auth:     auth,
		control:  control,
		reserved: reserved,
	}
}

func (h SendHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Src, msg.Dest, msg.Amount); err != nil {
		return nil, err
	}
	res := &ledger.DeliverResult{}
	res.AddTag([]byte("action"), []byte(msg.Path()))
	res.AddTag([]byte("src"), []byte(msg.Src.String()))
	res.AddTag([]byte("dest"), []byte(msg.Dest.String()))
	return res, nil
}

func (h SendHandler) validate(ctx ledger.Context, tx ledger.Tx) (*SendMsg, error) {
	var msg *SendMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	for _, addr := range h.reserved {
		if msg.Dest.Equals(addr) {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is a reserved wallet", addr)
		}
	}
	return msg, nil
}
