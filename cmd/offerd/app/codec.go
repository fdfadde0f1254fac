package app

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/x/cash"
	"github.com/iov-one/ledger/x/offer"
	amino "github.com/tendermint/go-amino"
)

// TxCodec encodes transactions on the wire. Every message the router
// accepts must be registered here under its path.
var TxCodec = NewTxCodec()

// NewTxCodec returns a codec knowing all messages of the application.
func NewTxCodec() *amino.Codec {
	cdc := amino.NewCodec()
	cdc.RegisterInterface((*ledger.Msg)(nil), nil)
	cdc.RegisterConcrete(&cash.SendMsg{}, "cash/send", nil)
	cdc.RegisterConcrete(&offer.CreateMsg{}, "offer/create", nil)
	cdc.RegisterConcrete(&offer.AcceptMsg{}, "offer/accept", nil)
	cdc.RegisterConcrete(&offer.CancelMsg{}, "offer/cancel", nil)
	cdc.Seal()
	return cdc
}
