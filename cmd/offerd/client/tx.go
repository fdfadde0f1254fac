package client

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/cmd/offerd/app"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/x/cash"
	"github.com/iov-one/ledger/x/offer"
	"github.com/iov-one/ledger/x/sigs"
)

// Tx is all the interfaces we need rolled into one
type Tx interface {
	ledger.Tx
	ledger.Marshaller
	sigs.SignedTx
	AppendSignature(sig *sigs.StdSignature)
}

type signableTx struct {
	*app.Tx
}

var _ Tx = signableTx{}

func (m signableTx) AppendSignature(sig *sigs.StdSignature) {
	m.Tx.Signatures = append(m.Tx.Signatures, sig)
}

func newTx(msg ledger.Msg) signableTx {
	return signableTx{&app.Tx{Msg: msg}}
}

// BuildSendTx will create an unsigned tx to move tokens
func BuildSendTx(src, dest ledger.Address, amount coin.Amount, memo string) Tx {
	return newTx(&cash.SendMsg{
		Src:    src,
		Dest:   dest,
		Amount: amount,
		Memo:   memo,
	})
}

// BuildCreateOfferTx will create an unsigned tx escrowing amount for the
// recipient. The signer of the tx is the creator.
func BuildCreateOfferTx(recipient ledger.Address, amount coin.Amount) Tx {
	return newTx(&offer.CreateMsg{
		Recipient: recipient,
		Amount:    amount,
	})
}

// BuildAcceptOfferTx will create an unsigned tx accepting the offer. It
// must be signed by the recipient.
func BuildAcceptOfferTx(id uint64) Tx {
	return newTx(&offer.AcceptMsg{OfferID: id})
}

// BuildCancelOfferTx will create an unsigned tx cancelling the offer. It
// must be signed by the creator.
func BuildCancelOfferTx(id uint64) Tx {
	return newTx(&offer.CancelMsg{OfferID: id})
}

// SignTx modifies the tx in-place, adding signatures
func SignTx(tx Tx, signer *PrivateKey, chainID string, nonce int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, nonce)
	if err != nil {
		return err
	}
	tx.AppendSignature(sig)
	return nil
}

// ParseTx will load a serialized tx into a format we can read
func ParseTx(data []byte) (*app.Tx, error) {
	var tx app.Tx
	if err := tx.Unmarshal(data); err != nil {
		return nil, err
	}
	return &tx, nil
}
