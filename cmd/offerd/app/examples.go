package app

import (
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/commands"
	"github.com/iov-one/ledger/crypto"
	"github.com/iov-one/ledger/x/cash"
	"github.com/iov-one/ledger/x/offer"
	"github.com/iov-one/ledger/x/sigs"
)

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()
	user := &sigs.UserData{
		Pubkey:   pub,
		Sequence: 17,
	}

	dst := crypto.GenPrivKeyEd25519().PublicKey().Address()
	wallet := &cash.Wallet{Balance: coin.NewAmount(50000)}
	sendMsg := &cash.SendMsg{
		Src:    pub.Address(),
		Dest:   dst,
		Amount: coin.NewAmount(250),
		Memo:   "Test payment",
	}

	created := &offer.Offer{
		ID:        1,
		Creator:   pub.Address(),
		Recipient: dst,
		Amount:    coin.NewAmount(100),
		Status:    offer.StatusActive,
	}
	createMsg := &offer.CreateMsg{Recipient: dst, Amount: coin.NewAmount(100)}
	acceptMsg := &offer.AcceptMsg{OfferID: 1}
	cancelMsg := &offer.CancelMsg{OfferID: 1}

	unsigned := Tx{Msg: createMsg}
	tx := unsigned
	sig, err := sigs.SignTx(priv, &tx, "test-123", 17)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "priv_key", Obj: priv},
		{Filename: "pub_key", Obj: pub},
		{Filename: "user", Obj: user},
		{Filename: "wallet", Obj: wallet},
		{Filename: "offer", Obj: created},
		{Filename: "send_msg", Obj: sendMsg},
		{Filename: "create_msg", Obj: createMsg},
		{Filename: "accept_msg", Obj: acceptMsg},
		{Filename: "cancel_msg", Obj: cancelMsg},
		{Filename: "unsigned_tx", Obj: &unsigned},
		{Filename: "signed_tx", Obj: &tx},
	}
}
