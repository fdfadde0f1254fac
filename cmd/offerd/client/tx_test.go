package client

import (
	"testing"

	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/ledgertest/assert"
	"github.com/iov-one/ledger/x/offer"
	"github.com/iov-one/ledger/x/sigs"
)

func TestSignAndParseTx(t *testing.T) {
	signer := GenPrivateKey()
	rcpt := GenPrivateKey().PublicKey().Address()

	tx := BuildCreateOfferTx(rcpt, coin.NewAmount(77))
	assert.Nil(t, SignTx(tx, signer, "test-chain", 3))
	assert.Equal(t, 1, len(tx.GetSignatures()))
	assert.Equal(t, int64(3), tx.GetSignatures()[0].Sequence)

	raw, err := tx.Marshal()
	assert.Nil(t, err)
	parsed, err := ParseTx(raw)
	assert.Nil(t, err)

	msg, err := parsed.GetMsg()
	assert.Nil(t, err)
	create, ok := msg.(*offer.CreateMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	assert.Equal(t, rcpt, create.Recipient)
	assert.Equal(t, coin.NewAmount(77), create.Amount)

	// the signature verifies against the parsed tx
	signBytes, err := sigs.BuildSignBytesTx(parsed, "test-chain", 3)
	assert.Nil(t, err)
	assert.Equal(t, true, signer.PublicKey().Verify(signBytes, parsed.Signatures[0].Signature))
}

func TestBuildTxPaths(t *testing.T) {
	cases := map[string]struct {
		tx   Tx
		path string
	}{
		"send":   {tx: BuildSendTx(GenPrivateKey().PublicKey().Address(), GenPrivateKey().PublicKey().Address(), coin.NewAmount(1), ""), path: "cash/send"},
		"create": {tx: BuildCreateOfferTx(GenPrivateKey().PublicKey().Address(), coin.NewAmount(1)), path: "offer/create"},
		"accept": {tx: BuildAcceptOfferTx(1), path: "offer/accept"},
		"cancel": {tx: BuildCancelOfferTx(1), path: "offer/cancel"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg, err := tc.tx.GetMsg()
			assert.Nil(t, err)
			assert.Equal(t, tc.path, msg.Path())
			assert.Nil(t, msg.Validate())
		})
	}
}
