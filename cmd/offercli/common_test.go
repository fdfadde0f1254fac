package main

import (
	"bytes"
	"testing"

	"github.com/iov-one/ledger/cmd/offerd/app"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/crypto"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/offer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadTxStream(t *testing.T) {
	rcpt := crypto.GenPrivKeyEd25519().PublicKey().Address()
	txs := []*app.Tx{
		{Msg: &offer.CreateMsg{Recipient: rcpt, Amount: coin.NewAmount(7)}},
		{Msg: &offer.AcceptMsg{OfferID: 3}},
	}

	var buf bytes.Buffer
	for _, tx := range txs {
		_, err := writeTx(&buf, tx)
		require.NoError(t, err)
	}

	for _, want := range txs {
		got, _, err := readTx(&buf)
		require.NoError(t, err)
		assert.Equal(t, want.Msg, got.Msg)
	}

	_, _, err := readTx(&buf)
	assert.True(t, errors.ErrEmpty.Is(err), "got %v", err)
}

func TestReadTxTruncated(t *testing.T) {
	var buf bytes.Buffer
	_, err := writeTx(&buf, &app.Tx{Msg: &offer.CancelMsg{OfferID: 1}})
	require.NoError(t, err)

	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-1])
	_, _, err = readTx(truncated)
	assert.Error(t, err)
}
