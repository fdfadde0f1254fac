package offer

import (
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/ledgertest/assert"
)

func TestMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     ledger.Msg
		wantErr *errors.Error
	}{
		"create": {
			msg: &CreateMsg{Recipient: ledgertest.NewAddress(), Amount: coin.NewAmount(1)},
		},
		"create with zero amount": {
			msg:     &CreateMsg{Recipient: ledgertest.NewAddress()},
			wantErr: errors.ErrInvalidAmount,
		},
		"zero amount is reported before a bad recipient": {
			msg:     &CreateMsg{Recipient: ledger.Address("short")},
			wantErr: errors.ErrInvalidAmount,
		},
		"create without recipient": {
			msg:     &CreateMsg{Amount: coin.NewAmount(1)},
			wantErr: errors.ErrInvalidInput,
		},
		"accept": {
			msg: &AcceptMsg{OfferID: 1},
		},
		"accept without id": {
			msg:     &AcceptMsg{},
			wantErr: errors.ErrInvalidInput,
		},
		"cancel": {
			msg: &CancelMsg{OfferID: 12},
		},
		"cancel without id": {
			msg:     &CancelMsg{},
			wantErr: errors.ErrInvalidInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.msg.Validate())
		})
	}
}

func TestMsgPath(t *testing.T) {
	assert.Equal(t, "offer/create", CreateMsg{}.Path())
	assert.Equal(t, "offer/accept", AcceptMsg{}.Path())
	assert.Equal(t, "offer/cancel", CancelMsg{}.Path())
}
