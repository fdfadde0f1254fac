package cash

import (
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/ledgertest/assert"
	"github.com/iov-one/ledger/store"
)

func TestIssueCoins(t *testing.T) {
	db := store.MemStore()
	control := NewController(NewBucket())
	addr := ledgertest.NewAddress()

	balance, err := control.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, true, balance.IsZero())

	assert.Nil(t, control.IssueCoins(db, addr, coin.NewAmount(500)))
	assert.Nil(t, control.IssueCoins(db, addr, coin.NewAmount(250)))
	balance, err = control.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewAmount(750), balance)

	max := coin.MustParseAmount("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	assert.IsErr(t, errors.ErrOverflow, control.IssueCoins(db, addr, max))

	assert.IsErr(t, errors.ErrInvalidInput, control.IssueCoins(db, ledger.Address("short"), coin.NewAmount(1)))
}

func TestMoveCoins(t *testing.T) {
	alice := ledgertest.NewAddress()
	bob := ledgertest.NewAddress()
	carol := ledgertest.NewAddress()

	cases := map[string]struct {
		src, dest   ledger.Address
		amount      coin.Amount
		wantErr     *errors.Error
		wantBalance map[string]uint64
	}{
		"move part of the balance": {
			src:         alice,
			dest:        bob,
			amount:      coin.NewAmount(40),
			wantBalance: map[string]uint64{
				alice.String(): 60,
				bob.String():   40,
			},
		},
		"move the whole balance": {
			src:         alice,
			dest:        bob,
			amount:      coin.NewAmount(100),
			wantBalance: map[string]uint64{
				alice.String(): 0,
				bob.String():   100,
			},
		},
		"move to self": {
			src:         alice,
			dest:        alice,
			amount:      coin.NewAmount(10),
			wantBalance: map[string]uint64{
				alice.String(): 100,
			},
		},
		"zero amount": {
			src:     alice,
			dest:    bob,
			amount:  coin.NewAmount(0),
			wantErr: errors.ErrInvalidAmount,
		},
		"too much": {
			src:     alice,
			dest:    bob,
			amount:  coin.NewAmount(101),
			wantErr: errors.ErrInsufficientAmount,
		},
		"empty sender": {
			src:     carol,
			dest:    bob,
			amount:  coin.NewAmount(1),
			wantErr: errors.ErrInsufficientAmount,
		},
		"invalid destination": {
			src:     alice,
			dest:    ledger.Address{1, 2, 3},
			amount:  coin.NewAmount(1),
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			control := NewController(NewBucket())
			assert.Nil(t, control.IssueCoins(db, alice, coin.NewAmount(100)))

			err := control.MoveCoins(db, tc.src, tc.dest, tc.amount)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				balance, err := control.Balance(db, alice)
				assert.Nil(t, err)
				assert.Equal(t, coin.NewAmount(100), balance)
				return
			}
			for addr, want := range tc.wantBalance {
				a, err := ledger.ParseAddress(addr)
				assert.Nil(t, err)
				got, err := control.Balance(db, a)
				assert.Nil(t, err)
				assert.Equal(t, coin.NewAmount(want), got)
			}
		})
	}
}
