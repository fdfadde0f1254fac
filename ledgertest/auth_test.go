package ledgertest

import (
	"context"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/ledgertest/assert"
)

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()

	auth := &Auth{Signer: a, Signers: []ledger.Condition{b}}
	ctx := context.Background()
	assert.Equal(t, []ledger.Condition{b, a}, auth.GetConditions(ctx))
	assert.Equal(t, true, auth.HasAddress(ctx, a.Address()))
	assert.Equal(t, true, auth.HasAddress(ctx, b.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, c.Address()))
	assert.Equal(t, false, (&Auth{}).HasAddress(ctx, a.Address()))
}

func TestCtxAuth(t *testing.T) {
	a, b := NewCondition(), NewCondition()
	foo := &CtxAuth{Key: "foo"}
	bar := &CtxAuth{Key: "bar"}

	ctx := foo.SetConditions(context.Background(), a)
	assert.Equal(t, []ledger.Condition{a}, foo.GetConditions(ctx))
	assert.Equal(t, true, foo.HasAddress(ctx, a.Address()))
	assert.Equal(t, false, foo.HasAddress(ctx, b.Address()))
	assert.Nil(t, bar.GetConditions(ctx))
}

func TestDecorate(t *testing.T) {
	var h Handler
	var d Decorator
	handler := Decorate(&h, &d)

	_, err := handler.Check(context.Background(), nil, &Tx{})
	assert.Nil(t, err)
	_, err = handler.Deliver(context.Background(), nil, &Tx{})
	assert.Nil(t, err)
	assert.Equal(t, 2, h.CallCount())
	assert.Equal(t, 2, d.CallCount())

	d = Decorator{CheckErr: errFail}
	_, err = handler.Check(context.Background(), nil, &Tx{})
	assert.Equal(t, errFail, err)
	assert.Equal(t, 1, h.CheckCallCount())
}

var errFail = &failErr{}

type failErr struct{}

func (*failErr) Error() string { return "fail" }
