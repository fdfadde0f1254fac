package ledgertest

import "github.com/iov-one/ledger"

// Handler implements a mock of ledger.Handler
//
// Use this handler in your tests. Set CheckErr or DeliverErr to force
// error response. Every call is counted.
type Handler struct {
	checkCall   int
	CheckResult ledger.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult ledger.DeliverResult
	DeliverErr    error
}

var _ ledger.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes the key/value pair and then returns Err. It shows
// whether a failing handler's writes were rolled back.
type WriteHandler struct {
	Key, Value []byte
	Err        error
}

var _ ledger.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &ledger.CheckResult{}, nil
}

func (h WriteHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &ledger.DeliverResult{}, nil
}

// PanicHandler panics with Value on every call.
type PanicHandler struct {
	Value interface{}
}

func (h PanicHandler) Check(ledger.Context, ledger.KVStore, ledger.Tx) (*ledger.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(ledger.Context, ledger.KVStore, ledger.Tx) (*ledger.DeliverResult, error) {
	panic(h.Value)
}

// Decorator is a mock of ledger.Decorator that passes the call through
// unless an error is set. Every call is counted.
type Decorator struct {
	checkCall int
	CheckErr  error

	deliverCall int
	DeliverErr  error
}

var _ ledger.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps given handler with given decorator.
func Decorate(h ledger.Handler, d ledger.Decorator) ledger.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn ledger.Handler
	dc ledger.Decorator
}

var _ ledger.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
