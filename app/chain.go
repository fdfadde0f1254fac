package app

import (
	"reflect"

	"github.com/iov-one/ledger"
)

// Decorators is a stack of decorators waiting for the handler they wrap.
// The first decorator is the outermost one, it sees the transaction first
// and the result last.
//
//	app.ChainDecorators(
//		utils.NewRecovery(),
//		utils.NewLogging(),
//		sigs.NewDecorator(),
//	).WithHandler(router)
type Decorators []ledger.Decorator

// ChainDecorators starts a new stack.
func ChainDecorators(chain ...ledger.Decorator) Decorators {
	return Decorators(nil).Chain(chain...)
}

// Chain returns a new stack with the given decorators appended. The
// receiver is never modified, so a common base can be extended in several
// ways. Nil decorators are skipped, which allows optional ones to be
// passed inline.
func (d Decorators) Chain(chain ...ledger.Decorator) Decorators {
	next := make(Decorators, 0, len(d)+len(chain))
	next = append(next, d...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			next = append(next, dec)
		}
	}
	return next
}

func isNilDecorator(d ledger.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with the final handler, usually a Router.
func (d Decorators) WithHandler(h ledger.Handler) ledger.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = decorated{dec: d[i], next: h}
	}
	return h
}

// decorated is a handler that runs dec around next.
type decorated struct {
	dec  ledger.Decorator
	next ledger.Handler
}

var _ ledger.Handler = decorated{}

func (d decorated) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	return d.dec.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	return d.dec.Deliver(ctx, db, tx, d.next)
}
