/*
Package ledgertest provides mocks and helpers shared by the tests of all
ledger packages. Nothing in here should be used by production code.
*/
package ledgertest

import (
	"context"
	"fmt"

	"github.com/iov-one/ledger"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions.
// You can use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer ledger.Condition

	// Signers represents an authentication of multiple signers.
	Signers []ledger.Condition
}

func (a *Auth) GetConditions(ledger.Context) []ledger.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. Only
	// string type keys are allowed.
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx ledger.Context, permissions ...ledger.Condition) ledger.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), permissions)
}

func (a *CtxAuth) GetConditions(ctx ledger.Context) []ledger.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]ledger.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []ledger.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
