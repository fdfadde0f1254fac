package x

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

// Authenticator extracts the identity of the caller from the context.
// Handlers receive it in their constructor, so the signature scheme can be
// swapped without touching the extension.
type Authenticator interface {
	// GetConditions returns all conditions fulfilled by the transaction,
	// the main signer first.
	GetConditions(ledger.Context) []ledger.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(ledger.Context, ledger.Address) bool
}

// MultiAuth combines several authenticators. Conditions are reported in
// the order the authenticators were chained.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

func (m MultiAuth) GetConditions(ctx ledger.Context) []ledger.Condition {
	var res []ledger.Condition
	for _, impl := range m {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

func (m MultiAuth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition if any, otherwise nil.
func MainSigner(ctx ledger.Context, auth Authenticator) ledger.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// Signer returns the address of the main signer. Operations that act on
// behalf of the caller, like creating or releasing an offer, use it as the
// caller identity.
func Signer(ctx ledger.Context, auth Authenticator) (ledger.Address, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return signer.Address(), nil
}
