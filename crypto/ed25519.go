/*
Package crypto holds the keys used to sign ledger transactions. Only
ed25519 is supported. Public keys produce the condition that the sigs
extension adds to the context once a signature is verified.
*/
package crypto

import (
	"encoding/hex"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the Condition of all signature keys.
const ExtensionName = "sigs"

// PubKey verifies signatures and names its owner.
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() ledger.Condition
}

// Signer is a private key that can produce signatures.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ PubKey = (*PublicKey)(nil)

// Verify returns true if the signature of the message was made with the
// matching private key.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition is the authorization this key grants once a signature was
// verified. An empty key has no condition.
func (p *PublicKey) Condition() ledger.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return ledger.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address of the account controlled by this key.
func (p *PublicKey) Address() ledger.Address {
	return p.Condition().Address()
}

// Validate checks the key size.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInvalidInput, "invalid ed25519 public key")
	}
	return nil
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

var _ Signer = (*PrivateKey)(nil)

// Sign produces the signature of the message.
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInvalidInput, "invalid ed25519 private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the public part of this key.
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

// Validate checks the signature size.
func (s *Signature) Validate() error {
	if s == nil || len(s.Ed25519) != ed25519.SignatureSize {
		return errors.Wrap(errors.ErrInvalidInput, "invalid ed25519 signature")
	}
	return nil
}

// GenPrivKeyEd25519 creates a new random key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will properly create a private key from a seed.
// The seed must be 32 bytes.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

// DefaultDerivationPath is the SLIP-0010 path used for the first ledger
// account.
const DefaultDerivationPath = "m/44'/234'/0'"

// DeriveEd25519 derives a private key from a master seed along a hardened
// SLIP-0010 path, eg. m/44'/234'/0'.
func DeriveEd25519(seed []byte, path string) (*PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "derive %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}

// DeriveEd25519Hex is DeriveEd25519 for a hex encoded seed.
func DeriveEd25519Hex(hexSeed, path string) (*PrivateKey, error) {
	seed, err := hex.DecodeString(hexSeed)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "seed is not hex")
	}
	return DeriveEd25519(seed, path)
}
