package client

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"strings"

	"github.com/iov-one/ledger/crypto"
	"github.com/iov-one/ledger/errors"
	"golang.org/x/crypto/ed25519"
)

// KeyPerm is the file permissions for saved private keys
const KeyPerm = 0600

// PrivateKey is the key type used to sign transactions.
type PrivateKey = crypto.PrivateKey

// GenPrivateKey creates a new random key.
// Alias to simplify usage.
func GenPrivateKey() *PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// DerivePrivateKey returns the key at the derivation path of a hex encoded
// master seed. An empty path uses the default account path.
func DerivePrivateKey(hexSeed, path string) (*PrivateKey, error) {
	if path == "" {
		path = crypto.DefaultDerivationPath
	}
	return crypto.DeriveEd25519Hex(hexSeed, path)
}

// DecodePrivateKey reads a hex string created by EncodePrivateKey
// and returns the original PrivateKey
func DecodePrivateKey(hexKey string) (*PrivateKey, error) {
	data, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "key is not hex")
	}
	if len(data) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid key length %d", len(data))
	}
	return &PrivateKey{Ed25519: data}, nil
}

// EncodePrivateKey stores the private key as a hex string
// that can be saved and later loaded
func EncodePrivateKey(key *PrivateKey) (string, error) {
	if key == nil || len(key.Ed25519) != ed25519.PrivateKeySize {
		return "", errors.Wrap(errors.ErrInvalidInput, "invalid key")
	}
	return hex.EncodeToString(key.Ed25519), nil
}

// LoadPrivateKey will load a private key from a file,
// Which was previously written by SavePrivateKey
func LoadPrivateKey(filename string) (*PrivateKey, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(errors.ErrNotFound, err.Error())
	}
	return DecodePrivateKey(string(raw))
}

// SavePrivateKey will encode the private key in hex and write to
// the named file
//
// Refuses to overwrite a file unless force is true
func SavePrivateKey(key *PrivateKey, filename string, force bool) error {
	if err := canWrite(filename, force); err != nil {
		return err
	}
	hexKey, err := EncodePrivateKey(key)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, []byte(hexKey), KeyPerm)
}

// canWrite will return an error if the file cannot be written,
// or if it exists and force is false
func canWrite(filename string, force bool) error {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if info.IsDir() {
		return errors.Wrapf(errors.ErrInvalidInput, "%s is a directory", filename)
	}
	if !force {
		return errors.Wrapf(errors.ErrDuplicate, "refusing to overwrite %s", filename)
	}
	return nil
}
