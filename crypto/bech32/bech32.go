/*
Package bech32 converts between raw bytes and the bech32 text form used to
display addresses. The checksum and 5 bit grouping come from btcutil; this
package only regroups the payload so callers can work with plain bytes.
*/
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/ledger/errors"
)

// Decode returns the human readable part and the payload of a bech32
// string.
func Decode(enc string) (string, []byte, error) {
	hrp, data, err := bech32.Decode(enc)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInvalidInput, "convert bits: %s", err)
	}
	return hrp, payload, nil
}

// DecodeHRP decodes enc and requires its human readable part to be hrp.
func DecodeHRP(hrp, enc string) ([]byte, error) {
	got, payload, err := Decode(enc)
	if err != nil {
		return nil, err
	}
	if got != hrp {
		return nil, errors.ErrInvalidInput.Newf("unexpected prefix %q, want %q", got, hrp)
	}
	return payload, nil
}

// Encode returns the bech32 form of payload under the given human readable
// part.
func Encode(hrp string, payload []byte) (string, error) {
	if hrp == "" {
		return "", errors.Wrap(errors.ErrEmpty, "human readable part")
	}
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "convert bits: %s", err)
	}
	enc, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "bech32 encode: %s", err)
	}
	return enc, nil
}
