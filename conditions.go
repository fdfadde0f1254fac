package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/ledger/crypto/bech32"
	"github.com/iov-one/ledger/errors"
)

const (
	// AddressLength is the length of all addresses.
	AddressLength = 20

	// AddressHRP is the human readable part of the bech32 address form.
	AddressHRP = "ledger"
)

// it must have (?s) flags, otherwise it errors when last section contains 0x20 (newline)
var perm = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition is a specially formatted array, containing
// information on who can authorize an action.
// It is of the format:
//
//	sprintf("%s/%s/%s", extension, type, data)
type Condition []byte

// NewCondition builds a condition owned by the given extension.
func NewCondition(ext, typ string, data []byte) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// Parse will extract the sections from the Condition bytes
// and verify it is properly formatted
func (c Condition) Parse() (string, string, []byte, error) {
	chunks := perm.FindSubmatch(c)
	if len(chunks) == 0 {
		return "", "", nil, errors.ErrInvalidInput.Newf("condition: %X", []byte(c))
	}
	// returns [all, match1, match2, match3]
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Address will convert a Condition into an Address
func (c Condition) Address() Address {
	return NewAddress(c)
}

// Equals checks if two conditions are the same
func (c Condition) Equals(b Condition) bool {
	return bytes.Equal(c, b)
}

// String keeps the extension and type in ascii and hex-encodes the data.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// Validate returns an error if the Condition is not the proper format
func (c Condition) Validate() error {
	if !perm.Match(c) {
		return errors.ErrInvalidInput.Newf("condition: %X", []byte(c))
	}
	return nil
}

// Address represents a collision-free, one-way digest of a Condition.
//
// It will be of size AddressLength.
type Address []byte

// NewAddress hashes and truncates into the proper size
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return h[:AddressLength]
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.ErrInvalidInput.Newf("address: %X", []byte(a))
	}
	return nil
}

// String returns the bech32 representation of the address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	s, err := bech32.Encode(AddressHRP, a)
	if err != nil {
		return strings.ToUpper(hex.EncodeToString(a))
	}
	return s
}

// MarshalJSON uses the bech32 form instead of the default base64.
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if enc == "" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Set updates this address value to what is provided. This method implements
// flag.Value interface.
func (a *Address) Set(enc string) error {
	val, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = val
	return nil
}

// ParseAddress decodes the textual form of an address. Bech32 is the
// default, "hex:" and "cond:" prefixes select another format.
//
//	hex:0102030405060708090A0B0C0D0E0F1011121314
//	cond:sigs/ed25519/0A0B
func ParseAddress(enc string) (Address, error) {
	var addr Address
	chunks := strings.SplitN(enc, ":", 2)
	switch {
	case len(chunks) == 1:
		payload, err := bech32.DecodeHRP(AddressHRP, enc)
		if err != nil {
			return nil, err
		}
		addr = payload
	case chunks[0] == "hex":
		val, err := hex.DecodeString(chunks[1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidInput, "cannot decode hex")
		}
		addr = val
	case chunks[0] == "cond":
		args := strings.SplitN(chunks[1], "/", 3)
		if len(args) != 3 {
			return nil, errors.ErrInvalidInput.New("invalid condition format")
		}
		data, err := hex.DecodeString(args[2])
		if err != nil {
			return nil, errors.ErrInvalidInput.Newf("malformed condition data: %s", err)
		}
		c := NewCondition(args[0], args[1], data)
		if err := c.Validate(); err != nil {
			return nil, err
		}
		addr = c.Address()
	default:
		return nil, errors.ErrInvalidType.Newf("unknown format %q", chunks[0])
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
