package bech32

import (
	"encoding/hex"
	"testing"

	"github.com/iov-one/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	// bech32 -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`

	want, err := hex.DecodeString("746573742d7061796c6f6164")
	require.NoError(t, err)

	hrp, payload, err := Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, "tiov", hrp)
	assert.Equal(t, want, payload)

	got, err := Encode(hrp, payload)
	require.NoError(t, err)
	assert.Equal(t, enc, got)

	payload, err = DecodeHRP("tiov", enc)
	require.NoError(t, err)
	assert.Equal(t, want, payload)
}

func TestFailures(t *testing.T) {
	cases := map[string]struct {
		run     func() error
		wantErr *errors.Error
	}{
		"broken checksum": {
			run: func() error {
				_, _, err := Decode("tiov1w3jhxapdwpshjmr0v9jqymqq4z")
				return err
			},
			wantErr: errors.ErrInvalidInput,
		},
		"unexpected prefix": {
			run: func() error {
				_, err := DecodeHRP("ledger", "tiov1w3jhxapdwpshjmr0v9jqymqq4y")
				return err
			},
			wantErr: errors.ErrInvalidInput,
		},
		"empty prefix": {
			run: func() error {
				_, err := Encode("", []byte("payload"))
				return err
			},
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.run()
			assert.True(t, tc.wantErr.Is(err), "got %v", err)
		})
	}
}
