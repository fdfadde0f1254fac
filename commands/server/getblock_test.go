package server

import (
	"bytes"
	"testing"

	"github.com/iov-one/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGetBlockArgs(t *testing.T) {
	path, height, err := parseGetBlockArgs([]string{"/tmp/data/blockstore.db", "-height", "7"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/data/blockstore.db", path)
	assert.Equal(t, int64(7), height)

	_, height, err = parseGetBlockArgs([]string{"/tmp/data/blockstore.db"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), height)

	_, _, err = parseGetBlockArgs(nil)
	assert.True(t, errors.ErrEmpty.Is(err))

	_, _, err = parseGetBlockArgs([]string{"x.db", "-height", "-2"})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestGetBlockRejectsBadPath(t *testing.T) {
	var out bytes.Buffer
	err := GetBlockCmd(&out, []string{"/tmp/data/blockstore"})
	assert.True(t, errors.ErrInvalidInput.Is(err))
	assert.Equal(t, 0, out.Len())
}
