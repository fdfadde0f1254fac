package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/cmd/offerd/app"
	"github.com/iov-one/ledger/errors"
)

const txHeaderSize = 4

// writeTx serializes the transaction. The first bytes written contain the
// size of the serialized transaction so that several transactions can be
// streamed one after another.
func writeTx(w io.Writer, tx *app.Tx) (int, error) {
	b, err := tx.Marshal()
	if err != nil {
		return 0, err
	}

	var size [txHeaderSize]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))

	if n, err := w.Write(size[:]); err != nil {
		return n, err
	}
	if n, err := w.Write(b); err != nil {
		return n + txHeaderSize, err
	}
	return txHeaderSize + len(b), nil
}

// readTx is the opposite of writeTx.
func readTx(r io.Reader) (*app.Tx, int, error) {
	var size [txHeaderSize]byte
	if n, err := io.ReadFull(r, size[:]); err != nil {
		if err == io.EOF {
			return nil, n, errors.Wrap(errors.ErrEmpty, "no input data")
		}
		return nil, n, err
	}
	msgSize := binary.BigEndian.Uint32(size[:])
	raw := make([]byte, msgSize)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, n + txHeaderSize, err
	}

	var tx app.Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, int(msgSize + txHeaderSize), err
	}
	return &tx, int(msgSize + txHeaderSize), nil
}

// env returns the value of the environment variable if set, otherwise the
// fallback.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// flAddress returns a value that is initialized with given default value and
// optionally overwritten by a command line argument. If the default value
// cannot be parsed the process is terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *ledger.Address {
	var a ledger.Address
	if defaultVal != "" {
		var err error
		a, err = ledger.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

func defaultKeyPath() string {
	return env("OFFERCLI_PRIV_KEY", os.Getenv("HOME")+"/.offerd.priv.key")
}

func defaultTmAddr() string {
	return env("OFFERCLI_TM_ADDR", "http://localhost:26657")
}
