package server

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/iov-one/ledger/errors"
	amino "github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/blockchain"
	dbm "github.com/tendermint/tendermint/libs/db"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
)

var blockCdc = amino.NewCodec()

func init() {
	ctypes.RegisterAmino(blockCdc)
}

func parseGetBlockArgs(args []string) (string, int64, error) {
	if len(args) == 0 {
		return "", 0, errors.Wrap(errors.ErrEmpty, "Usage: cmd getblock <path to blockstore.db> [-height=H]")
	}
	getBlockFlags := flag.NewFlagSet("getblock", flag.ContinueOnError)
	height := getBlockFlags.Int64("height", 0, "height of the block to extract (default latest)")
	if err := getBlockFlags.Parse(args[1:]); err != nil {
		return "", 0, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if *height < 0 {
		return "", 0, errors.Wrap(errors.ErrInvalidInput, "height must not be negative")
	}
	return args[0], *height, nil
}

// GetBlockCmd extracts a block from a tendermint blockstore.db and writes
// it as json to out. It takes the last block unless -height is given.
func GetBlockCmd(out io.Writer, args []string) error {
	dbPath, height, err := parseGetBlockArgs(args)
	if err != nil {
		return err
	}
	db, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	store := blockchain.NewBlockStore(db)
	if height == 0 {
		height = store.Height()
	}
	return printBlock(out, store, height)
}

// openDB opens a goleveldb directory. Tendermint names them <name>.db
// and wants the name and parent directory separately.
func openDB(path string) (dbm.DB, error) {
	path = filepath.Clean(path)
	if !strings.HasSuffix(path, ".db") {
		return nil, errors.Wrap(errors.ErrInvalidInput, "database directory must end with .db")
	}
	dir, name := filepath.Split(strings.TrimSuffix(path, ".db"))
	if name == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "no database name in %s", path)
	}
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return db, nil
}

func printBlock(out io.Writer, store *blockchain.BlockStore, height int64) error {
	block := store.LoadBlock(height)
	if block == nil {
		return errors.Wrapf(errors.ErrNotFound, "no block for height %d", height)
	}
	js, err := blockCdc.MarshalJSONIndent(block, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	_, err = fmt.Fprintln(out, string(js))
	return err
}
