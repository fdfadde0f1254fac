/*
Package commands holds helpers shared by the daemon and client binaries.
*/
package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/ledger/errors"
	amino "github.com/tendermint/go-amino"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      interface{}
}

// TestGenCmd generates sample amino and json encodings
// of various objects to test clients against.
func TestGenCmd(cdc *amino.Codec, examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	for _, ex := range examples {
		// write json data
		js, err := json.MarshalIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidInput, "%s json: %s", ex.Filename, err)
		}
		jsFile := filepath.Join(outdir, ex.Filename+".json")
		if err := ioutil.WriteFile(jsFile, js, 0644); err != nil {
			return err
		}

		// write amino data
		bin, err := cdc.MarshalBinaryBare(ex.Obj)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidInput, "%s amino: %s", ex.Filename, err)
		}
		binFile := filepath.Join(outdir, ex.Filename+".bin")
		if err := ioutil.WriteFile(binFile, bin, 0644); err != nil {
			return err
		}
	}
	return nil
}
