package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// GenesisFile is the tendermint genesis, relative to the home directory.
	GenesisFile = "config/genesis.json"

	appStateKey = "app_state"
)

// GenOptions can parse command-line and flag to
// generate default app_options for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd adds the application state to a genesis file created by
// `tendermint init` and writes a default app.toml next to it.
//
// An existing app_state is only replaced when -f is the first argument.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	force := false
	if len(args) > 0 && args[0] == "-f" {
		force = true
		args = args[1:]
	}

	genFile := filepath.Join(home, GenesisFile)
	if _, err := os.Stat(genFile); err != nil {
		return errors.Wrapf(errors.ErrNotFound, "%s (run tendermint init first)", genFile)
	}

	options, err := gen(args)
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, options, force); err != nil {
		return err
	}
	logger.Info("App state written to genesis", "path", genFile)

	written, err := WriteConfig(home, DefaultConfig())
	if err != nil {
		return errors.Wrap(err, "cannot write app config")
	}
	if written {
		logger.Info("Default app config written", "path", filepath.Join(home, ConfigFile))
	}
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage, force bool) error {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot parse %s: %s", filename, err)
	}

	if state, ok := doc[appStateKey]; ok && !force && !isEmptyState(state) {
		return errors.Wrap(errors.ErrDuplicate, "app_state already set, use -f to overwrite")
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}

func isEmptyState(state json.RawMessage) bool {
	switch string(state) {
	case "", "null", "{}", `""`:
		return true
	}
	return false
}
