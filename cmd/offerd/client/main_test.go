package client

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/cmd/offerd/app"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/commands/server"
	"github.com/iov-one/ledger/x/cash"
	abci "github.com/tendermint/tendermint/abci/types"
	cfg "github.com/tendermint/tendermint/config"
	"github.com/tendermint/tendermint/libs/log"
	nm "github.com/tendermint/tendermint/node"
	rpctest "github.com/tendermint/tendermint/rpc/test"
	tm "github.com/tendermint/tendermint/types"
)

// configuration for genesis
var initBalance = coin.NewAmount(100200300)

// adjust this to get debug output
var logger = log.NewNopLogger() // log.NewTMLogger(log.NewSyncWriter(os.Stdout))

// useful values for test cases
var node *nm.Node
var faucet *PrivateKey

func getChainID() string {
	return rpctest.GetConfig().ChainID()
}

func TestMain(m *testing.M) {
	faucet = GenPrivateKey()

	config := rpctest.GetConfig()
	config.Moniker = "SetInTestMain"

	// set up our application
	offerd, err := initApp(config, faucet.PublicKey().Address())
	if err != nil {
		fmt.Printf("cannot initialize application: %+v\n", err)
		os.Exit(1)
	}

	// run the app inside a tendermint instance
	node = rpctest.StartTendermint(offerd)
	time.Sleep(100 * time.Millisecond) // time to setup app context
	code := m.Run()

	// and shut down proper at the end
	_ = node.Stop()
	node.Wait()
	os.Exit(code)
}

func initApp(config *cfg.Config, addr ledger.Address) (abci.Application, error) {
	opts := &server.Options{
		Home:   config.RootDir,
		Logger: logger,
		Store:  server.DefaultConfig().Store,
	}
	offerd, err := app.GenerateApp(opts)
	if err != nil {
		return nil, err
	}

	// generate genesis file...
	err = initGenesis(config.GenesisFile(), addr)
	return offerd, err
}

func initGenesis(filename string, addr ledger.Address) error {
	doc, err := tm.GenesisDocFromFile(filename)
	if err != nil {
		return err
	}
	appState, err := json.Marshal(map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Address: addr, Amount: initBalance},
		},
	})
	if err != nil {
		return fmt.Errorf("serialize state: %s", err)
	}
	doc.AppState = appState
	return doc.SaveAs(filename)
}
