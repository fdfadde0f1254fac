package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/cmd/offerd/app"
	"github.com/iov-one/ledger/commands"
	"github.com/iov-one/ledger/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".offerd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("offerd")
	fmt.Println("         Escrowed offer ledger node")
	fmt.Println("")
	fmt.Println("help     Print this message")
	fmt.Println("init     Initialize app options in genesis file")
	fmt.Println("start    Run the abci server")
	fmt.Println("validate Check genesis files load into the application")
	fmt.Println("getblock Extract a block from a tendermint blockstore.db")
	fmt.Println("testgen  Write example encodings for client tests")
	fmt.Println("version  Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.offerd")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "offerd")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(app.Initializers(), rest)
	case "getblock":
		err = server.GetBlockCmd(os.Stdout, rest)
	case "testgen":
		err = commands.TestGenCmd(app.TxCodec, app.Examples(), rest)
	case "version":
		fmt.Println(ledger.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
