package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/ledger"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// without the program name and the command name. It must parse the arguments
// itself and read and write only to the provided input and output.
//
// Keep each command small. Building, signing and submitting a transaction are
// separate commands that are combined using a unix pipe:
//
//	$ offercli create-offer -recipient $RCPT -amount 100 \
//	    | offercli sign \
//	    | offercli submit
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"accept-offer": cmdAcceptOffer,
	"cancel-offer": cmdCancelOffer,
	"create-offer": cmdCreateOffer,
	"keyaddr":      cmdKeyaddr,
	"keygen":       cmdKeygen,
	"last-offer":   cmdLastOffer,
	"query-offer":  cmdQueryOffer,
	"query-wallet": cmdQueryWallet,
	"send-tokens":  cmdSendTokens,
	"sign":         cmdSignTransaction,
	"submit":       cmdSubmitTransaction,
	"version":      cmdVersion,
	"view":         cmdTransactionView,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the offerd application.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, ledger.Version())
	return err
}
