package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/cmd/offerd/client"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x/offer"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it.

For certain transactions response is written out. Submitting an offer creation
prints the ID of the new offer.

Make sure the transaction is signed before submitting it.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTmAddr(),
			"Tendermint node address. You can use OFFERCLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	resp := c.BroadcastTx(tx)
	if err := resp.IsError(); err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}

	pretty, err := extractResponse(tx, resp.Response.DeliverTx.Data, formatters)
	if err != nil {
		return fmt.Errorf("cannot extract response: %s", err)
	}
	if pretty != "" {
		_, err = fmt.Fprintln(output, pretty)
	}
	return err
}

// extractResponse returns a human readable representation of the response
// data of the submitted transaction. It returns an empty string if there is
// no formatter registered for the message.
func extractResponse(tx ledger.Tx, respData []byte, fmts map[string]func([]byte) (string, error)) (string, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return "", fmt.Errorf("cannot extract message from transaction: %s", err)
	}
	format, ok := fmts[msg.Path()]
	if !ok {
		return "", nil
	}
	pretty, err := format(respData)
	if err != nil {
		return "", fmt.Errorf("cannot format result data %x: %s", respData, err)
	}
	return pretty, nil
}

// formatters maps a message path to its response parser.
//
// Do not register a message if its response should not be printed.
var formatters = map[string]func([]byte) (string, error){
	offer.CreateMsg{}.Path(): fmtSequence,
}

func fmtSequence(raw []byte) (string, error) {
	n, err := orm.DecodeSequence(raw)
	if err != nil {
		return "", fmt.Errorf("cannot parse sequence: %s", err)
	}
	return fmt.Sprint(n), nil
}
