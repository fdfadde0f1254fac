package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/ledger/cmd/offerd/app"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/x/cash"
)

func cmdSendTokens(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for transferring funds from the source to the destination
account.
`)
		fl.PrintDefaults()
	}
	var (
		srcFl    = flAddress(fl, "src", "", "Source account address.")
		dstFl    = flAddress(fl, "dst", "", "Destination account address.")
		memoFl   = fl.String("memo", "", "Short message attached to the transfer.")
		amountFl coin.Amount
	)
	fl.Var(&amountFl, "amount", "Amount of tokens to transfer.")
	fl.Parse(args)

	msg := cash.SendMsg{
		Src:    *srcFl,
		Dest:   *dstFl,
		Amount: amountFl,
		Memo:   *memoFl,
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("given data produce an invalid message: %s", err)
	}
	_, err := writeTx(output, &app.Tx{Msg: &msg})
	return err
}
