package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/ledger/cmd/offerd/app"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/x/offer"
)

func cmdCreateOffer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that puts given amount in escrow for the recipient. The
creator of the offer is the signer of the transaction.
`)
		fl.PrintDefaults()
	}
	var (
		recipientFl = flAddress(fl, "recipient", "", "Address of the offer recipient.")
		amountFl    coin.Amount
	)
	fl.Var(&amountFl, "amount", "Amount of tokens offered. Must be greater than zero.")
	fl.Parse(args)

	if len(*recipientFl) == 0 {
		return errors.New("recipient is required")
	}
	msg := offer.CreateMsg{
		Recipient: *recipientFl,
		Amount:    amountFl,
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("given data produce an invalid message: %s", err)
	}
	_, err := writeTx(output, &app.Tx{Msg: &msg})
	return err
}

func cmdAcceptOffer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that accepts an active offer. The escrowed amount is
released to the recipient, who must sign the transaction.
`)
		fl.PrintDefaults()
	}
	var (
		offerFl = fl.Uint64("offer", 0, "ID of the offer to accept.")
	)
	fl.Parse(args)

	msg := offer.AcceptMsg{OfferID: *offerFl}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("given data produce an invalid message: %s", err)
	}
	_, err := writeTx(output, &app.Tx{Msg: &msg})
	return err
}

func cmdCancelOffer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that cancels an active offer. The escrowed amount is
returned to the creator, who must sign the transaction.
`)
		fl.PrintDefaults()
	}
	var (
		offerFl = fl.Uint64("offer", 0, "ID of the offer to cancel.")
	)
	fl.Parse(args)

	msg := offer.CancelMsg{OfferID: *offerFl}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("given data produce an invalid message: %s", err)
	}
	_, err := writeTx(output, &app.Tx{Msg: &msg})
	return err
}
