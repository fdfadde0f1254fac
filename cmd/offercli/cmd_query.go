package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/ledger/cmd/offerd/client"
)

func cmdQueryOffer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Fetch an offer by its ID and print it out as JSON.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTmAddr(),
			"Tendermint node address. You can use OFFERCLI_TM_ADDR environment variable to set it.")
		offerFl = fl.Uint64("offer", 0, "ID of the offer.")
	)
	fl.Parse(args)

	if *offerFl == 0 {
		return errors.New("offer ID is required")
	}
	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	o, err := c.GetOffer(*offerFl)
	if err != nil {
		return fmt.Errorf("cannot fetch offer: %s", err)
	}
	return printJSON(output, o)
}

func cmdQueryWallet(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Fetch the wallet of given address and print it out as JSON. An account that
never received funds has no wallet.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTmAddr(),
			"Tendermint node address. You can use OFFERCLI_TM_ADDR environment variable to set it.")
		addrFl = flAddress(fl, "address", "", "Address of the account.")
	)
	fl.Parse(args)

	if len(*addrFl) == 0 {
		return errors.New("address is required")
	}
	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	w, err := c.GetWallet(*addrFl)
	if err != nil {
		return fmt.Errorf("cannot fetch wallet: %s", err)
	}
	if w == nil {
		return fmt.Errorf("no wallet for %s", *addrFl)
	}
	return printJSON(output, w.Wallet)
}

func cmdLastOffer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the ID of the most recently created offer. Zero means no offer was
created yet.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", defaultTmAddr(),
			"Tendermint node address. You can use OFFERCLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	id, err := c.LastOfferID()
	if err != nil {
		return fmt.Errorf("cannot fetch last offer ID: %s", err)
	}
	_, err = fmt.Fprintln(output, id)
	return err
}

func printJSON(output io.Writer, v interface{}) error {
	pretty, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}
