package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/ledger/cmd/offerd/client"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with hex encoded private key is created. This
command fails if the private key file already exists. When a seed is given,
the key is derived from it instead of being random.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use OFFERCLI_PRIV_KEY environment variable to set it.")
		seedFl = fl.String("seed", "", "Hex encoded master seed to derive the key from.")
		pathFl = fl.String("path", "", "Derivation path used together with the seed. Default account path is used if not provided.")
	)
	fl.Parse(args)

	key := client.GenPrivateKey()
	if *seedFl != "" {
		var err error
		key, err = client.DerivePrivateKey(*seedFl, *pathFl)
		if err != nil {
			return fmt.Errorf("cannot derive key: %s", err)
		}
	}

	// Never overwrite an existing key. User must delete it manually first.
	if err := client.SavePrivateKey(key, *keyPathFl, false); err != nil {
		return fmt.Errorf("cannot save private key: %s", err)
	}
	_, err := fmt.Fprintln(output, key.PublicKey().Address())
	return err
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use OFFERCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	key, err := client.LoadPrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}
	_, err = fmt.Fprintln(output, key.PublicKey().Address())
	return err
}
