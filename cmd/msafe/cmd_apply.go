package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/app"
	"github.com/iov-one/multisafe/errors"
)

func cmdApply(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Read transactions from the input and apply them one after another. A failed
transaction does not stop processing of the following ones. All state
changes are committed once the input is consumed.

The chain must be initialized with a genesis file before the first
transaction is applied.
		`)
		fl.PrintDefaults()
	}
	var (
		nodeFl    = declareNodeFlags(fl)
		genesisFl = fl.String("genesis", "", "Path to the genesis file. Required if the chain was not initialized yet.")
		debugFl   = fl.Bool("debug", false, "Print full error information, including internal errors.")
	)
	fl.Parse(args)

	a, err := nodeFl.open()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.ChainID() == "" {
		if *genesisFl == "" {
			return fmt.Errorf("chain not initialized, genesis file must be provided")
		}
		gen, err := app.LoadGenesis(*genesisFl)
		if err != nil {
			return fmt.Errorf("cannot load genesis: %s", err)
		}
		if err := a.InitChain(gen); err != nil {
			return fmt.Errorf("cannot initialize chain: %s", err)
		}
		fmt.Fprintf(output, "chain %s initialized\n", gen.ChainID)
	}

	txs, err := readTxs(input)
	if err != nil {
		return err
	}
	var failed int
	for i, tx := range txs {
		raw, err := tx.Marshal()
		if err != nil {
			return fmt.Errorf("cannot serialize transaction %d: %s", i, err)
		}
		res, err := a.DeliverTx(raw)
		if err != nil {
			failed++
			code, log := errors.ABCIInfo(err, *debugFl)
			fmt.Fprintf(output, "tx %d: failed (code %d): %s\n", i, code, log)
			continue
		}
		printResult(output, i, res)
	}

	commit, err := a.Commit()
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "committed version %d, hash %X\n", commit.Version, commit.Hash)
	if failed != 0 {
		return fmt.Errorf("%d of %d transactions failed", failed, len(txs))
	}
	return nil
}

func printResult(output io.Writer, n int, res *multisafe.DeliverResult) {
	fmt.Fprintf(output, "tx %d: ok\n", n)
	if len(res.Data) != 0 {
		fmt.Fprintf(output, "\tdata: %X\n", res.Data)
	}
	for _, e := range res.Events {
		fmt.Fprintf(output, "\tevent: %s\n", e)
	}
}
