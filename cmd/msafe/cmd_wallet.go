package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/x/vm"
	"github.com/iov-one/multisafe/x/wallet"
)

func cmdWalletSubmit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction submitting a new proposal to a wallet. Only an owner can
submit. The proposal id is returned as the result data.
		`)
		fl.PrintDefaults()
	}
	var (
		walletFl  = flAddress(fl, "wallet", "", "Address of the wallet.")
		targetFl  = flAddress(fl, "target", "", "Address that the proposal is sending value or calling to.")
		payloadFl = flHex(fl, "payload", "", "Optional hex encoded payload forwarded on execution.")
		valueFl   coin.Amount
	)
	fl.Var(&valueFl, "value", "Value transferred on execution.")
	fl.Parse(args)

	return writeWalletCall(output, *walletFl, &wallet.SubmitMsg{
		Target:  *targetFl,
		Value:   valueFl,
		Payload: *payloadFl,
	})
}

func cmdWalletApprove(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction approving a pending proposal.
		`)
		fl.PrintDefaults()
	}
	var (
		walletFl = flAddress(fl, "wallet", "", "Address of the wallet.")
		idFl     = fl.Uint64("id", 0, "Proposal ID.")
	)
	fl.Parse(args)

	return writeWalletCall(output, *walletFl, &wallet.ApproveMsg{ProposalID: *idFl})
}

func cmdWalletRevoke(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction withdrawing an approval of a pending proposal.
		`)
		fl.PrintDefaults()
	}
	var (
		walletFl = flAddress(fl, "wallet", "", "Address of the wallet.")
		idFl     = fl.Uint64("id", 0, "Proposal ID.")
	)
	fl.Parse(args)

	return writeWalletCall(output, *walletFl, &wallet.RevokeMsg{ProposalID: *idFl})
}

func cmdWalletExecute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction executing a proposal that gathered enough approvals.
		`)
		fl.PrintDefaults()
	}
	var (
		walletFl = flAddress(fl, "wallet", "", "Address of the wallet.")
		idFl     = fl.Uint64("id", 0, "Proposal ID.")
	)
	fl.Parse(args)

	return writeWalletCall(output, *walletFl, &wallet.ExecuteMsg{ProposalID: *idFl})
}

func writeWalletCall(output io.Writer, w multisafe.Address, p vm.Payload) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid wallet message: %s", err)
	}
	payload, err := wallet.Codec.Encode(p)
	if err != nil {
		return err
	}
	return writeMsg(output, &vm.CallMsg{Target: w, Payload: payload})
}
