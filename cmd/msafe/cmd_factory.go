package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/x/factory"
	"github.com/iov-one/multisafe/x/vm"
)

func cmdFactoryCreate(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction asking a factory to deploy a new wallet. The new wallet
address is returned as the result data.
		`)
		fl.PrintDefaults()
	}
	var (
		factoryFl  = flAddress(fl, "factory", "", "Address of the factory.")
		ownersFl   = flAddresses(fl, "owners", "Comma separated list of owner addresses.")
		requiredFl = fl.Uint("required", 1, "Number of approvals required to execute a proposal.")
	)
	fl.Parse(args)

	return writeFactoryCall(output, *factoryFl, &factory.CreateMsg{
		Owners:   *ownersFl,
		Required: uint32(*requiredFl),
	})
}

func cmdFactoryWithdraw(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction moving all donations held by a factory to its
administrator. Only the administrator can withdraw.
		`)
		fl.PrintDefaults()
	}
	var (
		factoryFl = flAddress(fl, "factory", "", "Address of the factory.")
	)
	fl.Parse(args)

	return writeFactoryCall(output, *factoryFl, &factory.WithdrawMsg{})
}

func writeFactoryCall(output io.Writer, f multisafe.Address, p vm.Payload) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid factory message: %s", err)
	}
	payload, err := factory.Codec.Encode(p)
	if err != nil {
		return err
	}
	return writeMsg(output, &vm.CallMsg{Target: f, Payload: payload})
}
