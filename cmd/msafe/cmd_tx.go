package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/x/cash"
	"github.com/iov-one/multisafe/x/factory"
	"github.com/iov-one/multisafe/x/vm"
	"github.com/iov-one/multisafe/x/wallet"
)

func cmdSendTokens(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction for transfering funds from the signer account to the
destination account.
		`)
		fl.PrintDefaults()
	}
	var (
		dstFl    = flAddress(fl, "dst", "", "A destination account address that the funds are send to.")
		amountFl coin.Amount
		memoFl   = fl.String("memo", "", "A short message attached to the transfer operation.")
	)
	fl.Var(&amountFl, "amount", "An amount that is to be transferred.")
	fl.Parse(args)

	return writeMsg(output, &cash.SendMsg{
		Destination: *dstFl,
		Amount:      amountFl,
		Memo:        *memoFl,
	})
}

func cmdDeployWallet(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction deploying a new multisig wallet. The wallet address is
returned as the result data once the transaction is applied.
		`)
		fl.PrintDefaults()
	}
	var (
		ownersFl   = flAddresses(fl, "owners", "Comma separated list of owner addresses.")
		requiredFl = fl.Uint("required", 1, "Number of approvals required to execute a proposal.")
		valueFl    coin.Amount
	)
	fl.Var(&valueFl, "value", "Optional initial deposit, transferred from the signer.")
	fl.Parse(args)

	im := &wallet.InitMsg{
		Owners:   *ownersFl,
		Required: uint32(*requiredFl),
	}
	if err := im.Validate(); err != nil {
		return errors.Wrap(err, "invalid wallet configuration")
	}
	initArgs, err := wallet.Codec.Encode(im)
	if err != nil {
		return err
	}
	return writeMsg(output, &vm.DeployMsg{
		Kind:  wallet.Kind,
		Value: valueFl,
		Args:  initArgs,
	})
}

func cmdDeployFactory(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction deploying a new wallet factory. The signer becomes the
factory administrator.
		`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	return writeMsg(output, &vm.DeployMsg{Kind: factory.Kind})
}

func cmdCall(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction invoking an account with a raw payload. Call without a
payload to deposit value into a wallet or to donate to a factory.
		`)
		fl.PrintDefaults()
	}
	var (
		targetFl  = flAddress(fl, "target", "", "Address of the invoked account.")
		payloadFl = flHex(fl, "payload", "", "Optional hex encoded payload.")
		valueFl   coin.Amount
	)
	fl.Var(&valueFl, "value", "Value transferred from the signer to the target.")
	fl.Parse(args)

	return writeMsg(output, &vm.CallMsg{
		Target:  *targetFl,
		Value:   valueFl,
		Payload: *payloadFl,
	})
}

func cmdWithSigner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Read transactions from the input and set the signer of each to the public key
of given private key. Existing signer is overwritten.
		`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use MSAFE_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	key, err := loadKey(*keyPathFl)
	if err != nil {
		return err
	}
	txs, err := readTxs(input)
	if err != nil {
		return err
	}
	for _, tx := range txs {
		tx.Signer = key.PublicKey().Condition()
		if err := writeTx(output, tx); err != nil {
			return err
		}
	}
	return nil
}
