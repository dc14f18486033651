package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// commands is a register of all available commands that can be executed
// by this program. The name is used to match with the first argument given.
//
// A command function is taking input and output being stdin and stdout.
// Given args are the command line arguments, without the program name and
// the command name, that should be parsed using the flag package.
//
// Transactions are passed between commands as a stream of JSON documents,
// so that a unix pipe can be used to construct a pipeline:
//
//	$ msafe wallet-approve -wallet 5AF0... -id 0 \
//	    | msafe with-signer -key bob.key \
//	    | msafe apply -home ./data
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"apply":            cmdApply,
	"call":             cmdCall,
	"deploy-factory":   cmdDeployFactory,
	"deploy-wallet":    cmdDeployWallet,
	"factory-create":   cmdFactoryCreate,
	"factory-withdraw": cmdFactoryWithdraw,
	"keyaddr":          cmdKeyaddr,
	"keygen":           cmdKeygen,
	"query":            cmdQuery,
	"send-tokens":      cmdSendTokens,
	"version":          cmdVersion,
	"wallet-approve":   cmdWalletApprove,
	"wallet-execute":   cmdWalletExecute,
	"wallet-revoke":    cmdWalletRevoke,
	"wallet-submit":    cmdWalletSubmit,
	"with-signer":      cmdWithSigner,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for multisig wallets.\n\n", os.Args[0])
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

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
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
	fmt.Fprintln(out, gitHash)
	return nil
}

// gitHash is set during the compilation time.
var gitHash string = "dev"
