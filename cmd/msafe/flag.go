package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iov-one/multisafe"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *multisafe.Address {
	var a multisafe.Address
	if defaultVal != "" {
		var err error
		a, err = multisafe.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q multisafe.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flAddresses declares a flag accepting a comma separated list of
// addresses.
func flAddresses(fl *flag.FlagSet, name, usage string) *addressList {
	var l addressList
	fl.Var(&l, name, usage)
	return &l
}

type addressList []multisafe.Address

func (l addressList) String() string {
	chunks := make([]string, len(l))
	for i, a := range l {
		chunks[i] = a.String()
	}
	return strings.Join(chunks, ",")
}

func (l *addressList) Set(raw string) error {
	var res addressList
	for _, chunk := range strings.Split(raw, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		a, err := multisafe.ParseAddress(chunk)
		if err != nil {
			return err
		}
		res = append(res, a)
	}
	*l = res
	return nil
}

// flHex returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flHex(fl *flag.FlagSet, name, defaultVal, usage string) *flagbyte {
	var b []byte
	if defaultVal != "" {
		var err error
		b, err = hex.DecodeString(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q hex encoded flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fb := flagbyte(b)
	fl.Var(&fb, name, usage)
	return &fb
}

type flagbyte []byte

func (b flagbyte) String() string {
	return hex.EncodeToString(b)
}

func (b *flagbyte) Set(raw string) error {
	val, err := hex.DecodeString(raw)
	if err != nil {
		return err
	}
	*b = val
	return nil
}

// flagDie terminates the program when a flag is invalid.
func flagDie(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}
