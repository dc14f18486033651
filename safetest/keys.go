package safetest

import (
	"testing"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/crypto"
)

// NewKey returns a new random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() multisafe.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the address of a new random key.
func NewAddress() multisafe.Address {
	return NewCondition().Address()
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// multisafe.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) multisafe.Address {
	t.Helper()

	addr, err := multisafe.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
