package sigs

import (
	"context"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx multisafe.Context, signers []multisafe.Condition) multisafe.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reveals the signers set by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context.
// May be empty
func (a Authenticate) GetConditions(ctx multisafe.Context) []multisafe.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]multisafe.Condition)
	return val
}

// HasAddress returns true if any of the signers matches the address.
func (a Authenticate) HasAddress(ctx multisafe.Context, addr multisafe.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
