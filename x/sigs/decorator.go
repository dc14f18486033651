/*
Package sigs provides the authentication middleware. The decorator reads
the signers declared by a transaction and exposes them to the handlers
through the context.
*/
package sigs

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
)

// Decorator adds the transaction signers to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ multisafe.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator, which requires
// at least one signer to be present
func NewDecorator() Decorator {
	return Decorator{
		allowMissingSigs: false,
	}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Deliver validates the signers before calling down the stack.
func (d Decorator) Deliver(ctx multisafe.Context, store multisafe.KVStore, tx multisafe.Tx, next multisafe.Deliverer) (*multisafe.DeliverResult, error) {
	var signers []multisafe.Condition
	if stx, ok := tx.(SignedTx); ok {
		signers = stx.GetSigners()
	}
	for i, s := range signers {
		if err := s.Validate(); err != nil {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "signer %d: %s", i, err)
		}
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	ctx = withSigners(ctx, signers)
	return next.Deliver(ctx, store, tx)
}
