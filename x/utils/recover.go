package utils

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ multisafe.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx multisafe.Context, store multisafe.KVStore, tx multisafe.Tx, next multisafe.Deliverer) (_ *multisafe.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
