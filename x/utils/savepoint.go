package utils

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct{}

var _ multisafe.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// Deliver writes the changes of the wrapped handler only if it succeeds.
// Stores that cannot be cache wrapped are passed through.
func (s Savepoint) Deliver(ctx multisafe.Context, store multisafe.KVStore, tx multisafe.Tx, next multisafe.Deliverer) (*multisafe.DeliverResult, error) {
	cstore, ok := store.(multisafe.CacheableKVStore)
	if !ok {
		return next.Deliver(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}
