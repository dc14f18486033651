package cash

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Validate accepts any amount. Zero balances are never stored.
func (m *Balance) Validate() error {
	return nil
}

// Coins returns the held amount.
func (m *Balance) Coins() coin.Amount {
	return coin.Amount(m.Amount)
}

// Bucket stores balances keyed by the owner address.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns a bucket for managing balances.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Balance))),
	}
}

// Balance returns the amount held by given address. Addresses that were
// never credited hold nothing.
func (b Bucket) Balance(db multisafe.ReadOnlyKVStore, addr multisafe.Address) (coin.Amount, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	bal, ok := obj.Value().(*Balance)
	if !ok {
		return 0, errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return bal.Coins(), nil
}

// SetBalance writes given amount as the balance of an address. A zero
// amount removes the record.
func (b Bucket) SetBalance(db multisafe.KVStore, addr multisafe.Address, amount coin.Amount) error {
	if amount.IsZero() {
		return b.Delete(db, addr)
	}
	obj := orm.NewSimpleObj(addr, &Balance{Amount: uint64(amount)})
	return b.Save(db, obj)
}
