package cash

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
)

// Controller is the functionality needed by other extensions to move the
// native currency around.
type Controller interface {
	// Balance returns the amount held by given address.
	Balance(db multisafe.ReadOnlyKVStore, addr multisafe.Address) (coin.Amount, error)
	// MoveCoins transfers amount from src to dest. It fails if src does
	// not hold enough.
	MoveCoins(db multisafe.KVStore, src, dest multisafe.Address, amount coin.Amount) error
	// IssueCoins creates new coins and gives them to dest.
	IssueCoins(db multisafe.KVStore, dest multisafe.Address, amount coin.Amount) error
}

// BaseController is a simple implementation of controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount held by given address.
func (c BaseController) Balance(db multisafe.ReadOnlyKVStore, addr multisafe.Address) (coin.Amount, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(err, "address")
	}
	return c.bucket.Balance(db, addr)
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db multisafe.KVStore, src, dest multisafe.Address, amount coin.Amount) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrInvalidAmount, "zero value transfer")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}

	have, err := c.bucket.Balance(db, src)
	if err != nil {
		return err
	}
	left, err := have.Sub(amount)
	if err != nil {
		return errors.Wrapf(err, "balance of %s", src)
	}
	if err := c.bucket.SetBalance(db, src, left); err != nil {
		return err
	}

	// Recipient is loaded only after the sender is saved, so that a
	// transfer to self is handled correctly.
	got, err := c.bucket.Balance(db, dest)
	if err != nil {
		return err
	}
	total, err := got.Add(amount)
	if err != nil {
		return errors.Wrapf(err, "balance of %s", dest)
	}
	return c.bucket.SetBalance(db, dest, total)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db multisafe.KVStore, dest multisafe.Address, amount coin.Amount) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	got, err := c.bucket.Balance(db, dest)
	if err != nil {
		return err
	}
	total, err := got.Add(amount)
	if err != nil {
		return errors.Wrapf(err, "balance of %s", dest)
	}
	return c.bucket.SetBalance(db, dest, total)
}
