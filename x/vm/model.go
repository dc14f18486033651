package vm

import (
	"regexp"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/orm"
	"github.com/iov-one/multisafe/store"
)

const (
	// BucketName is where the accounts are stored
	BucketName = "vmacct"

	// storePrefix starts the namespace of every contract account
	storePrefix = "vmstore:"
)

var isKind = regexp.MustCompile(`^[a-z][a-z0-9_]{1,31}$`).MatchString

// Validate requires a well formed kind and creator.
func (m *Account) Validate() error {
	if !isKind(m.Kind) {
		return errors.Wrapf(errors.ErrInvalidModel, "kind %q", m.Kind)
	}
	if err := multisafe.Address(m.Creator).Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	return nil
}

// AccountBucket stores contract accounts by address.
type AccountBucket struct {
	orm.Bucket
	seq orm.Sequence
}

// NewAccountBucket returns a bucket for managing contract accounts.
func NewAccountBucket() AccountBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Account)))
	return AccountBucket{
		Bucket: b,
		seq:    b.Sequence("id"),
	}
}

// Create allocates a fresh address and stores the account under it.
func (b AccountBucket) Create(db multisafe.KVStore, acct *Account) (multisafe.Address, error) {
	id, err := b.seq.NextVal(db)
	if err != nil {
		return nil, err
	}
	addr := AccountCondition(id).Address()
	if err := b.Save(db, orm.NewSimpleObj(addr, acct)); err != nil {
		return nil, err
	}
	return addr, nil
}

// Load returns the account stored under given address or nil if the
// address has no code attached.
func (b AccountBucket) Load(db multisafe.ReadOnlyKVStore, addr multisafe.Address) (*Account, error) {
	obj, err := b.Get(db, addr)
	if err != nil || obj == nil {
		return nil, err
	}
	acct, ok := obj.Value().(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return acct, nil
}

// AccountCondition returns the condition of the account created with given
// sequence value.
func AccountCondition(id []byte) multisafe.Condition {
	return multisafe.NewCondition("vm", "account", id)
}

// AccountStore returns the isolated namespace of given account.
func AccountStore(db multisafe.KVStore, addr multisafe.Address) multisafe.KVStore {
	return store.NewPrefixStore(db, AccountKey(addr, nil))
}

// AccountKey returns the database key under which a key of the account
// namespace is stored. Use it to read account state from a read only store.
func AccountKey(addr multisafe.Address, key []byte) []byte {
	res := make([]byte, 0, len(storePrefix)+len(addr)+len(key))
	res = append(res, storePrefix...)
	res = append(res, addr...)
	return append(res, key...)
}
