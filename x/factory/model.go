package factory

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/orm"
	"github.com/iov-one/multisafe/x/vm"
)

const bucketName = "factory"

var stateKey = []byte("state")

var _ orm.Model = (*Factory)(nil)

// Validate requires an administrator.
func (m *Factory) Validate() error {
	return errors.Wrap(multisafe.Address(m.Administrator).Validate(), "administrator")
}

// Bucket holds the state of a factory within its account namespace.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns a bucket for the factory state.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(bucketName, orm.NewSimpleObj(nil, new(Factory))),
	}
}

// Load returns the factory state.
func (b Bucket) Load(db multisafe.ReadOnlyKVStore) (*Factory, error) {
	var f Factory
	if err := b.One(db, stateKey, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Store writes the factory state.
func (b Bucket) Store(db multisafe.KVStore, f *Factory) error {
	return b.Save(db, orm.NewSimpleObj(stateKey, f))
}

// Administrator returns the administrator of the factory deployed under
// given address.
func Administrator(db multisafe.KVStore, factory multisafe.Address) (multisafe.Address, error) {
	f, err := NewBucket().Load(vm.AccountStore(db, factory))
	if err != nil {
		return nil, err
	}
	return f.Administrator, nil
}

// RegisterQuery exposes the factory state as "/factories". Query data is
// the factory address.
func RegisterQuery(qr multisafe.QueryRouter) {
	qr.Register("/factories", query{bucket: NewBucket()})
}

type query struct {
	bucket Bucket
}

var _ multisafe.QueryHandler = query{}

func (q query) Query(db multisafe.ReadOnlyKVStore, data []byte) ([]multisafe.Model, error) {
	if err := multisafe.Address(data).Validate(); err != nil {
		return nil, err
	}
	raw, err := db.Get(vm.AccountKey(data, q.bucket.DBKey(stateKey)))
	if err != nil || raw == nil {
		return nil, err
	}
	return []multisafe.Model{multisafe.Pair(data, raw)}, nil
}
