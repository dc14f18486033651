package orm

import (
	"fmt"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a generic holder that stores data as well
// as references to sequences.
//
// This is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
// Bucket is a prefixed subspace of the DB
// proto defines the default Model, all elements of this type
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

var _ multisafe.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this Bucket for queries.
// You can define a name here for queries, which is
// different than the bucket name used to prefix the data
func (b Bucket) Register(name string, r multisafe.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query returns the raw value stored under given key. A miss is not an
// error and returns no models.
func (b Bucket) Query(db multisafe.ReadOnlyKVStore, data []byte) ([]multisafe.Model, error) {
	key := b.DBKey(data)
	value, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return []multisafe.Model{{Key: key, Value: value}}, nil
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element. Returns nil and no error if the key does not exist.
func (b Bucket) Get(db multisafe.ReadOnlyKVStore, key []byte) (Object, error) {
	bz, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// One loads the element stored under given key into dest. Returns
// errors.ErrNotFound if there is no such element.
func (b Bucket) One(db multisafe.ReadOnlyKVStore, key []byte, dest Model) error {
	bz, err := db.Get(b.DBKey(key))
	if err != nil {
		return err
	}
	if bz == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := proto.Unmarshal(bz, dest); err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return nil
}

// Has returns true if an element is stored under given key.
func (b Bucket) Has(db multisafe.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse takes a key and value data (multisafe.Model) and
// reconstructs the data this Bucket would return.
//
// Used internally as part of Get.
// It is exposed mainly as a test helper, but can work for
// any code that wants to parse
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := proto.Unmarshal(value, obj.Value()); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write a model, it must be of the same type as proto
func (b Bucket) Save(db multisafe.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return err
	}
	bz, err := proto.Marshal(model.Value())
	if err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	// An empty message encodes to zero bytes. It must still read as present.
	if bz == nil {
		bz = []byte{}
	}
	return b.Put(db, model.Key(), bz)
}

// Put writes raw, already serialized data under given key.
func (b Bucket) Put(db multisafe.KVStore, key, raw []byte) error {
	return db.Set(b.DBKey(key), raw)
}

// Delete will remove the value at a key
func (b Bucket) Delete(db multisafe.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Sequence returns a Sequence by name
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}
