package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/multisafe"
)

// Model is a protobuf message that can validate its own state. Every value
// stored in a bucket must implement it.
type Model interface {
	proto.Message
	// Validate returns error if the model is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
}

// Object is what is stored in the bucket
// Key is joined with the prefix to set the full key
// Value is the data stored
//
// this can be light wrapper around a protobuf-defined type
type Object interface {
	Keyed
	Cloneable
	Validate() error
	Value() Model
}

// Reader defines an interface that allows reading objects from the db
type Reader interface {
	Get(db multisafe.ReadOnlyKVStore, key []byte) (Object, error)
}

// Keyed is anything that can identify itself
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into
type Cloneable interface {
	Clone() Object
}
