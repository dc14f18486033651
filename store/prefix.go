package store

// PrefixStore restricts all access to keys that start with a fixed prefix.
// The prefix is invisible to the user of the store. This is how every
// account receives its own isolated namespace.
type PrefixStore struct {
	prefix []byte
	kv     KVStore
}

var _ KVStore = PrefixStore{}

// NewPrefixStore returns a store view that prepends prefix to every key.
func NewPrefixStore(kv KVStore, prefix []byte) PrefixStore {
	p := make([]byte, len(prefix))
	copy(p, prefix)
	return PrefixStore{prefix: p, kv: kv}
}

func (p PrefixStore) key(k []byte) []byte {
	res := make([]byte, 0, len(p.prefix)+len(k))
	res = append(res, p.prefix...)
	return append(res, k...)
}

// Get returns the value stored under prefixed key.
func (p PrefixStore) Get(key []byte) ([]byte, error) {
	return p.kv.Get(p.key(key))
}

// Has checks the presence of the prefixed key.
func (p PrefixStore) Has(key []byte) (bool, error) {
	return p.kv.Has(p.key(key))
}

// Set writes the value under the prefixed key.
func (p PrefixStore) Set(key, value []byte) error {
	return p.kv.Set(p.key(key), value)
}

// Delete removes the prefixed key.
func (p PrefixStore) Delete(key []byte) error {
	return p.kv.Delete(p.key(key))
}

// NewBatch returns a batch writing to the prefixed namespace.
func (p PrefixStore) NewBatch() Batch {
	return prefixBatch{PrefixStore: p, batch: p.kv.NewBatch()}
}

type prefixBatch struct {
	PrefixStore
	batch Batch
}

func (b prefixBatch) Set(key, value []byte) error {
	return b.batch.Set(b.key(key), value)
}

func (b prefixBatch) Delete(key []byte) error {
	return b.batch.Delete(b.key(key))
}

func (b prefixBatch) Write() error {
	return b.batch.Write()
}
