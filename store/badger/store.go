// Package badger provides a persistent commit store backed by a badger
// database. Unlike the iavl store there is no merkle tree: the state hash is
// a running digest over all writes, good enough to detect diverging replays.
package badger

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/store"
)

var (
	dataPrefix  = []byte("d:")
	versionKey  = []byte("m:version")
	rootHashKey = []byte("m:hash")
)

// CommitStore keeps the application state in badger.
//
// Cache writes are flushed to the database atomically as soon as the
// savepoint is written. Commit seals everything written since the previous
// commit into a new version.
type CommitStore struct {
	db *badger.DB

	version int64
	hash    []byte
	// working is the running digest of all writes since last commit.
	working []byte
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens (or creates) a badger database in given directory.
func NewCommitStore(dir string) (*CommitStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	return open(opts)
}

// MockCommitStore returns an in-memory store for testing.
func MockCommitStore() (*CommitStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return open(opts)
}

func open(opts badger.Options) (*CommitStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open badger: %s", err)
	}
	s := &CommitStore{db: db}
	if err := s.LoadLatestVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func dataKey(key []byte) []byte {
	res := make([]byte, 0, len(dataPrefix)+len(key))
	res = append(res, dataPrefix...)
	return append(res, key...)
}

// Get returns the value stored under given key or nil.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(dataKey(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		if err == nil && val == nil {
			// Present but empty value must be distinguishable from a missing one.
			val = []byte{}
		}
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, nil
}

// Has returns true if a value is stored under given key.
func (s *CommitStore) Has(key []byte) (bool, error) {
	val, err := s.Get(key)
	return val != nil, err
}

// Set writes a single value.
func (s *CommitStore) Set(key, value []byte) error {
	b := s.NewBatch()
	if err := b.Set(key, value); err != nil {
		return err
	}
	return b.Write()
}

// Delete removes a single value.
func (s *CommitStore) Delete(key []byte) error {
	b := s.NewBatch()
	if err := b.Delete(key); err != nil {
		return err
	}
	return b.Write()
}

// NewBatch returns a batch that applies all operations in a single badger
// transaction.
func (s *CommitStore) NewBatch() store.Batch {
	return &batch{store: s}
}

// CacheWrap returns a btree savepoint over the database.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Commit seals all writes since the previous commit as a new version.
func (s *CommitStore) Commit() (store.CommitID, error) {
	version := s.version + 1
	h := sha256.New()
	h.Write(s.hash)
	h.Write(s.working)
	hash := h.Sum(nil)

	err := s.db.Update(func(txn *badger.Txn) error {
		var raw [8]byte
		binary.BigEndian.PutUint64(raw[:], uint64(version))
		if err := txn.Set(versionKey, raw[:]); err != nil {
			return err
		}
		return txn.Set(rootHashKey, hash)
	})
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	s.version = version
	s.hash = hash
	s.working = nil
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion reads the last committed version information.
func (s *CommitStore) LoadLatestVersion() error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(versionKey)
		if err == badger.ErrKeyNotFound {
			s.version, s.hash = 0, nil
			return nil
		}
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		s.version = int64(binary.BigEndian.Uint64(raw))

		item, err = txn.Get(rootHashKey)
		if err != nil {
			return err
		}
		s.hash, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	s.working = nil
	return nil
}

// LatestVersion returns the last committed version information.
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.version, Hash: s.hash}, nil
}

// Close releases the database.
func (s *CommitStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// digest folds written operations into the working hash.
func (s *CommitStore) digest(ops []op) {
	h := sha256.New()
	h.Write(s.working)
	for _, o := range ops {
		if o.del {
			h.Write([]byte{0})
		} else {
			h.Write([]byte{1})
		}
		writeChunk(h, o.key)
		writeChunk(h, o.value)
	}
	s.working = h.Sum(nil)
}

func writeChunk(h interface{ Write([]byte) (int, error) }, b []byte) {
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))
	h.Write(size[:])
	h.Write(b)
}

type op struct {
	key   []byte
	value []byte
	del   bool
}

// batch collects operations and applies them in one transaction.
type batch struct {
	store *CommitStore
	ops   []op
}

var _ store.Batch = (*batch)(nil)

func (b *batch) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrHuman, "nil key")
	}
	b.ops = append(b.ops, op{key: key, value: value})
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, op{key: key, del: true})
	return nil
}

func (b *batch) Write() error {
	if len(b.ops) == 0 {
		return nil
	}
	err := b.store.db.Update(func(txn *badger.Txn) error {
		for _, o := range b.ops {
			var err error
			if o.del {
				err = txn.Delete(dataKey(o.key))
			} else {
				err = txn.Set(dataKey(o.key), o.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	b.store.digest(b.ops)
	b.ops = nil
	return nil
}
