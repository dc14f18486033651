package app

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/store/badger"
	"github.com/iov-one/multisafe/store/iavl"
)

// Store backends supported by OpenStore.
const (
	BackendMemory = "memory"
	BackendIAVL   = "iavl"
	BackendBadger = "badger"
)

// OpenStore opens a commit store of given backend kind. Directory is
// ignored by the memory backend.
func OpenStore(backend, dir string) (multisafe.CommitKVStore, error) {
	switch backend {
	case BackendMemory:
		return iavl.MockCommitStore(), nil
	case BackendIAVL:
		return iavl.NewCommitStore(dir, "multisafe")
	case BackendBadger:
		return badger.NewCommitStore(dir)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown store backend %q", backend)
	}
}

// CommitStore handles loading from a CommitKVStore, maintaining the
// deliver cache of the current block and returning useful state info.
type CommitStore struct {
	committed multisafe.CommitKVStore
	deliver   multisafe.KVCacheWrap
}

// NewCommitStore loads the latest version of given store and sets up the
// deliver cache.
func NewCommitStore(store multisafe.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (multisafe.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates a new deliver cache.
func (cs *CommitStore) Commit() (multisafe.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return multisafe.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}
	cs.deliver = cs.committed.CacheWrap()
	return res, nil
}

// DeliverStore returns the store that must be used while processing
// transactions of the current block.
func (cs *CommitStore) DeliverStore() multisafe.CacheableKVStore {
	return cs.deliver
}

// Committed returns the last committed state. Queries read from it.
func (cs *CommitStore) Committed() multisafe.ReadOnlyKVStore {
	return cs.committed
}

// Close releases the underlying store.
func (cs *CommitStore) Close() error {
	cs.deliver.Discard()
	return cs.committed.Close()
}
