package store

import "github.com/iov-one/multisafe"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = multisafe.ReadOnlyKVStore
	SetDeleter       = multisafe.SetDeleter
	KVStore          = multisafe.KVStore
	Batch            = multisafe.Batch
	CacheableKVStore = multisafe.CacheableKVStore
	KVCacheWrap      = multisafe.KVCacheWrap
	CommitKVStore    = multisafe.CommitKVStore
	CommitID         = multisafe.CommitID
	Model            = multisafe.Model
)

// Pair constructs a model from a key-value pair
var Pair = multisafe.Pair
