package badger

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/multisafe/safetest/assert"
	"github.com/iov-one/multisafe/store"
)

func makeBase() (store.CacheableKVStore, func()) {
	db, err := MockCommitStore()
	if err != nil {
		panic(err)
	}
	return db, func() { db.Close() }
}

func TestBadgerGetSet(t *testing.T)         { store.NewTestSuite(makeBase).GetSet(t) }
func TestBadgerCacheConflicts(t *testing.T) { store.NewTestSuite(makeBase).CacheConflicts(t) }
func TestBadgerNestedCache(t *testing.T)    { store.NewTestSuite(makeBase).NestedCache(t) }
func TestBadgerBatch(t *testing.T)          { store.NewTestSuite(makeBase).Batch(t) }

func TestCommitAndReload(t *testing.T) {
	dir, err := ioutil.TempDir("", "badger")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	db, err := NewCommitStore(dir)
	assert.Nil(t, err)

	empty, err := db.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), empty.Version)

	cache := db.CacheWrap()
	assert.Nil(t, cache.Set([]byte("wallet"), []byte("funded")))
	assert.Nil(t, cache.Write())
	first, err := db.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), first.Version)

	second, err := db.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), second.Version)
	if string(first.Hash) == string(second.Hash) {
		t.Fatal("hash must change with every version")
	}
	assert.Nil(t, db.Close())

	reopened, err := NewCommitStore(dir)
	assert.Nil(t, err)
	defer reopened.Close()

	latest, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, second, latest)

	got, err := reopened.Get([]byte("wallet"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("funded"), got)
}

func TestSameWritesSameHash(t *testing.T) {
	commit := func() []byte {
		db, err := MockCommitStore()
		assert.Nil(t, err)
		defer db.Close()
		assert.Nil(t, db.Set([]byte("a"), []byte("1")))
		assert.Nil(t, db.Delete([]byte("b")))
		id, err := db.Commit()
		assert.Nil(t, err)
		return id.Hash
	}
	assert.Equal(t, commit(), commit())
}
