package store

import (
	"testing"

	"github.com/iov-one/multisafe/safetest/assert"
)

func TestPrefixStoreIsolation(t *testing.T) {
	db := MemStore()
	a := NewPrefixStore(db, []byte("a:"))
	b := NewPrefixStore(db, []byte("b:"))

	assert.Nil(t, a.Set([]byte("key"), []byte("from a")))
	assert.Nil(t, b.Set([]byte("key"), []byte("from b")))

	got, err := a.Get([]byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("from a"), got)

	got, err = db.Get([]byte("b:key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("from b"), got)

	assert.Nil(t, a.Delete([]byte("key")))
	has, err := a.Has([]byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
	has, err = b.Has([]byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, true, has)
}

func TestPrefixStoreBatch(t *testing.T) {
	db := MemStore()
	p := NewPrefixStore(db, []byte("p/"))

	batch := p.NewBatch()
	assert.Nil(t, batch.Set([]byte("x"), []byte("1")))
	assert.Nil(t, batch.Write())

	got, err := db.Get([]byte("p/x"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), got)
}
