package store

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/multisafe/safetest/assert"
)

// TestSuite provides many methods that can be called in package-specific
// test code. We just customize the store being tested (pass in constructor),
// the rest of the logic is generic to the KVStore interface.
//
// It is shared by btree_test.go and the persistent backends.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh, empty store together with a function
// releasing all its resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite testing stores created by given constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet does basic sanity checks on our cache
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	// make sure the store is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	s.AssertGetHas(t, cache, k2, nil, false)
	assert.Nil(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	s.AssertGetHas(t, c2, k, v, true)
	s.AssertGetHas(t, c2, k2, v2, true)
	assert.Nil(t, c2.Set(k3, v3))
	c2.Discard()
	s.AssertGetHas(t, base, k3, nil, false)

	// and commit another
	c3 := base.CacheWrap()
	s.AssertGetHas(t, c3, k, v, true)
	s.AssertGetHas(t, c3, k2, v2, true)
	assert.Nil(t, c3.Delete(k))
	assert.Nil(t, c3.Write())

	// make sure it commits proper
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
	s.AssertGetHas(t, base, k3, nil, false)
}

// CacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func (s *TestSuite) CacheConflicts(t *testing.T) {
	// make 10 keys and 20 values....
	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model // Key is what we query, Value is what we expect
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			parentQueries: []Model{Pair(ks[1], vs[1]), Pair(ks[2], vs[2]), Pair(ks[3], nil)},
			childQueries:  []Model{Pair(ks[1], vs[11]), Pair(ks[2], nil), Pair(ks[3], vs[7])},
		},
		"delete and set again": {
			parentOps:     []Op{SetOp(ks[4], vs[4])},
			childOps:      []Op{DelOp(ks[4]), SetOp(ks[4], vs[14])},
			parentQueries: []Model{Pair(ks[4], vs[4])},
			childQueries:  []Model{Pair(ks[4], vs[14])},
		},
		"delete missing key": {
			childOps:      []Op{DelOp(ks[5])},
			parentQueries: []Model{Pair(ks[5], nil)},
			childQueries:  []Model{Pair(ks[5], nil)},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				assert.Nil(t, op.Apply(parent))
			}

			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				assert.Nil(t, op.Apply(child))
			}

			// now check the parent is unaffected
			for _, q := range tc.parentQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}

			// the child shows changes
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			// write child to parent and make sure it also shows proper data
			assert.Nil(t, child.Write())
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// NestedCache makes sure a savepoint inside of a savepoint can be rolled
// back without affecting the outer one.
func (s *TestSuite) NestedCache(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	outer := base.CacheWrap()
	assert.Nil(t, outer.Set([]byte("a"), []byte("1")))

	inner := outer.CacheWrap()
	assert.Nil(t, inner.Set([]byte("b"), []byte("2")))
	assert.Nil(t, inner.Set([]byte("a"), []byte("3")))
	s.AssertGetHas(t, inner, []byte("a"), []byte("3"), true)
	inner.Discard()

	s.AssertGetHas(t, outer, []byte("a"), []byte("1"), true)
	s.AssertGetHas(t, outer, []byte("b"), nil, false)

	inner = outer.CacheWrap()
	assert.Nil(t, inner.Set([]byte("b"), []byte("4")))
	assert.Nil(t, inner.Write())
	assert.Nil(t, outer.Write())

	s.AssertGetHas(t, base, []byte("a"), []byte("1"), true)
	s.AssertGetHas(t, base, []byte("b"), []byte("4"), true)
}

// Batch checks that batch writes are only visible after Write.
func (s *TestSuite) Batch(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	assert.Nil(t, base.Set([]byte("gone"), []byte("soon")))

	b := base.NewBatch()
	assert.Nil(t, b.Set([]byte("x"), []byte("y")))
	assert.Nil(t, b.Delete([]byte("gone")))
	s.AssertGetHas(t, base, []byte("x"), nil, false)
	s.AssertGetHas(t, base, []byte("gone"), []byte("soon"), true)

	assert.Nil(t, b.Write())
	s.AssertGetHas(t, base, []byte("x"), []byte("y"), true)
	s.AssertGetHas(t, base, []byte("gone"), nil, false)
}

// AssertGetHas makes sure that kv store returns val for Get and has for Has.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = randBytes(size)
	}
	return res
}
