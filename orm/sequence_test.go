package orm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := []struct {
		bucket     string
		name       string
		init       int64
		increments int64
	}{
		0: {"aaa", "id", 0, 22},
		1: {"aaa", "other", 0, 11},
		2: {"aaa", "id", 22, 18},
		3: {"bbb", "id", 0, 77},
		4: {"aaa", "other", 11, 248},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			cur, orig, err := s.Latest(db)
			require.NoError(t, err)
			assert.Equal(t, tc.init, cur)

			var val int64
			for i := int64(0); i < tc.increments; i++ {
				val, err = s.NextInt(db)
				require.NoError(t, err)
			}
			// expect the final value to be this
			assert.Equal(t, tc.init+tc.increments, val)

			// make sure final value is bigger than original value
			// if we use the raw bytes to index stuff
			_, last, err := s.Latest(db)
			require.NoError(t, err)
			assert.Equal(t, 1, bytes.Compare(last, orig))
		})
	}
}

func TestSequenceNextVal(t *testing.T) {
	db := store.MemStore()
	s := NewBucket("counter", nil).Sequence("id")

	first, err := s.NextVal(db)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, first)
}

func TestDecodeSequence(t *testing.T) {
	val, err := DecodeSequence(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), val)

	val, err = DecodeSequence(EncodeSequence(1234))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), val)

	_, err = DecodeSequence([]byte{1, 2})
	assert.True(t, errors.ErrInvalidState.Is(err))
}
