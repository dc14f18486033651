package crypto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()

	msg := []byte("submit proposal")
	sig := priv.Sign(msg)
	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("other"), sig))

	other := GenPrivKeyEd25519().PublicKey()
	assert.False(t, other.Verify(msg, sig))
	assert.False(t, PublicKey("short").Verify(msg, sig))
}

func TestDeterministicKeys(t *testing.T) {
	a := PrivKeyEd25519FromSeed([]byte("seed"))
	b := PrivKeyEd25519FromSeed([]byte("seed"))
	c := PrivKeyEd25519FromSeed([]byte("other"))

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.Equal(t, a.PublicKey().Address(), b.PublicKey().Address())
	assert.NotEqual(t, a.PublicKey().Address(), c.PublicKey().Address())
}

func TestConditionFormat(t *testing.T) {
	pub := PrivKeyEd25519FromSeed([]byte("seed")).PublicKey()
	ext, typ, data, err := pub.Condition().Parse()
	require.NoError(t, err)
	assert.Equal(t, ExtensionName, ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte(pub), data)
	assert.NoError(t, pub.Address().Validate())
}

func TestPrivateKeyJSON(t *testing.T) {
	priv := GenPrivKeyEd25519()
	raw, err := json.Marshal(priv)
	require.NoError(t, err)

	var got PrivateKey
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, priv.Equals(&got))

	assert.Error(t, json.Unmarshal([]byte(`{"seed": "abc"}`), &got))
}
