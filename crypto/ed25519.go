package crypto

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// PublicKey is an ed25519 public key. It identifies a signer principal.
type PublicKey []byte

// Verify verifies the signature was created with this message and public key
func (p PublicKey) Verify(message, sig []byte) bool {
	if len(p) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition encodes the public key into a signature condition
func (p PublicKey) Condition() multisafe.Condition {
	return multisafe.NewCondition(ExtensionName, "ed25519", p)
}

// Address returns the address of the principal owning this key.
func (p PublicKey) Address() multisafe.Address {
	return p.Condition().Address()
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: priv}
}

// GenPrivKeyFromReader reads the private key seed from given source.
func GenPrivKeyFromReader(r io.Reader) (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return &PrivateKey{key: priv}, nil
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	if len(seed) != ed25519.SeedSize {
		padded := make([]byte, ed25519.SeedSize)
		copy(padded, seed)
		seed = padded
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(p.key, message)
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() PublicKey {
	pub := p.key.Public().(ed25519.PublicKey)
	return PublicKey(pub)
}

// Seed returns the private key seed. It is enough to restore the key.
func (p *PrivateKey) Seed() []byte {
	return p.key.Seed()
}

// Equals returns true if both keys are the same.
func (p *PrivateKey) Equals(o *PrivateKey) bool {
	return o != nil && bytes.Equal(p.key, o.key)
}

type keyJSON struct {
	Seed    string `json:"seed"`
	Address string `json:"address"`
}

// MarshalJSON serializes the key seed together with the address of the
// public key, which helps when inspecting key files by hand.
func (p *PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(keyJSON{
		Seed:    hex.EncodeToString(p.Seed()),
		Address: p.PublicKey().Address().String(),
	})
}

// UnmarshalJSON restores the key from its seed. The address is ignored.
func (p *PrivateKey) UnmarshalJSON(raw []byte) error {
	var k keyJSON
	if err := json.Unmarshal(raw, &k); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	seed, err := hex.DecodeString(k.Seed)
	if err != nil || len(seed) != ed25519.SeedSize {
		return errors.Wrap(errors.ErrInvalidInput, "invalid seed")
	}
	p.key = ed25519.NewKeyFromSeed(seed)
	return nil
}
