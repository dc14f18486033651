package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
)

// Genesis file format. AppState is passed to all registered
// initializers, each extension reading its own key.
type Genesis struct {
	ChainID  string            `json:"chain_id"`
	AppState multisafe.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInvalidInput, "unmarshal genesis: %s", err)
	}
	return gen, nil
}

//------- storing chainID ---------

// _ms: is a prefix for internal data
const chainIDKey = "_ms:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(kv multisafe.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv multisafe.KVStore, chainID string) error {
	if !multisafe.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id %q", chainID)
	}
	k := []byte(chainIDKey)
	switch has, err := kv.Has(k); {
	case err != nil:
		return errors.Wrap(err, "chain id")
	case has:
		return errors.Wrap(errors.ErrDuplicate, "chain id already set")
	}
	return kv.Set(k, []byte(chainID))
}
