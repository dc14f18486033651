package cash

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use multisafe.Address, so address in hex, not base64
type GenesisAccount struct {
	Address multisafe.Address `json:"address"`
	Amount  coin.Amount       `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ multisafe.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts multisafe.Options, kv multisafe.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := ctrl.IssueCoins(kv, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "genesis account %d", i)
		}
	}
	return nil
}
