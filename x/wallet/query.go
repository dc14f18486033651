package wallet

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/orm"
	"github.com/iov-one/multisafe/x/vm"
)

// RegisterQuery exposes the wallet state. Query data is always the wallet
// address followed by the key within the wallet namespace:
//
//	/wallets            address
//	/wallets/proposals  address || id (8 bytes)
//	/wallets/approvals  address || id (8 bytes) || owner
func RegisterQuery(qr multisafe.QueryRouter) {
	qr.Register("/wallets", walletQuery{bucket: NewWalletBucket().Bucket, fixed: walletKey})
	qr.Register("/wallets/proposals", walletQuery{bucket: NewProposalBucket().Bucket})
	qr.Register("/wallets/approvals", walletQuery{bucket: NewApprovalBucket().Bucket})
}

type walletQuery struct {
	bucket orm.Bucket
	// fixed is used as the key when the query data carries only the
	// wallet address.
	fixed []byte
}

var _ multisafe.QueryHandler = walletQuery{}

func (q walletQuery) Query(db multisafe.ReadOnlyKVStore, data []byte) ([]multisafe.Model, error) {
	if len(data) < multisafe.AddressLength {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "query data of %d bytes", len(data))
	}
	addr := multisafe.Address(data[:multisafe.AddressLength])
	key := data[multisafe.AddressLength:]
	if q.fixed != nil {
		if len(key) != 0 {
			return nil, errors.Wrap(errors.ErrInvalidInput, "only address expected")
		}
		key = q.fixed
	}
	raw, err := db.Get(vm.AccountKey(addr, q.bucket.DBKey(key)))
	if err != nil || raw == nil {
		return nil, err
	}
	return []multisafe.Model{multisafe.Pair(data, raw)}, nil
}
