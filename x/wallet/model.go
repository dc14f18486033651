package wallet

import (
	"encoding/binary"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/orm"
)

const (
	walletBucketName   = "wallet"
	proposalBucketName = "proposal"
	approvalBucketName = "approval"
)

// walletKey is the only key of the wallet bucket. Every wallet keeps its
// state in its own account namespace.
var walletKey = []byte("state")

var _ orm.Model = (*Wallet)(nil)

// Validate requires a valid owner set.
func (m *Wallet) Validate() error {
	if _, err := m.OwnerSet(); err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return nil
}

// OwnerSet returns the owners and quorum of this wallet.
func (m *Wallet) OwnerSet() (*OwnerSet, error) {
	owners := make([]multisafe.Address, len(m.Owners))
	for i, o := range m.Owners {
		owners[i] = o
	}
	return NewOwnerSet(owners, m.Required)
}

// IsOwner returns true if given address is one of the owners.
func (m *Wallet) IsOwner(addr multisafe.Address) bool {
	for _, o := range m.Owners {
		if addr.Equals(o) {
			return true
		}
	}
	return false
}

var _ orm.Model = (*Proposal)(nil)

// Validate requires a valid target.
func (m *Proposal) Validate() error {
	return errors.Wrap(m.TargetAddress().Validate(), "target")
}

// TargetAddress returns the address that the proposal calls.
func (m *Proposal) TargetAddress() multisafe.Address {
	return m.Target
}

// Amount returns the value sent with the call.
func (m *Proposal) Amount() coin.Amount {
	return coin.Amount(m.Value)
}

var _ orm.Model = (*Approval)(nil)

// Validate rejects withdrawn consent. A revoked approval is deleted.
func (m *Approval) Validate() error {
	if !m.Approved {
		return errors.Wrap(errors.ErrInvalidModel, "only given consent is stored")
	}
	return nil
}

// WalletBucket holds the configuration of a wallet.
type WalletBucket struct {
	orm.Bucket
}

// NewWalletBucket returns a bucket for the wallet configuration.
func NewWalletBucket() WalletBucket {
	return WalletBucket{
		Bucket: orm.NewBucket(walletBucketName, orm.NewSimpleObj(nil, new(Wallet))),
	}
}

// Load returns the wallet configuration. errors.ErrNotFound is returned if
// the namespace does not belong to a wallet.
func (b WalletBucket) Load(db multisafe.ReadOnlyKVStore) (*Wallet, error) {
	var w Wallet
	if err := b.One(db, walletKey, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Store writes the wallet configuration.
func (b WalletBucket) Store(db multisafe.KVStore, w *Wallet) error {
	return b.Save(db, orm.NewSimpleObj(walletKey, w))
}

// ProposalBucket is the append only log of proposals. Proposals are
// keyed by their id, so the natural key order is the submission order.
type ProposalBucket struct {
	orm.Bucket
}

// NewProposalBucket returns a bucket for proposals.
func NewProposalBucket() ProposalBucket {
	return ProposalBucket{
		Bucket: orm.NewBucket(proposalBucketName, orm.NewSimpleObj(nil, new(Proposal))),
	}
}

// Load returns the proposal with given id or ErrProposalNotFound.
func (b ProposalBucket) Load(db multisafe.ReadOnlyKVStore, id uint64) (*Proposal, error) {
	var p Proposal
	switch err := b.One(db, ProposalKey(id), &p); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrProposalNotFound, "proposal %d", id)
	case err != nil:
		return nil, err
	}
	return &p, nil
}

// Store writes the proposal under given id.
func (b ProposalBucket) Store(db multisafe.KVStore, id uint64, p *Proposal) error {
	return b.Save(db, orm.NewSimpleObj(ProposalKey(id), p))
}

// ApprovalBucket is the sparse relation of proposal and owner to consent.
type ApprovalBucket struct {
	orm.Bucket
}

// NewApprovalBucket returns a bucket for approvals.
func NewApprovalBucket() ApprovalBucket {
	return ApprovalBucket{
		Bucket: orm.NewBucket(approvalBucketName, orm.NewSimpleObj(nil, new(Approval))),
	}
}

// Approved returns the consent of an owner. A missing record is no
// consent.
func (b ApprovalBucket) Approved(db multisafe.ReadOnlyKVStore, id uint64, owner multisafe.Address) (bool, error) {
	return b.Has(db, ApprovalKey(id, owner))
}

// SetApproved records or removes the consent of an owner.
func (b ApprovalBucket) SetApproved(db multisafe.KVStore, id uint64, owner multisafe.Address, approved bool) error {
	key := ApprovalKey(id, owner)
	if !approved {
		return b.Delete(db, key)
	}
	return b.Save(db, orm.NewSimpleObj(key, &Approval{Approved: true}))
}

// ProposalKey returns the key of a proposal.
func ProposalKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// ApprovalKey returns the key of the consent of an owner to a proposal.
func ApprovalKey(id uint64, owner multisafe.Address) []byte {
	return append(ProposalKey(id), owner...)
}

// DecodeProposalID reads the id returned by a submission.
func DecodeProposalID(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "proposal id of %d bytes", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}
