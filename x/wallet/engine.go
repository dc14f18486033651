package wallet

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
)

// Engine operates on the state of a single wallet: the owner set, the
// proposal log and the approval ledger. The store given must be the
// namespace of that wallet.
//
// Engine does not move any value. Dispatching an executed proposal is done
// by the wallet code.
type Engine struct {
	db        multisafe.KVStore
	wallets   WalletBucket
	proposals ProposalBucket
	approvals ApprovalBucket
}

// NewEngine returns an engine operating on given wallet namespace.
func NewEngine(db multisafe.KVStore) *Engine {
	return &Engine{
		db:        db,
		wallets:   NewWalletBucket(),
		proposals: NewProposalBucket(),
		approvals: NewApprovalBucket(),
	}
}

// Init stores a new wallet. A namespace can be initialized only once.
func (e *Engine) Init(set *OwnerSet) error {
	switch exists, err := e.wallets.Has(e.db, walletKey); {
	case err != nil:
		return err
	case exists:
		return errors.Wrap(errors.ErrDuplicate, "wallet already initialized")
	}
	owners := make([][]byte, set.Len())
	for i, o := range set.Owners() {
		owners[i] = o
	}
	return e.wallets.Store(e.db, &Wallet{
		Owners:   owners,
		Required: set.Required(),
	})
}

// Wallet returns the stored configuration.
func (e *Engine) Wallet() (*Wallet, error) {
	return e.wallets.Load(e.db)
}

// OwnerSet returns the owners and the quorum.
func (e *Engine) OwnerSet() (*OwnerSet, error) {
	w, err := e.Wallet()
	if err != nil {
		return nil, err
	}
	return w.OwnerSet()
}

// OwnerAt returns the owner at given position.
func (e *Engine) OwnerAt(i int) (multisafe.Address, error) {
	set, err := e.OwnerSet()
	if err != nil {
		return nil, err
	}
	return set.OwnerAt(i)
}

// IsOwner returns true if given address is one of the owners.
func (e *Engine) IsOwner(addr multisafe.Address) (bool, error) {
	w, err := e.Wallet()
	if err != nil {
		return false, err
	}
	return w.IsOwner(addr), nil
}

// Required returns the quorum.
func (e *Engine) Required() (uint32, error) {
	w, err := e.Wallet()
	if err != nil {
		return 0, err
	}
	return w.Required, nil
}

// ProposalCount returns the number of submitted proposals.
func (e *Engine) ProposalCount() (uint64, error) {
	w, err := e.Wallet()
	if err != nil {
		return 0, err
	}
	return w.ProposalCount, nil
}

// Proposal returns the proposal with given id.
func (e *Engine) Proposal(id uint64) (*Proposal, error) {
	return e.proposals.Load(e.db, id)
}

// Approved returns the consent of an owner to a proposal.
func (e *Engine) Approved(id uint64, owner multisafe.Address) (bool, error) {
	return e.approvals.Approved(e.db, id, owner)
}

// ApprovalCount returns how many owners currently approve a proposal.
func (e *Engine) ApprovalCount(id uint64) (uint32, error) {
	w, err := e.Wallet()
	if err != nil {
		return 0, err
	}
	return e.approvalCount(w, id)
}

func (e *Engine) approvalCount(w *Wallet, id uint64) (uint32, error) {
	var n uint32
	for _, o := range w.Owners {
		ok, err := e.approvals.Approved(e.db, id, o)
		if err != nil {
			return 0, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

// Submit appends a new pending proposal and returns its id. The submitter
// does not approve it.
func (e *Engine) Submit(caller, target multisafe.Address, value coin.Amount, payload []byte) (uint64, error) {
	w, err := e.ownerWallet(caller)
	if err != nil {
		return 0, err
	}
	id := w.ProposalCount
	p := &Proposal{
		Target:  target,
		Value:   uint64(value),
		Payload: payload,
	}
	if err := e.proposals.Store(e.db, id, p); err != nil {
		return 0, errors.Wrap(err, "proposal")
	}
	w.ProposalCount++
	if err := e.wallets.Store(e.db, w); err != nil {
		return 0, err
	}
	return id, nil
}

// Approve records the consent of the caller.
func (e *Engine) Approve(caller multisafe.Address, id uint64) error {
	if _, err := e.ownerWallet(caller); err != nil {
		return err
	}
	if _, err := e.pending(id); err != nil {
		return err
	}
	switch ok, err := e.approvals.Approved(e.db, id, caller); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(ErrAlreadyApproved, "proposal %d by %s", id, caller)
	}
	return e.approvals.SetApproved(e.db, id, caller, true)
}

// Revoke withdraws the consent of the caller.
func (e *Engine) Revoke(caller multisafe.Address, id uint64) error {
	if _, err := e.ownerWallet(caller); err != nil {
		return err
	}
	if _, err := e.pending(id); err != nil {
		return err
	}
	switch ok, err := e.approvals.Approved(e.db, id, caller); {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(ErrNotApproved, "proposal %d by %s", id, caller)
	}
	return e.approvals.SetApproved(e.db, id, caller, false)
}

// MarkExecuted checks that a proposal can be executed and flips its
// executed flag. The updated proposal is returned and must be dispatched
// by the caller. The flag is persisted before this method returns, so any
// later attempt to execute the same proposal fails with
// ErrAlreadyExecuted.
func (e *Engine) MarkExecuted(id uint64) (*Proposal, error) {
	w, err := e.Wallet()
	if err != nil {
		return nil, err
	}
	p, err := e.pending(id)
	if err != nil {
		return nil, err
	}
	n, err := e.approvalCount(w, id)
	if err != nil {
		return nil, err
	}
	if n < w.Required {
		return nil, errors.Wrapf(ErrQuorumNotMet, "%d of %d approvals", n, w.Required)
	}
	p.Executed = true
	if err := e.proposals.Store(e.db, id, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RequireOwner fails with ErrNotOwner if the caller is not an owner.
func (e *Engine) RequireOwner(caller multisafe.Address) error {
	_, err := e.ownerWallet(caller)
	return err
}

func (e *Engine) ownerWallet(caller multisafe.Address) (*Wallet, error) {
	w, err := e.Wallet()
	if err != nil {
		return nil, err
	}
	if !w.IsOwner(caller) {
		return nil, errors.Wrapf(ErrNotOwner, "%s", caller)
	}
	return w, nil
}

// pending returns the proposal if it exists and was not executed.
func (e *Engine) pending(id uint64) (*Proposal, error) {
	p, err := e.proposals.Load(e.db, id)
	if err != nil {
		return nil, err
	}
	if p.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "proposal %d", id)
	}
	return p, nil
}
