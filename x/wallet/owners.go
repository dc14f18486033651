package wallet

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
)

// OwnerSet is a validated, ordered list of owners together with the number
// of approvals required to execute a proposal.
type OwnerSet struct {
	owners   []multisafe.Address
	required uint32
}

// NewOwnerSet validates owners and quorum.
//
// An empty list is rejected first, then a quorum that is zero or greater
// than the number of owners. Owners are checked in order and the first
// entry that is a null address or repeats an earlier entry determines the
// failure.
func NewOwnerSet(owners []multisafe.Address, required uint32) (*OwnerSet, error) {
	if len(owners) == 0 {
		return nil, errors.Wrap(ErrEmptyOwnerList, "at least one owner required")
	}
	if required == 0 || int(required) > len(owners) {
		return nil, errors.Wrapf(ErrInvalidQuorum, "%d of %d owners", required, len(owners))
	}
	set := make([]multisafe.Address, 0, len(owners))
	for i, o := range owners {
		if o.IsZero() {
			return nil, errors.Wrapf(ErrInvalidOwner, "owner %d is null", i)
		}
		if err := o.Validate(); err != nil {
			return nil, errors.Wrapf(ErrInvalidOwner, "owner %d: %s", i, err)
		}
		for j := 0; j < i; j++ {
			if o.Equals(owners[j]) {
				return nil, errors.Wrapf(ErrDuplicateOwner, "owner %d repeats owner %d", i, j)
			}
		}
		set = append(set, o.Clone())
	}
	return &OwnerSet{owners: set, required: required}, nil
}

// Owners returns a copy of the owner list.
func (s *OwnerSet) Owners() []multisafe.Address {
	res := make([]multisafe.Address, len(s.owners))
	for i, o := range s.owners {
		res[i] = o.Clone()
	}
	return res
}

// Required returns the quorum.
func (s *OwnerSet) Required() uint32 {
	return s.required
}

// Len returns the number of owners.
func (s *OwnerSet) Len() int {
	return len(s.owners)
}

// OwnerAt returns the owner at given position.
func (s *OwnerSet) OwnerAt(i int) (multisafe.Address, error) {
	if i < 0 || i >= len(s.owners) {
		return nil, errors.Wrapf(errors.ErrNotFound, "owner %d of %d", i, len(s.owners))
	}
	return s.owners[i].Clone(), nil
}

// IsOwner returns true if given address is one of the owners.
func (s *OwnerSet) IsOwner(addr multisafe.Address) bool {
	for _, o := range s.owners {
		if o.Equals(addr) {
			return true
		}
	}
	return false
}
