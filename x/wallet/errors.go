package wallet

import (
	"github.com/iov-one/multisafe/errors"
)

// wallet takes 1100-1119
var (
	ErrEmptyOwnerList = errors.Register(1100, "empty owner list")
	ErrInvalidQuorum  = errors.Register(1101, "invalid quorum")
	ErrInvalidOwner   = errors.Register(1102, "invalid owner")
	ErrDuplicateOwner = errors.Register(1103, "duplicate owner")

	ErrNotOwner = errors.Register(1104, "not an owner")

	ErrProposalNotFound = errors.Register(1105, "proposal not found")
	ErrAlreadyExecuted  = errors.Register(1106, "proposal already executed")
	ErrAlreadyApproved  = errors.Register(1107, "proposal already approved")
	ErrNotApproved      = errors.Register(1108, "proposal not approved")

	ErrQuorumNotMet = errors.Register(1109, "quorum not met")

	// ErrCallFailed is returned when the target of an executed proposal
	// rejects the call.
	ErrCallFailed = errors.Register(1110, "call failed")
)
