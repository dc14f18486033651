package wallet

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/x/vm"
)

// Codec serializes the arguments and call payloads understood by a wallet.
var Codec = vm.NewPayloadCodec()

func init() {
	Codec.Register(&InitMsg{}, "wallet/init")
	Codec.Register(&SubmitMsg{}, "wallet/submit")
	Codec.Register(&ApproveMsg{}, "wallet/approve")
	Codec.Register(&RevokeMsg{}, "wallet/revoke")
	Codec.Register(&ExecuteMsg{}, "wallet/execute")
}

// InitMsg is the deployment argument of a wallet.
type InitMsg struct {
	Owners   []multisafe.Address `json:"owners"`
	Required uint32              `json:"required"`
}

// Validate builds the owner set, so an invalid construction fails with the
// same error as the deployment would.
func (m *InitMsg) Validate() error {
	_, err := NewOwnerSet(m.Owners, m.Required)
	return err
}

// SubmitMsg proposes a call of the target with given value and payload.
type SubmitMsg struct {
	Target  multisafe.Address `json:"target"`
	Value   coin.Amount       `json:"value"`
	Payload []byte            `json:"payload,omitempty"`
}

func (m *SubmitMsg) Validate() error {
	return errors.Wrap(m.Target.Validate(), "target")
}

// ApproveMsg records the consent of the caller.
type ApproveMsg struct {
	ProposalID uint64 `json:"proposal_id"`
}

func (m *ApproveMsg) Validate() error {
	return nil
}

// RevokeMsg withdraws the consent of the caller.
type RevokeMsg struct {
	ProposalID uint64 `json:"proposal_id"`
}

func (m *RevokeMsg) Validate() error {
	return nil
}

// ExecuteMsg dispatches an approved proposal.
type ExecuteMsg struct {
	ProposalID uint64 `json:"proposal_id"`
}

func (m *ExecuteMsg) Validate() error {
	return nil
}
