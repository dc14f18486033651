package vm

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
)

var _ multisafe.Msg = (*CallMsg)(nil)

// CallMsg invokes an account on behalf of the transaction signer.
type CallMsg struct {
	Target  multisafe.Address `json:"target"`
	Value   coin.Amount       `json:"value"`
	Payload []byte            `json:"payload,omitempty"`
}

// Path returns the routing path for this message
func (CallMsg) Path() string {
	return "vm/call"
}

// Validate makes sure that this is sensible
func (m *CallMsg) Validate() error {
	return errors.Wrap(m.Target.Validate(), "target")
}

var _ multisafe.Msg = (*DeployMsg)(nil)

// DeployMsg creates a new contract account on behalf of the transaction
// signer. The signer becomes the creator of the account.
type DeployMsg struct {
	Kind  string      `json:"kind"`
	Value coin.Amount `json:"value"`
	Args  []byte      `json:"args,omitempty"`
}

// Path returns the routing path for this message
func (DeployMsg) Path() string {
	return "vm/deploy"
}

// Validate makes sure that this is sensible
func (m *DeployMsg) Validate() error {
	if !isKind(m.Kind) {
		return errors.Wrapf(errors.ErrInvalidMsg, "kind %q", m.Kind)
	}
	return nil
}
