package factory

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/x/vm"
	"github.com/iov-one/multisafe/x/wallet"
)

// Codec serializes the call payloads understood by a factory.
var Codec = vm.NewPayloadCodec()

func init() {
	Codec.Register(&CreateMsg{}, "factory/create")
	Codec.Register(&WithdrawMsg{}, "factory/withdraw")
}

// CreateMsg deploys a new wallet.
type CreateMsg struct {
	Owners   []multisafe.Address `json:"owners"`
	Required uint32              `json:"required"`
}

// Validate runs the wallet construction checks.
func (m *CreateMsg) Validate() error {
	_, err := wallet.NewOwnerSet(m.Owners, m.Required)
	return err
}

// WithdrawMsg transfers all funds of the factory to the administrator.
type WithdrawMsg struct{}

func (*WithdrawMsg) Validate() error {
	return nil
}
