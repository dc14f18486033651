package factory

import (
	"encoding/hex"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/x/vm"
	"github.com/iov-one/multisafe/x/wallet"
)

// Kind is the name under which the factory code is registered.
const Kind = "factory"

// Notifications emitted by a factory.
const (
	EventNewWallet = "new_wallet"
	EventDonation  = "donation"
	EventWithdraw  = "withdraw"
)

// Code is the logic of a factory account. Wallets are deployed with the
// wallet code, which must be registered on the same machine.
type Code struct{}

var _ vm.Code = Code{}

// Register makes factories deployable on given machine.
func Register(m *vm.Machine) {
	m.Register(Kind, Code{})
}

// Init makes the deployer the administrator. No arguments are accepted.
func (Code) Init(env vm.Env, args []byte) error {
	if len(args) != 0 {
		return errors.Wrap(errors.ErrInvalidInput, "factory takes no arguments")
	}
	admin := env.Caller()
	if err := NewBucket().Store(env.Store(), &Factory{Administrator: admin}); err != nil {
		return err
	}
	env.Logger().Info("factory created", "administrator", admin.String())
	return nil
}

// Call handles factory operations. Anything else is a donation.
func (c Code) Call(env vm.Env, payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return c.donate(env, payload)
	}
	msg, err := Codec.Decode(payload)
	switch {
	case errors.ErrInvalidMsg.Is(err):
		return c.donate(env, payload)
	case err != nil:
		return nil, err
	}

	switch msg := msg.(type) {
	case *CreateMsg:
		return c.create(env, msg)
	case *WithdrawMsg:
		return c.withdraw(env)
	default:
		return c.donate(env, payload)
	}
}

func (Code) donate(env vm.Env, payload []byte) ([]byte, error) {
	env.Emit(EventDonation,
		multisafe.Attr("sender", env.Caller().String()),
		multisafe.Attr("amount", env.Value().String()),
		multisafe.Attr("payload", hex.EncodeToString(payload)))
	return nil, nil
}

// create deploys a wallet and returns its address.
func (Code) create(env vm.Env, msg *CreateMsg) ([]byte, error) {
	if !env.Value().IsZero() {
		return nil, errors.Wrap(errors.ErrInvalidAmount, "wallet creation does not accept value")
	}
	args, err := wallet.Codec.Encode(&wallet.InitMsg{Owners: msg.Owners, Required: msg.Required})
	if err != nil {
		return nil, err
	}
	addr, err := env.Deploy(wallet.Kind, 0, args)
	if err != nil {
		return nil, err
	}
	env.Emit(EventNewWallet, multisafe.Attr("address", addr.String()))
	return addr, nil
}

// withdraw sends the whole balance to the administrator.
func (Code) withdraw(env vm.Env) ([]byte, error) {
	f, err := NewBucket().Load(env.Store())
	if err != nil {
		return nil, err
	}
	admin := multisafe.Address(f.Administrator)
	if !admin.Equals(env.Caller()) {
		return nil, errors.Wrapf(ErrNotAdministrator, "%s", env.Caller())
	}
	amount, err := env.Balance(env.Self())
	if err != nil {
		return nil, err
	}
	if _, err := env.Call(admin, amount, nil); err != nil {
		return nil, errors.Wrap(err, "transfer to administrator")
	}
	env.Emit(EventWithdraw,
		multisafe.Attr("administrator", admin.String()),
		multisafe.Attr("amount", amount.String()))
	return nil, nil
}
