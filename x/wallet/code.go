package wallet

import (
	"strconv"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/x/vm"
	"github.com/tendermint/tendermint/libs/common"
)

// Kind is the name under which the wallet code is registered.
const Kind = "wallet"

// Notifications emitted by a wallet.
const (
	EventDeposit = "deposit"
	EventSubmit  = "submit"
	EventApprove = "approve"
	EventRevoke  = "revoke"
	EventExecute = "execute"
)

// Code is the logic of a wallet account.
type Code struct {
	ownerOnlyExecution bool
}

var _ vm.Code = (*Code)(nil)

// Option configures the wallet code.
type Option func(*Code)

// WithOwnerOnlyExecution restricts execution of approved proposals to the
// owners. By default anyone can execute a proposal that reached the quorum.
func WithOwnerOnlyExecution() Option {
	return func(c *Code) {
		c.ownerOnlyExecution = true
	}
}

// NewCode returns the wallet logic.
func NewCode(opts ...Option) *Code {
	c := &Code{}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

// Register makes wallets deployable on given machine.
func Register(m *vm.Machine, opts ...Option) {
	m.Register(Kind, NewCode(opts...))
}

// Init expects an encoded InitMsg.
func (c *Code) Init(env vm.Env, args []byte) error {
	msg, err := Codec.Decode(args)
	if err != nil {
		return err
	}
	im, ok := msg.(*InitMsg)
	if !ok {
		return errors.Wrapf(errors.ErrInvalidMsg, "%T is not a wallet construction", msg)
	}
	set, err := NewOwnerSet(im.Owners, im.Required)
	if err != nil {
		return err
	}
	if err := NewEngine(env.Store()).Init(set); err != nil {
		return err
	}
	env.Logger().Info("wallet created", "owners", set.Len(), "required", set.Required())
	return nil
}

// Call handles a deposit when the payload is empty and an engine
// operation otherwise.
func (c *Code) Call(env vm.Env, payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		env.Emit(EventDeposit,
			multisafe.Attr("sender", env.Caller().String()),
			multisafe.Attr("amount", env.Value().String()))
		return nil, nil
	}

	msg, err := Codec.Decode(payload)
	if err != nil {
		return nil, err
	}
	e := NewEngine(env.Store())
	caller := env.Caller()

	switch msg := msg.(type) {
	case *SubmitMsg:
		id, err := e.Submit(caller, msg.Target, msg.Value, msg.Payload)
		if err != nil {
			return nil, err
		}
		env.Emit(EventSubmit, idAttr(id))
		return ProposalKey(id), nil
	case *ApproveMsg:
		if err := e.Approve(caller, msg.ProposalID); err != nil {
			return nil, err
		}
		env.Emit(EventApprove, multisafe.Attr("owner", caller.String()), idAttr(msg.ProposalID))
		return nil, nil
	case *RevokeMsg:
		if err := e.Revoke(caller, msg.ProposalID); err != nil {
			return nil, err
		}
		env.Emit(EventRevoke, multisafe.Attr("owner", caller.String()), idAttr(msg.ProposalID))
		return nil, nil
	case *ExecuteMsg:
		return c.execute(env, e, msg.ProposalID)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "%T is not a wallet operation", msg)
	}
}

// execute flips the executed flag before the target is called. A target
// calling back into the wallet sees the proposal as executed.
func (c *Code) execute(env vm.Env, e *Engine, id uint64) ([]byte, error) {
	if c.ownerOnlyExecution {
		if err := e.RequireOwner(env.Caller()); err != nil {
			return nil, err
		}
	}
	p, err := e.MarkExecuted(id)
	if err != nil {
		return nil, err
	}
	data, err := env.Call(p.TargetAddress(), p.Amount(), p.Payload)
	if err != nil {
		env.Logger().Debug("proposal call failed", "id", id, "err", err)
		return nil, errors.Append(errors.Wrapf(ErrCallFailed, "proposal %d", id), err)
	}
	env.Emit(EventExecute, idAttr(id))
	return data, nil
}

func idAttr(id uint64) common.KVPair {
	return multisafe.Attr("id", strconv.FormatUint(id, 10))
}
