package vm

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r multisafe.Registry, auth x.Authenticator, m *Machine) {
	r.Handle(CallMsg{}.Path(), NewCallHandler(auth, m))
	r.Handle(DeployMsg{}.Path(), NewDeployHandler(auth, m))
}

// RegisterQuery will register the accounts bucket as "/accounts"
func RegisterQuery(qr multisafe.QueryRouter) {
	NewAccountBucket().Register("accounts", qr)
}

// CallHandler invokes accounts.
type CallHandler struct {
	auth x.Authenticator
	m    *Machine
}

var _ multisafe.Handler = CallHandler{}

// NewCallHandler creates a handler for CallMsg
func NewCallHandler(auth x.Authenticator, m *Machine) CallHandler {
	return CallHandler{auth: auth, m: m}
}

// Deliver runs the call with the main signer as the caller. Returned data
// is the result of the executed code.
func (h CallHandler) Deliver(ctx multisafe.Context, db multisafe.KVStore, tx multisafe.Tx) (*multisafe.DeliverResult, error) {
	var msg CallMsg
	if err := multisafe.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	data, events, err := h.m.Call(ctx, db, caller, msg.Target, msg.Value, msg.Payload)
	if err != nil {
		return nil, err
	}
	return &multisafe.DeliverResult{Data: data, Events: events}, nil
}

// DeployHandler creates contract accounts.
type DeployHandler struct {
	auth x.Authenticator
	m    *Machine
}

var _ multisafe.Handler = DeployHandler{}

// NewDeployHandler creates a handler for DeployMsg
func NewDeployHandler(auth x.Authenticator, m *Machine) DeployHandler {
	return DeployHandler{auth: auth, m: m}
}

// Deliver deploys the account. Returned data is the new account address.
func (h DeployHandler) Deliver(ctx multisafe.Context, db multisafe.KVStore, tx multisafe.Tx) (*multisafe.DeliverResult, error) {
	var msg DeployMsg
	if err := multisafe.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	deployer, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	addr, events, err := h.m.Deploy(ctx, db, deployer, msg.Kind, msg.Value, msg.Args)
	if err != nil {
		return nil, err
	}
	return &multisafe.DeliverResult{
		Data:   addr,
		Log:    addr.String(),
		Events: events,
	}, nil
}

func signer(ctx multisafe.Context, auth x.Authenticator) (multisafe.Address, error) {
	cond := x.MainSigner(ctx, auth)
	if cond == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature missing")
	}
	return cond.Address(), nil
}
