package vm

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// Code is the logic of a contract account.
type Code interface {
	// Init is called once, when the account is deployed. Returning an
	// error aborts the deployment.
	Init(env Env, args []byte) error
	// Call handles an invocation of the account. The payload is passed
	// as provided by the caller and is empty for plain value transfers.
	Call(env Env, payload []byte) ([]byte, error)
}

// Env is everything the code of a contract account can access while it is
// executed.
type Env interface {
	// Context of the transaction being processed.
	Context() multisafe.Context
	// Self returns the address of the executed account.
	Self() multisafe.Address
	// Caller returns the address of the invoking principal. This is
	// either the transaction signer or another contract account.
	Caller() multisafe.Address
	// Value returns the amount transferred with this invocation. It is
	// already credited to the account balance.
	Value() coin.Amount
	// Store returns the namespace owned by the executed account.
	Store() multisafe.KVStore
	// Balance returns the amount held by given address.
	Balance(addr multisafe.Address) (coin.Amount, error)
	// Call invokes another account with the executed account as the
	// caller. Any failure of the callee is rolled back before being
	// returned.
	Call(target multisafe.Address, value coin.Amount, payload []byte) ([]byte, error)
	// Deploy creates a new contract account of given kind.
	Deploy(kind string, value coin.Amount, args []byte) (multisafe.Address, error)
	// Emit records a notification from the executed account.
	Emit(typ string, attrs ...common.KVPair)
	// Logger returns a logger bound to the executed account.
	Logger() log.Logger
}

// frame is a single invocation of account code.
type frame struct {
	m      *Machine
	ctx    multisafe.Context
	db     multisafe.KVCacheWrap
	self   multisafe.Address
	caller multisafe.Address
	value  coin.Amount
	depth  int
	events []multisafe.Event
}

var _ Env = (*frame)(nil)

func (f *frame) Context() multisafe.Context {
	return f.ctx
}

func (f *frame) Self() multisafe.Address {
	return f.self
}

func (f *frame) Caller() multisafe.Address {
	return f.caller
}

func (f *frame) Value() coin.Amount {
	return f.value
}

func (f *frame) Store() multisafe.KVStore {
	return AccountStore(f.db, f.self)
}

func (f *frame) Balance(addr multisafe.Address) (coin.Amount, error) {
	return f.m.cash.Balance(f.db, addr)
}

func (f *frame) Call(target multisafe.Address, value coin.Amount, payload []byte) ([]byte, error) {
	data, events, err := f.m.call(f.ctx, f.db, f.self, target, value, payload, f.depth+1)
	if err != nil {
		return nil, err
	}
	f.events = append(f.events, events...)
	return data, nil
}

func (f *frame) Deploy(kind string, value coin.Amount, args []byte) (multisafe.Address, error) {
	addr, events, err := f.m.deploy(f.ctx, f.db, f.self, kind, value, args, f.depth+1)
	if err != nil {
		return nil, err
	}
	f.events = append(f.events, events...)
	return addr, nil
}

func (f *frame) Emit(typ string, attrs ...common.KVPair) {
	f.events = append(f.events, multisafe.NewEvent(typ, f.self, attrs...))
}

func (f *frame) Logger() log.Logger {
	return multisafe.GetLogger(f.ctx).With("account", f.self.String(), "depth", f.depth)
}
