package vm

import (
	"fmt"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/store"
	"github.com/iov-one/multisafe/x/cash"
)

// DefaultMaxDepth is the default limit of nested invocations.
const DefaultMaxDepth = 64

// Machine executes contract accounts.
type Machine struct {
	codes    map[string]Code
	cash     cash.Controller
	accounts AccountBucket
	maxDepth int
}

// Option configures a Machine.
type Option func(*Machine)

// WithMaxDepth limits how deep invocations can be nested.
func WithMaxDepth(depth int) Option {
	return func(m *Machine) {
		m.maxDepth = depth
	}
}

// NewMachine returns a machine without any code registered. All value
// transfers are done using given controller.
func NewMachine(ctrl cash.Controller, opts ...Option) *Machine {
	m := &Machine{
		codes:    make(map[string]Code),
		cash:     ctrl,
		accounts: NewAccountBucket(),
		maxDepth: DefaultMaxDepth,
	}
	for _, fn := range opts {
		fn(m)
	}
	return m
}

// Register makes code available for deployment under given kind.
// Registering the same kind twice panics.
func (m *Machine) Register(kind string, code Code) {
	if !isKind(kind) {
		panic(fmt.Sprintf("invalid code kind: %q", kind))
	}
	if _, ok := m.codes[kind]; ok {
		panic(fmt.Sprintf("code kind %q already registered", kind))
	}
	m.codes[kind] = code
}

// Account returns the account stored under given address. Addresses that
// have no code attached result in errors.ErrNotFound.
func (m *Machine) Account(db multisafe.ReadOnlyKVStore, addr multisafe.Address) (*Account, error) {
	acct, err := m.accounts.Load(db, addr)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "account %s", addr)
	}
	return acct, nil
}

// Deploy creates a new contract account of given kind, transfers the value
// from the deployer and runs the code initialization.
func (m *Machine) Deploy(
	ctx multisafe.Context,
	db multisafe.KVStore,
	deployer multisafe.Address,
	kind string,
	value coin.Amount,
	args []byte,
) (multisafe.Address, []multisafe.Event, error) {
	return m.deploy(ctx, db, deployer, kind, value, args, 1)
}

// Call invokes the target account with given payload, after transferring
// the value from the caller.
func (m *Machine) Call(
	ctx multisafe.Context,
	db multisafe.KVStore,
	caller, target multisafe.Address,
	value coin.Amount,
	payload []byte,
) ([]byte, []multisafe.Event, error) {
	return m.call(ctx, db, caller, target, value, payload, 1)
}

func (m *Machine) deploy(
	ctx multisafe.Context,
	db multisafe.KVStore,
	deployer multisafe.Address,
	kind string,
	value coin.Amount,
	args []byte,
	depth int,
) (multisafe.Address, []multisafe.Event, error) {
	if depth > m.maxDepth {
		return nil, nil, errors.Wrapf(ErrCallDepth, "depth %d", depth)
	}
	code, ok := m.codes[kind]
	if !ok {
		return nil, nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}

	cache := cacheWrap(db)
	addr, err := m.accounts.Create(cache, &Account{Kind: kind, Creator: deployer})
	if err != nil {
		cache.Discard()
		return nil, nil, errors.Wrap(err, "create account")
	}
	f, err := m.enter(ctx, cache, deployer, addr, value, depth)
	if err != nil {
		cache.Discard()
		return nil, nil, err
	}
	f.Logger().Debug("deploy", "kind", kind, "deployer", deployer.String())
	if err := code.Init(f, args); err != nil {
		cache.Discard()
		return nil, nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, nil, errors.Wrap(err, "write frame")
	}
	return addr, f.events, nil
}

func (m *Machine) call(
	ctx multisafe.Context,
	db multisafe.KVStore,
	caller, target multisafe.Address,
	value coin.Amount,
	payload []byte,
	depth int,
) ([]byte, []multisafe.Event, error) {
	if depth > m.maxDepth {
		return nil, nil, errors.Wrapf(ErrCallDepth, "depth %d", depth)
	}
	if err := target.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "target")
	}

	cache := cacheWrap(db)
	f, err := m.enter(ctx, cache, caller, target, value, depth)
	if err != nil {
		cache.Discard()
		return nil, nil, err
	}

	acct, err := m.accounts.Load(cache, target)
	if err != nil {
		cache.Discard()
		return nil, nil, err
	}
	var data []byte
	if acct != nil {
		code, ok := m.codes[acct.Kind]
		if !ok {
			cache.Discard()
			return nil, nil, errors.Wrapf(ErrUnknownKind, "%q", acct.Kind)
		}
		f.Logger().Debug("call", "caller", caller.String(), "value", value.String())
		if data, err = code.Call(f, payload); err != nil {
			cache.Discard()
			return nil, nil, err
		}
	}
	if err := cache.Write(); err != nil {
		return nil, nil, errors.Wrap(err, "write frame")
	}
	return data, f.events, nil
}

// enter creates a frame and moves the value to the executed account.
func (m *Machine) enter(
	ctx multisafe.Context,
	db multisafe.KVCacheWrap,
	caller, self multisafe.Address,
	value coin.Amount,
	depth int,
) (*frame, error) {
	if !value.IsZero() {
		if err := m.cash.MoveCoins(db, caller, self, value); err != nil {
			return nil, errors.Wrap(err, "transfer value")
		}
	}
	return &frame{
		m:      m,
		ctx:    ctx,
		db:     db,
		self:   self,
		caller: caller,
		value:  value,
		depth:  depth,
	}, nil
}

func cacheWrap(db multisafe.KVStore) multisafe.KVCacheWrap {
	if c, ok := db.(multisafe.CacheableKVStore); ok {
		return c.CacheWrap()
	}
	return store.BTreeCacheable{KVStore: db}.CacheWrap()
}
