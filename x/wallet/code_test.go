package wallet

import (
	"context"
	"strconv"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/safetest"
	"github.com/iov-one/multisafe/store"
	"github.com/iov-one/multisafe/x/cash"
	"github.com/iov-one/multisafe/x/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorderCode accepts any call and remembers the last payload. A recorder
// deployed with "broken" arguments rejects every call until repaired.
type recorderCode struct{}

func (recorderCode) Init(env vm.Env, args []byte) error {
	if string(args) == "broken" {
		return env.Store().Set([]byte("broken"), []byte{1})
	}
	return nil
}

func (recorderCode) Call(env vm.Env, payload []byte) ([]byte, error) {
	broken, err := env.Store().Has([]byte("broken"))
	if err != nil {
		return nil, err
	}
	if broken {
		return nil, errors.Wrap(errors.ErrInvalidState, "recorder is broken")
	}
	env.Emit("received", multisafe.Attr("payload", string(payload)))
	return []byte("ok"), env.Store().Set([]byte("last"), append([]byte("p:"), payload...))
}

// attackerCode calls back into the wallet that executes it, trying to
// execute the same proposal again. The outcome is stored.
type attackerCode struct{}

func (attackerCode) Init(env vm.Env, args []byte) error {
	return env.Store().Set([]byte("wallet"), args)
}

func (attackerCode) Call(env vm.Env, payload []byte) ([]byte, error) {
	wallet, err := env.Store().Get([]byte("wallet"))
	if err != nil {
		return nil, err
	}
	id, err := DecodeProposalID(payload)
	if err != nil {
		return nil, err
	}
	outcome := "executed twice"
	_, err = env.Call(wallet, 0, Codec.MustEncode(&ExecuteMsg{ProposalID: id}))
	switch {
	case ErrAlreadyExecuted.Is(err):
		outcome = "already executed"
	case err != nil:
		outcome = err.Error()
	}
	return nil, env.Store().Set([]byte("outcome"), []byte(outcome))
}

// insiderCode is an owner contract. When called with the address of a
// wallet, it submits a proposal to that wallet, approves it and stores the
// id it got back.
type insiderCode struct{}

func (insiderCode) Init(vm.Env, []byte) error { return nil }

func (insiderCode) Call(env vm.Env, payload []byte) ([]byte, error) {
	wallet := multisafe.Address(payload)
	data, err := env.Call(wallet, 0, Codec.MustEncode(&SubmitMsg{Target: env.Self()}))
	if err != nil {
		return nil, errors.Wrap(err, "submit")
	}
	id, err := DecodeProposalID(data)
	if err != nil {
		return nil, err
	}
	if _, err := env.Call(wallet, 0, Codec.MustEncode(&ApproveMsg{ProposalID: id})); err != nil {
		return nil, errors.Wrap(err, "approve")
	}
	return nil, env.Store().Set([]byte("submitted"), data)
}

type fixture struct {
	t      *testing.T
	ctx    context.Context
	db     multisafe.KVStore
	m      *vm.Machine
	ctrl   cash.Controller
	owners []multisafe.Address
	wallet multisafe.Address
}

func newFixture(t *testing.T, owners int, required uint32, opts ...Option) *fixture {
	t.Helper()
	ctrl := cash.NewController(cash.NewBucket())
	m := vm.NewMachine(ctrl)
	Register(m, opts...)
	m.Register("recorder", recorderCode{})
	m.Register("attacker", attackerCode{})
	m.Register("insider", insiderCode{})

	f := &fixture{
		t:    t,
		ctx:  context.Background(),
		db:   store.MemStore(),
		m:    m,
		ctrl: ctrl,
	}
	for i := 0; i < owners; i++ {
		f.owners = append(f.owners, safetest.NewAddress())
	}
	args := Codec.MustEncode(&InitMsg{Owners: f.owners, Required: required})
	addr, _, err := m.Deploy(f.ctx, f.db, f.owners[0], Kind, 0, args)
	require.NoError(t, err)
	f.wallet = addr
	return f
}

// send calls the wallet. A nil message is a plain transfer.
func (f *fixture) send(caller multisafe.Address, value coin.Amount, msg vm.Payload) ([]byte, []multisafe.Event, error) {
	var payload []byte
	if msg != nil {
		payload = Codec.MustEncode(msg)
	}
	return f.m.Call(f.ctx, f.db, caller, f.wallet, value, payload)
}

func (f *fixture) submit(target multisafe.Address, value coin.Amount, payload []byte) uint64 {
	f.t.Helper()
	data, _, err := f.send(f.owners[0], 0, &SubmitMsg{Target: target, Value: value, Payload: payload})
	require.NoError(f.t, err)
	id, err := DecodeProposalID(data)
	require.NoError(f.t, err)
	return id
}

func (f *fixture) approve(id uint64, owners ...multisafe.Address) {
	f.t.Helper()
	for _, o := range owners {
		_, _, err := f.send(o, 0, &ApproveMsg{ProposalID: id})
		require.NoError(f.t, err)
	}
}

func (f *fixture) fund(addr multisafe.Address, amount coin.Amount) {
	f.t.Helper()
	require.NoError(f.t, f.ctrl.IssueCoins(f.db, addr, amount))
}

func (f *fixture) balance(addr multisafe.Address) coin.Amount {
	f.t.Helper()
	bal, err := f.ctrl.Balance(f.db, addr)
	require.NoError(f.t, err)
	return bal
}

func (f *fixture) deploy(kind string, args []byte) multisafe.Address {
	f.t.Helper()
	addr, _, err := f.m.Deploy(f.ctx, f.db, safetest.NewAddress(), kind, 0, args)
	require.NoError(f.t, err)
	return addr
}

func (f *fixture) engine() *Engine {
	return NewEngine(vm.AccountStore(f.db, f.wallet))
}

func (f *fixture) proposal(id uint64) *Proposal {
	f.t.Helper()
	p, err := f.engine().Proposal(id)
	require.NoError(f.t, err)
	return p
}

func TestWalletDeployment(t *testing.T) {
	a, b := safetest.NewAddress(), safetest.NewAddress()

	cases := map[string]struct {
		args    []byte
		wantErr *errors.Error
	}{
		"valid": {
			args: Codec.MustEncode(&InitMsg{Owners: []multisafe.Address{a, b}, Required: 2}),
		},
		"no owners": {
			args:    Codec.MustEncode(&InitMsg{Required: 1}),
			wantErr: ErrEmptyOwnerList,
		},
		"invalid quorum": {
			args:    Codec.MustEncode(&InitMsg{Owners: []multisafe.Address{a, b}, Required: 3}),
			wantErr: ErrInvalidQuorum,
		},
		"duplicate owner": {
			args:    Codec.MustEncode(&InitMsg{Owners: []multisafe.Address{a, b, a}, Required: 1}),
			wantErr: ErrDuplicateOwner,
		},
		"null owner": {
			args:    Codec.MustEncode(&InitMsg{Owners: []multisafe.Address{a, make(multisafe.Address, multisafe.AddressLength)}, Required: 1}),
			wantErr: ErrInvalidOwner,
		},
		"missing arguments": {
			args:    nil,
			wantErr: errors.ErrInvalidMsg,
		},
		"not a construction message": {
			args:    Codec.MustEncode(&ApproveMsg{ProposalID: 1}),
			wantErr: errors.ErrInvalidMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			m := vm.NewMachine(cash.NewController(cash.NewBucket()))
			Register(m)
			db := store.MemStore()

			addr, _, err := m.Deploy(context.Background(), db, a, Kind, 0, tc.args)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			acct, err := m.Account(db, addr)
			require.NoError(t, err)
			assert.Equal(t, Kind, acct.Kind)

			e := NewEngine(vm.AccountStore(db, addr))
			set, err := e.OwnerSet()
			require.NoError(t, err)
			assert.Equal(t, []multisafe.Address{a, b}, set.Owners())
			assert.Equal(t, uint32(2), set.Required())
		})
	}
}

func TestDeposit(t *testing.T) {
	f := newFixture(t, 2, 1)
	anyone := safetest.NewAddress()
	f.fund(anyone, 10)

	data, events, err := f.send(anyone, 4, nil)
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, coin.Amount(4), f.balance(f.wallet))
	assert.Equal(t, coin.Amount(6), f.balance(anyone))

	require.Len(t, events, 1)
	assert.Equal(t, EventDeposit, events[0].Type)
	assert.Equal(t, f.wallet, events[0].Source)
	sender, _ := events[0].Get("sender")
	assert.Equal(t, anyone.String(), sender)
	amount, _ := events[0].Get("amount")
	assert.Equal(t, "4", amount)

	// Not enough funds to deposit.
	_, events, err = f.send(anyone, 7, nil)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
	assert.Empty(t, events)
	assert.Equal(t, coin.Amount(4), f.balance(f.wallet))
}

func TestSubmit(t *testing.T) {
	f := newFixture(t, 3, 2)
	target := safetest.NewAddress()

	for want := uint64(0); want < 2; want++ {
		data, events, err := f.send(f.owners[1], 0, &SubmitMsg{Target: target, Value: 1, Payload: []byte("P")})
		require.NoError(t, err)
		id, err := DecodeProposalID(data)
		require.NoError(t, err)
		assert.Equal(t, want, id)

		require.Len(t, events, 1)
		assert.Equal(t, EventSubmit, events[0].Type)
		got, _ := events[0].Get("id")
		assert.Equal(t, strconv.FormatUint(want, 10), got)

		count, err := f.engine().ProposalCount()
		require.NoError(t, err)
		assert.Equal(t, want+1, count)
		assert.False(t, f.proposal(id).Executed)
	}

	_, events, err := f.send(safetest.NewAddress(), 0, &SubmitMsg{Target: target})
	assert.True(t, ErrNotOwner.Is(err))
	assert.Empty(t, events)
	count, err := f.engine().ProposalCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	_, _, err = f.send(f.owners[0], 0, &SubmitMsg{Target: multisafe.Address("short")})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestApproveAndRevoke(t *testing.T) {
	f := newFixture(t, 3, 2)
	id := f.submit(safetest.NewAddress(), 0, nil)
	stranger := safetest.NewAddress()

	_, _, err := f.send(stranger, 0, &ApproveMsg{ProposalID: id})
	assert.True(t, ErrNotOwner.Is(err))

	_, _, err = f.send(f.owners[0], 0, &ApproveMsg{ProposalID: id + 1})
	assert.True(t, ErrProposalNotFound.Is(err))

	_, _, err = f.send(f.owners[0], 0, &RevokeMsg{ProposalID: id})
	assert.True(t, ErrNotApproved.Is(err))

	_, events, err := f.send(f.owners[0], 0, &ApproveMsg{ProposalID: id})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventApprove, events[0].Type)
	owner, _ := events[0].Get("owner")
	assert.Equal(t, f.owners[0].String(), owner)
	got, _ := events[0].Get("id")
	assert.Equal(t, "0", got)

	_, _, err = f.send(f.owners[0], 0, &ApproveMsg{ProposalID: id})
	assert.True(t, ErrAlreadyApproved.Is(err))

	f.approve(id, f.owners[1])
	n, err := f.engine().ApprovalCount(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)

	_, events, err = f.send(f.owners[1], 0, &RevokeMsg{ProposalID: id})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventRevoke, events[0].Type)
	owner, _ = events[0].Get("owner")
	assert.Equal(t, f.owners[1].String(), owner)

	approved, err := f.engine().Approved(id, f.owners[1])
	require.NoError(t, err)
	assert.False(t, approved)
	n, err = f.engine().ApprovalCount(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), n)

	_, _, err = f.send(f.owners[0], 0, &ExecuteMsg{ProposalID: id})
	assert.True(t, ErrQuorumNotMet.Is(err))
}

func TestExecuteTransfersValue(t *testing.T) {
	f := newFixture(t, 3, 2)
	x := safetest.NewAddress()
	f.fund(f.wallet, 10)

	id := f.submit(x, 3, []byte("P"))
	assert.Equal(t, uint64(0), id)

	_, _, err := f.send(f.owners[2], 0, &ExecuteMsg{ProposalID: id})
	assert.True(t, ErrQuorumNotMet.Is(err))

	f.approve(id, f.owners[0])
	_, _, err = f.send(f.owners[2], 0, &ExecuteMsg{ProposalID: id})
	assert.True(t, ErrQuorumNotMet.Is(err))
	assert.False(t, f.proposal(id).Executed)

	f.approve(id, f.owners[1])
	_, events, err := f.send(f.owners[2], 0, &ExecuteMsg{ProposalID: id})
	require.NoError(t, err)

	assert.True(t, f.proposal(id).Executed)
	assert.Equal(t, coin.Amount(7), f.balance(f.wallet))
	assert.Equal(t, coin.Amount(3), f.balance(x))

	require.Len(t, events, 1)
	assert.Equal(t, EventExecute, events[0].Type)
	assert.Equal(t, f.wallet, events[0].Source)
	got, _ := events[0].Get("id")
	assert.Equal(t, "0", got)

	// Execution happens once.
	_, _, err = f.send(f.owners[2], 0, &ExecuteMsg{ProposalID: id})
	assert.True(t, ErrAlreadyExecuted.Is(err))
	_, _, err = f.send(f.owners[2], 0, &ApproveMsg{ProposalID: id})
	assert.True(t, ErrAlreadyExecuted.Is(err))
	_, _, err = f.send(f.owners[0], 0, &RevokeMsg{ProposalID: id})
	assert.True(t, ErrAlreadyExecuted.Is(err))
	assert.Equal(t, coin.Amount(3), f.balance(x))

	_, _, err = f.send(f.owners[2], 0, &ExecuteMsg{ProposalID: id + 1})
	assert.True(t, ErrProposalNotFound.Is(err))
}

func TestExecuteCallsContract(t *testing.T) {
	f := newFixture(t, 2, 1)
	rec := f.deploy("recorder", nil)
	f.fund(f.wallet, 5)

	id := f.submit(rec, 5, []byte("hello"))
	f.approve(id, f.owners[1])

	data, events, err := f.send(f.owners[0], 0, &ExecuteMsg{ProposalID: id})
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)

	last, err := vm.AccountStore(f.db, rec).Get([]byte("last"))
	require.NoError(t, err)
	assert.Equal(t, []byte("p:hello"), last)
	assert.Equal(t, coin.Amount(5), f.balance(rec))
	assert.Equal(t, coin.Amount(0), f.balance(f.wallet))

	require.Len(t, events, 2)
	assert.Equal(t, "received", events[0].Type)
	assert.Equal(t, rec, events[0].Source)
	assert.Equal(t, EventExecute, events[1].Type)
	assert.Equal(t, f.wallet, events[1].Source)
}

func TestExecuteRollback(t *testing.T) {
	f := newFixture(t, 3, 2)
	rec := f.deploy("recorder", []byte("broken"))
	f.fund(f.wallet, 5)

	id := f.submit(rec, 2, []byte("P"))
	f.approve(id, f.owners[0], f.owners[1])

	_, events, err := f.send(f.owners[0], 0, &ExecuteMsg{ProposalID: id})
	assert.True(t, ErrCallFailed.Is(err))
	assert.True(t, errors.ErrInvalidState.Is(err), "cause is kept")
	assert.Empty(t, events)
	assert.False(t, f.proposal(id).Executed)
	assert.Equal(t, coin.Amount(5), f.balance(f.wallet))
	assert.Equal(t, coin.Amount(0), f.balance(rec))

	// Once the target is repaired, the same proposal can be executed.
	require.NoError(t, vm.AccountStore(f.db, rec).Delete([]byte("broken")))
	_, _, err = f.send(f.owners[0], 0, &ExecuteMsg{ProposalID: id})
	require.NoError(t, err)
	assert.True(t, f.proposal(id).Executed)
	assert.Equal(t, coin.Amount(3), f.balance(f.wallet))
	assert.Equal(t, coin.Amount(2), f.balance(rec))
}

func TestExecuteInsufficientFunds(t *testing.T) {
	f := newFixture(t, 1, 1)
	x := safetest.NewAddress()

	id := f.submit(x, 3, nil)
	f.approve(id, f.owners[0])

	_, _, err := f.send(f.owners[0], 0, &ExecuteMsg{ProposalID: id})
	assert.True(t, ErrCallFailed.Is(err))
	assert.False(t, f.proposal(id).Executed)

	f.fund(f.owners[0], 3)
	_, _, err = f.send(f.owners[0], 3, nil)
	require.NoError(t, err)

	_, _, err = f.send(f.owners[0], 0, &ExecuteMsg{ProposalID: id})
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(3), f.balance(x))
	assert.Equal(t, coin.Amount(0), f.balance(f.wallet))
}

func TestExecuteReentrancy(t *testing.T) {
	f := newFixture(t, 2, 2)
	attacker := f.deploy("attacker", f.wallet)
	f.fund(f.wallet, 1)

	id := f.submit(attacker, 1, ProposalKey(0))
	f.approve(id, f.owners...)

	_, _, err := f.send(f.owners[0], 0, &ExecuteMsg{ProposalID: id})
	require.NoError(t, err)

	outcome, err := vm.AccountStore(f.db, attacker).Get([]byte("outcome"))
	require.NoError(t, err)
	assert.Equal(t, "already executed", string(outcome))

	assert.True(t, f.proposal(id).Executed)
	assert.Equal(t, coin.Amount(1), f.balance(attacker))
	assert.Equal(t, coin.Amount(0), f.balance(f.wallet))
}

func TestExecuteReentrantSubmit(t *testing.T) {
	f := newFixture(t, 2, 2)
	insider := f.deploy("insider", nil)

	// A wallet the insider contract is an owner of.
	owners := []multisafe.Address{f.owners[0], f.owners[1], insider}
	args := Codec.MustEncode(&InitMsg{Owners: owners, Required: 2})
	w, _, err := f.m.Deploy(f.ctx, f.db, f.owners[0], Kind, 0, args)
	require.NoError(t, err)
	f.wallet = w

	id := f.submit(insider, 0, w)
	f.approve(id, f.owners...)

	_, events, err := f.send(f.owners[0], 0, &ExecuteMsg{ProposalID: id})
	require.NoError(t, err)
	assert.Len(t, multisafe.FilterEvents(events, EventSubmit), 1)
	assert.Len(t, multisafe.FilterEvents(events, EventApprove), 1)
	assert.Len(t, multisafe.FilterEvents(events, EventExecute), 1)

	// The nested submission got the next free id and survived the execution.
	submitted, err := vm.AccountStore(f.db, insider).Get([]byte("submitted"))
	require.NoError(t, err)
	nested, err := DecodeProposalID(submitted)
	require.NoError(t, err)
	assert.Equal(t, id+1, nested)

	count, err := f.engine().ProposalCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
	assert.True(t, f.proposal(id).Executed)
	p := f.proposal(nested)
	assert.False(t, p.Executed)
	assert.Equal(t, insider, p.TargetAddress())

	approved, err := f.engine().Approved(nested, insider)
	require.NoError(t, err)
	assert.True(t, approved)
	n, err := f.engine().ApprovalCount(nested)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), n)
}

func TestExecutePolicy(t *testing.T) {
	stranger := safetest.NewAddress()

	open := newFixture(t, 2, 1)
	id := open.submit(safetest.NewAddress(), 0, nil)
	open.approve(id, open.owners[1])
	_, _, err := open.send(stranger, 0, &ExecuteMsg{ProposalID: id})
	require.NoError(t, err)

	restricted := newFixture(t, 2, 1, WithOwnerOnlyExecution())
	id = restricted.submit(safetest.NewAddress(), 0, nil)
	restricted.approve(id, restricted.owners[1])
	_, _, err = restricted.send(stranger, 0, &ExecuteMsg{ProposalID: id})
	assert.True(t, ErrNotOwner.Is(err))
	_, _, err = restricted.send(restricted.owners[1], 0, &ExecuteMsg{ProposalID: id})
	require.NoError(t, err)
}

func TestUnknownPayload(t *testing.T) {
	f := newFixture(t, 1, 1)

	_, _, err := f.m.Call(f.ctx, f.db, f.owners[0], f.wallet, 0, []byte("garbage"))
	assert.True(t, errors.ErrInvalidMsg.Is(err))

	_, _, err = f.send(f.owners[0], 0, &InitMsg{Owners: f.owners, Required: 1})
	assert.True(t, errors.ErrInvalidMsg.Is(err))
}

func TestQuery(t *testing.T) {
	f := newFixture(t, 2, 1)
	id := f.submit(safetest.NewAddress(), 2, nil)
	f.approve(id, f.owners[1])

	qr := multisafe.NewQueryRouter()
	RegisterQuery(qr)

	models, err := qr.Handler("/wallets").Query(f.db, f.wallet)
	require.NoError(t, err)
	require.Len(t, models, 1)
	var w Wallet
	require.NoError(t, proto.Unmarshal(models[0].Value, &w))
	assert.Equal(t, uint32(1), w.Required)
	assert.Equal(t, uint64(1), w.ProposalCount)

	key := append(f.wallet.Clone(), ProposalKey(id)...)
	models, err = qr.Handler("/wallets/proposals").Query(f.db, key)
	require.NoError(t, err)
	require.Len(t, models, 1)
	var p Proposal
	require.NoError(t, proto.Unmarshal(models[0].Value, &p))
	assert.Equal(t, uint64(2), p.Value)

	key = append(f.wallet.Clone(), ApprovalKey(id, f.owners[1])...)
	models, err = qr.Handler("/wallets/approvals").Query(f.db, key)
	require.NoError(t, err)
	assert.Len(t, models, 1)

	key = append(f.wallet.Clone(), ApprovalKey(id, f.owners[0])...)
	models, err = qr.Handler("/wallets/approvals").Query(f.db, key)
	require.NoError(t, err)
	assert.Empty(t, models)

	_, err = qr.Handler("/wallets").Query(f.db, []byte("short"))
	assert.True(t, errors.ErrInvalidInput.Is(err))
}
