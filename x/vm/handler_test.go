package vm

import (
	"context"
	"testing"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/safetest"
	"github.com/iov-one/multisafe/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlers(t *testing.T) {
	m, ctrl := newTestMachine()
	db := store.MemStore()
	signer := safetest.NewCondition()
	require.NoError(t, ctrl.IssueCoins(db, signer.Address(), 50))

	auth := &safetest.Auth{Signer: signer}
	rt := &routes{handlers: make(map[string]multisafe.Handler)}
	RegisterRoutes(rt, auth, m)

	ctx := context.Background()
	res, err := rt.handlers["vm/deploy"].Deliver(ctx, db, &safetest.Tx{Msg: &DeployMsg{Kind: "script", Value: 5}})
	require.NoError(t, err)
	contract := multisafe.Address(res.Data)
	assert.Equal(t, contract.String(), res.Log)
	require.Len(t, res.Events, 1)

	res, err = rt.handlers["vm/call"].Deliver(ctx, db, &safetest.Tx{Msg: &CallMsg{Target: contract, Value: 5}})
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "deposit", res.Events[0].Type)

	bal, err := ctrl.Balance(db, contract)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(10), bal)

	// Missing signature.
	anon := NewCallHandler(&safetest.Auth{}, m)
	_, err = anon.Deliver(ctx, db, &safetest.Tx{Msg: &CallMsg{Target: contract}})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// Invalid message.
	_, err = rt.handlers["vm/deploy"].Deliver(ctx, db, &safetest.Tx{Msg: &DeployMsg{Kind: "?"}})
	assert.True(t, errors.ErrInvalidMsg.Is(err))

	// Account query.
	qr := multisafe.NewQueryRouter()
	RegisterQuery(qr)
	models, err := qr.Handler("/accounts").Query(db, contract)
	require.NoError(t, err)
	assert.Len(t, models, 1)
}

type routes struct {
	handlers map[string]multisafe.Handler
}

func (r *routes) Handle(path string, h multisafe.Handler) {
	r.handlers[path] = h
}
