package cash

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

func TestSendHandler(t *testing.T) {
	sender := safetest.NewCondition()
	rcpt := safetest.NewAddress()

	cases := map[string]struct {
		signer  multisafe.Condition
		msg     multisafe.Msg
		wantErr *errors.Error
		wantRcp coin.Amount
	}{
		"success": {
			signer:  sender,
			msg:     &SendMsg{Destination: rcpt, Amount: 40},
			wantRcp: 40,
		},
		"no signer": {
			msg:     &SendMsg{Destination: rcpt, Amount: 40},
			wantErr: errors.ErrUnauthorized,
		},
		"insufficient funds": {
			signer:  sender,
			msg:     &SendMsg{Destination: rcpt, Amount: 101},
			wantErr: errors.ErrInsufficientAmount,
		},
		"invalid message": {
			signer:  sender,
			msg:     &SendMsg{Destination: rcpt},
			wantErr: errors.ErrInvalidAmount,
		},
		"wrong message": {
			signer:  sender,
			msg:     &safetest.Msg{RoutePath: "cash/send"},
			wantErr: errors.ErrInvalidType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			require.NoError(t, ctrl.IssueCoins(db, sender.Address(), 100))

			auth := &safetest.Auth{Signer: tc.signer}
			h := NewSendHandler(auth, ctrl)
			res, err := h.Deliver(context.Background(), db, &safetest.Tx{Msg: tc.msg})
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				require.Len(t, res.Events, 1)
				assert.Equal(t, "transfer", res.Events[0].Type)
			}

			got, err := ctrl.Balance(db, rcpt)
			require.NoError(t, err)
			assert.Equal(t, tc.wantRcp, got)
		})
	}
}

func TestBalanceQuery(t *testing.T) {
	db := store.MemStore()
	addr := safetest.NewAddress()
	require.NoError(t, NewController(NewBucket()).IssueCoins(db, addr, 9))

	qr := multisafe.NewQueryRouter()
	RegisterQuery(qr)
	res, err := qr.Handler("/balances").Query(db, addr)
	require.NoError(t, err)
	require.Len(t, res, 1)

	obj, err := NewBucket().Parse(addr, res[0].Value)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(9), obj.Value().(*Balance).Coins())
}
