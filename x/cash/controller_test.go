package cash

import (
	"testing"

	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/safetest"
	"github.com/iov-one/multisafe/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCoins(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	addr := safetest.NewAddress()

	bal, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(0), bal)

	require.NoError(t, ctrl.IssueCoins(db, addr, 500))
	require.NoError(t, ctrl.IssueCoins(db, addr, 250))
	bal, err = ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(750), bal)

	err = ctrl.IssueCoins(db, addr, coin.MaxAmount)
	assert.True(t, errors.ErrOverflow.Is(err))

	err = ctrl.IssueCoins(db, []byte("short"), 1)
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestMoveCoins(t *testing.T) {
	alice := safetest.NewAddress()
	bob := safetest.NewAddress()

	cases := map[string]struct {
		issue     coin.Amount
		src, dest []byte
		amount    coin.Amount
		wantErr   *errors.Error
		wantSrc   coin.Amount
		wantDest  coin.Amount
	}{
		"move some": {
			issue: 100, src: alice, dest: bob, amount: 40,
			wantSrc: 60, wantDest: 40,
		},
		"move everything": {
			issue: 100, src: alice, dest: bob, amount: 100,
			wantSrc: 0, wantDest: 100,
		},
		"insufficient funds": {
			issue: 100, src: alice, dest: bob, amount: 101,
			wantErr: errors.ErrInsufficientAmount,
			wantSrc: 100, wantDest: 0,
		},
		"zero amount": {
			issue: 100, src: alice, dest: bob, amount: 0,
			wantErr: errors.ErrInvalidAmount,
			wantSrc: 100, wantDest: 0,
		},
		"to self": {
			issue: 100, src: alice, dest: alice, amount: 30,
			wantSrc: 100, wantDest: 100,
		},
		"invalid destination": {
			issue: 100, src: alice, dest: []byte("bad"), amount: 1,
			wantErr: errors.ErrInvalidInput,
			wantSrc: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			require.NoError(t, ctrl.IssueCoins(db, alice, tc.issue))

			err := ctrl.MoveCoins(db, tc.src, tc.dest, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			got, err := ctrl.Balance(db, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSrc, got)

			if err := ctrl.MoveCoins(db, tc.src, tc.dest, 0); !errors.ErrInvalidAmount.Is(err) {
				t.Fatalf("zero transfer must fail: %v", err)
			}
			if tc.wantErr == nil {
				got, err = ctrl.Balance(db, tc.dest)
				require.NoError(t, err)
				assert.Equal(t, tc.wantDest, got)
			}
		})
	}
}

func TestZeroBalanceIsNotStored(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	a, b := safetest.NewAddress(), safetest.NewAddress()

	require.NoError(t, ctrl.IssueCoins(db, a, 10))
	require.NoError(t, ctrl.MoveCoins(db, a, b, 10))

	has, err := NewBucket().Has(db, a)
	require.NoError(t, err)
	assert.False(t, has)
}
