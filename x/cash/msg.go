package cash

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/coin"
	"github.com/iov-one/multisafe/errors"
)

const maxMemoSize int = 128

// SendMsg moves coins from the signer to the destination.
type SendMsg struct {
	Destination multisafe.Address `json:"destination"`
	Amount      coin.Amount       `json:"amount"`
	Memo        string            `json:"memo,omitempty"`
}

var _ multisafe.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var err error
	if m.Amount.IsZero() {
		err = errors.Append(err, errors.Wrap(errors.ErrInvalidAmount, "non-positive amount"))
	}
	if e := m.Destination.Validate(); e != nil {
		err = errors.Append(err, errors.Wrap(e, "destination"))
	}
	if len(m.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Wrap(errors.ErrInvalidState, "memo too long"))
	}
	return err
}
