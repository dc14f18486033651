package cash

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r multisafe.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// RegisterQuery will register this bucket as "/balances"
func RegisterQuery(qr multisafe.QueryRouter) {
	NewBucket().Register("balances", qr)
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ multisafe.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Deliver moves the tokens from the main signer to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx multisafe.Context, db multisafe.KVStore, tx multisafe.Tx) (*multisafe.DeliverResult, error) {
	var msg SendMsg
	if err := multisafe.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature missing")
	}
	src := signer.Address()
	if err := h.control.MoveCoins(db, src, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	event := multisafe.NewEvent("transfer", src,
		multisafe.Attr("to", msg.Destination.String()),
		multisafe.Attr("amount", msg.Amount.String()),
	)
	return &multisafe.DeliverResult{Events: []multisafe.Event{event}}, nil
}
