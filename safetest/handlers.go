package safetest

import "github.com/iov-one/multisafe"

// Handler is a mock implementation of the multisafe.Handler interface.
//
// Every call is counted. If WriteKey is set, the handler writes WriteValue
// under that key before returning, which allows to test rollbacks.
type Handler struct {
	deliverCall   int
	DeliverResult multisafe.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte
}

var _ multisafe.Handler = (*Handler)(nil)

func (h *Handler) Deliver(ctx multisafe.Context, db multisafe.KVStore, tx multisafe.Tx) (*multisafe.DeliverResult, error) {
	h.deliverCall++
	if h.WriteKey != nil {
		if err := db.Set(h.WriteKey, h.WriteValue); err != nil {
			return nil, err
		}
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CallCount() int {
	return h.deliverCall
}

// Decorator is a mock implementation of the multisafe.Decorator interface.
//
// Set DeliverErr to force error response. If the error attribute is not
// set then wrapped handler method is called and its result returned.
// Regardless of the method call result the counter is incremented.
type Decorator struct {
	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ multisafe.Decorator = (*Decorator)(nil)

func (d *Decorator) Deliver(ctx multisafe.Context, db multisafe.KVStore, tx multisafe.Tx, next multisafe.Deliverer) (*multisafe.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CallCount() int {
	return d.deliverCall
}

// Decorate returns a handler that calls given decorator before given handler.
func Decorate(h multisafe.Handler, d multisafe.Decorator) multisafe.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn multisafe.Handler
	dc multisafe.Decorator
}

var _ multisafe.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Deliver(ctx multisafe.Context, db multisafe.KVStore, tx multisafe.Tx) (*multisafe.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
