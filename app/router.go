package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// dispatches a transaction to the one registered for the message path.
type Router struct {
	routes map[string]multisafe.Handler
}

var _ multisafe.Registry = (*Router)(nil)
var _ multisafe.Handler = (*Router)(nil)

// NewRouter returns a router without any handler registered.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]multisafe.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if
// the path is not valid or a handler was already registered for it.
func (r *Router) Handle(path string, h multisafe.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for given path or a handler that
// always fails with errors.ErrNotFound.
func (r *Router) Handler(path string) multisafe.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Deliver dispatches the transaction to the handler of its message path.
func (r *Router) Deliver(ctx multisafe.Context, store multisafe.KVStore, tx multisafe.Tx) (*multisafe.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	}
	return r.Handler(msg.Path()).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound.
type notFoundHandler string

func (path notFoundHandler) Deliver(multisafe.Context, multisafe.KVStore, multisafe.Tx) (*multisafe.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
