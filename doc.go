/*
Package multisafe defines all common interfaces to tie together the various
subpackages of a multi-signature wallet ledger, as well as implementations of
some of the simpler components (when interfaces would be too much overhead).

A ledger is composed of extensions living under x/. Each extension owns a part
of the state, kept in a KVStore, and registers Handlers for the messages it
understands. Handlers are wrapped with Decorators providing common
functionality (logging, savepoints, authentication).

We pass context through context.Context between app, middleware, and
handlers. There exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set to avoid lower-level modules
overwriting the value (eg. height, chain id).
*/
package multisafe
