package multisafe

import (
	"fmt"
)

// Model is a single key/value result of a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers read-only queries against the committed state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, data []byte) ([]Model, error)
}

// QueryRouter dispatches a query to the handler registered for its path,
// such as "/wallets" or "/balances".
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls each extension's registration function.
func (r QueryRouter) RegisterAll(regs ...func(QueryRouter)) {
	for _, reg := range regs {
		reg(r)
	}
}

// Register binds h to path. A path can be bound only once.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
