package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Application ties the transaction pipeline to a commit store. Blocks are
// implicit: transactions delivered between two commits belong to the
// same block.
type Application struct {
	name   string
	logger log.Logger

	store       *CommitStore
	decoder     multisafe.TxDecoder
	handler     multisafe.Handler
	initializer multisafe.Initializer
	queryRouter multisafe.QueryRouter

	// chainID is loaded from the store or saved once by InitChain
	chainID string
	// baseContext carries information valid for the lifetime of the
	// application (eg. chainID)
	baseContext multisafe.Context
}

// NewApplication loads the latest state of given store. Handler is used to
// process delivered transactions, usually the router wrapped with Stack.
func NewApplication(
	name string,
	kv multisafe.CommitKVStore,
	decoder multisafe.TxDecoder,
	handler multisafe.Handler,
	queries multisafe.QueryRouter,
	init multisafe.Initializer,
) (*Application, error) {
	cs, err := NewCommitStore(kv)
	if err != nil {
		return nil, err
	}
	a := &Application{
		name:        name,
		store:       cs,
		decoder:     decoder,
		handler:     handler,
		initializer: init,
		queryRouter: queries,
		baseContext: context.Background(),
	}
	a.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	if chainID != "" {
		a.chainID = chainID
		a.baseContext = multisafe.WithChainID(a.baseContext, chainID)
	}
	return a, nil
}

// WithLogger sets the logger used by the application and by all
// transaction handlers.
func (a *Application) WithLogger(logger log.Logger) *Application {
	a.logger = logger
	a.baseContext = multisafe.WithLogger(a.baseContext, logger)
	return a
}

// ChainID returns the chain id or an empty string if the chain was not
// initialized yet.
func (a *Application) ChainID() string {
	return a.chainID
}

// Info returns the version and hash of the last commit.
func (a *Application) Info() (multisafe.CommitID, error) {
	return a.store.CommitInfo()
}

// InitChain stores the chain id and loads the application state using
// all initializers. It can be called only once per chain. A failing
// initializer leaves no trace in the store.
func (a *Application) InitChain(gen Genesis) error {
	if a.chainID != "" {
		return errors.Wrapf(errors.ErrInvalidState, "already initialized for chain %q", a.chainID)
	}
	db := a.store.DeliverStore().CacheWrap()
	if err := saveChainID(db, gen.ChainID); err != nil {
		db.Discard()
		return err
	}
	if a.initializer != nil {
		if err := a.initializer.FromGenesis(gen.AppState, db); err != nil {
			db.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := db.Write(); err != nil {
		return errors.Wrap(err, "write genesis state")
	}
	a.chainID = gen.ChainID
	a.baseContext = multisafe.WithChainID(a.baseContext, gen.ChainID)
	a.logger.Info("chain initialized", "chain", gen.ChainID)
	return nil
}

// DeliverTx decodes and processes a single transaction. State changes are
// visible to following transactions, but persisted only on Commit.
func (a *Application) DeliverTx(txBytes []byte) (*multisafe.DeliverResult, error) {
	if a.chainID == "" {
		return nil, errors.Wrap(errors.ErrInvalidState, "chain not initialized")
	}
	tx, err := a.loadTx(txBytes)
	if err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}
	commit, err := a.store.CommitInfo()
	if err != nil {
		return nil, err
	}
	ctx := multisafe.WithHeight(a.baseContext, commit.Version+1)
	ctx = multisafe.WithLogInfo(ctx,
		"call", "deliver_tx",
		"path", multisafe.GetPath(tx))
	return a.handler.Deliver(ctx, a.store.DeliverStore(), tx)
}

func (a *Application) loadTx(txBytes []byte) (tx multisafe.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = a.decoder(txBytes)
	return
}

// Commit persists all delivered transactions.
func (a *Application) Commit() (multisafe.CommitID, error) {
	id, err := a.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	a.logger.Debug("Commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash),
	)
	return id, nil
}

// Query reads the committed state using the handler registered for given
// path. A path may carry a "?modifier" suffix that is ignored.
func (a *Application) Query(path string, data []byte) ([]multisafe.Model, error) {
	path, _ = splitPath(path)
	qh := a.queryRouter.Handler(path)
	if qh == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "unexpected query path %q", path)
	}
	return qh.Query(a.store.Committed(), data)
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

// Close releases the store.
func (a *Application) Close() error {
	return a.store.Close()
}

// New returns a fully wired multisafe application using given store.
func New(kv multisafe.CommitKVStore, logger log.Logger) (*Application, error) {
	m := NewMachine(nil)
	a, err := NewApplication("multisafe", kv, TxDecoder, Stack(Routes(m)), QueryRouter(), Initializers())
	if err != nil {
		return nil, err
	}
	return a.WithLogger(logger), nil
}
