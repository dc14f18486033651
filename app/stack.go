package app

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/x/cash"
	"github.com/iov-one/multisafe/x/factory"
	"github.com/iov-one/multisafe/x/sigs"
	"github.com/iov-one/multisafe/x/utils"
	"github.com/iov-one/multisafe/x/vm"
	"github.com/iov-one/multisafe/x/wallet"
)

// NewMachine returns a machine with the wallet and factory code
// registered.
func NewMachine(walletOpts []wallet.Option, opts ...vm.Option) *vm.Machine {
	m := vm.NewMachine(cash.NewController(cash.NewBucket()), opts...)
	wallet.Register(m, walletOpts...)
	factory.Register(m)
	return m
}

// Routes returns a router with all transaction handlers registered.
func Routes(m *vm.Machine) *Router {
	r := NewRouter()
	auth := sigs.Authenticate{}
	cash.RegisterRoutes(r, auth, cash.NewController(cash.NewBucket()))
	vm.RegisterRoutes(r, auth, m)
	return r
}

// QueryRouter returns a query router with all query handlers registered.
func QueryRouter() multisafe.QueryRouter {
	qr := multisafe.NewQueryRouter()
	qr.RegisterAll(
		cash.RegisterQuery,
		vm.RegisterQuery,
		wallet.RegisterQuery,
		factory.RegisterQuery,
	)
	return qr
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() multisafe.Initializer {
	return multisafe.ChainInitializers(
		cash.Initializer{},
	)
}

// Stack wraps the router with the decorators every transaction passes
// through.
func Stack(h multisafe.Handler) multisafe.Handler {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
		utils.NewSavepoint(),
	).WithHandler(h)
}
