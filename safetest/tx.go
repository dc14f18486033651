package safetest

import "github.com/iov-one/multisafe"

// Tx represents a transaction.
// Transaction represents a single message that is to be processed within this
// transaction.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg multisafe.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ multisafe.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (multisafe.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message.
// Message is a request processed within a single transaction.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate method.
	Err error
}

var _ multisafe.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
