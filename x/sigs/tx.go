package sigs

import (
	"github.com/iov-one/multisafe"
)

// SignedTx represents a transaction that declares who is authorizing it.
// Signers are trusted as declared. Proving the authorization is the job
// of the node accepting the transaction.
type SignedTx interface {
	multisafe.Tx
	// GetSigners returns the conditions authorizing the message. The
	// first one is the main signer.
	GetSigners() []multisafe.Condition
}
