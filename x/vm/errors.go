package vm

import (
	"github.com/iov-one/multisafe/errors"
)

// vm takes 1000-1009
var (
	// ErrCallDepth is returned when nested calls exceed the allowed depth.
	ErrCallDepth = errors.Register(1000, "call depth exceeded")
	// ErrUnknownKind is returned when no code is registered for a kind.
	ErrUnknownKind = errors.Register(1001, "unknown code kind")
)
