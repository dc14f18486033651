package factory

import (
	"github.com/iov-one/multisafe/errors"
)

// factory takes 1200-1209
var (
	// ErrNotAdministrator is returned when a privileged operation is
	// called by anyone but the administrator.
	ErrNotAdministrator = errors.Register(1200, "not the administrator")
)
