package utils

import (
	"time"

	"github.com/iov-one/multisafe"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ multisafe.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx multisafe.Context, store multisafe.KVStore, tx multisafe.Tx, next multisafe.Deliverer) (*multisafe.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var (
		resLog string
		events int
	)
	if err == nil {
		resLog = res.Log
		events = len(res.Events)
	}
	logger := multisafe.GetLogger(ctx).With(
		"path", multisafe.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	if err != nil {
		logger.Error(resLog, "err", err)
	} else {
		logger.Info(resLog, "events", events)
	}
	return res, err
}
