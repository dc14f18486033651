package multisafe

import (
	"fmt"
	"strings"

	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult captures any non-error result
// to make sure people use error for error cases
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity
	Data []byte
	// Log is human-readable informational string
	Log string
	// Events is the ordered list of notifications emitted while
	// processing the transaction.
	Events []Event
}

// Event is an externally observable notification. Events are append-only
// and ordered by occurrence. An event emitted by a call that was later
// rolled back is never part of a result.
type Event struct {
	// Type is the notification name, for example "deposit".
	Type string
	// Source is the address of the account that emitted the event.
	Source Address
	// Attributes are the event arguments in declaration order.
	Attributes []common.KVPair
}

// NewEvent returns an event of given type emitted by source.
func NewEvent(typ string, source Address, attrs ...common.KVPair) Event {
	return Event{
		Type:       typ,
		Source:     source,
		Attributes: attrs,
	}
}

// Attr is a shortcut for building an event attribute.
func Attr(key string, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}

// Get returns the value of the first attribute with given key.
func (e Event) Get(key string) (string, bool) {
	for _, a := range e.Attributes {
		if string(a.Key) == key {
			return string(a.Value), true
		}
	}
	return "", false
}

func (e Event) String() string {
	attrs := make([]string, len(e.Attributes))
	for i, a := range e.Attributes {
		attrs[i] = fmt.Sprintf("%s=%s", a.Key, a.Value)
	}
	return fmt.Sprintf("%s(%s) from %s", e.Type, strings.Join(attrs, ", "), e.Source)
}

// FilterEvents returns all events of given type, in the original order.
func FilterEvents(events []Event, typ string) []Event {
	var res []Event
	for _, e := range events {
		if e.Type == typ {
			res = append(res, e)
		}
	}
	return res
}
