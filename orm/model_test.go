package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/multisafe/errors"
)

// Counter is a minimal protobuf model used by tests.
type Counter struct {
	Count int64  `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
	Label []byte `protobuf:"bytes,2,opt,name=label,proto3" json:"label,omitempty"`
}

func (m *Counter) Reset()         { *m = Counter{} }
func (m *Counter) String() string { return proto.CompactTextString(m) }
func (*Counter) ProtoMessage()    {}

func (m *Counter) Validate() error {
	if m.Count < 0 {
		return errors.Wrap(errors.ErrInvalidModel, "negative count")
	}
	return nil
}

func newCounterObj(key string, count int64) Object {
	return NewSimpleObj([]byte(key), &Counter{Count: count})
}
