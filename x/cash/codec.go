package cash

import (
	"github.com/gogo/protobuf/proto"
)

// Balance is the amount of the native currency held by an address.
type Balance struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Balance)(nil), "cash.Balance")
}
