package factory

import (
	"github.com/gogo/protobuf/proto"
)

// Factory is the state of a wallet factory.
type Factory struct {
	// Administrator is the only address allowed to withdraw funds.
	Administrator []byte `protobuf:"bytes,1,opt,name=administrator,proto3" json:"administrator,omitempty"`
}

func (m *Factory) Reset()         { *m = Factory{} }
func (m *Factory) String() string { return proto.CompactTextString(m) }
func (*Factory) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Factory)(nil), "factory.Factory")
}
