package vm

import (
	"github.com/gogo/protobuf/proto"
)

// Account describes an address that has code attached.
type Account struct {
	// Kind is the name under which the code is registered.
	Kind string `protobuf:"bytes,1,opt,name=kind,proto3" json:"kind,omitempty"`
	// Creator is the address that deployed this account.
	Creator []byte `protobuf:"bytes,2,opt,name=creator,proto3" json:"creator,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Account)(nil), "vm.Account")
}
