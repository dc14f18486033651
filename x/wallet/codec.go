package wallet

import (
	"github.com/gogo/protobuf/proto"
)

// Wallet is the configuration and counters of a single wallet.
type Wallet struct {
	// Owners in the order they were given at construction.
	Owners [][]byte `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners,omitempty"`
	// Required is the number of approvals needed to execute a proposal.
	Required uint32 `protobuf:"varint,2,opt,name=required,proto3" json:"required,omitempty"`
	// ProposalCount is the number of submitted proposals and the id of
	// the next one.
	ProposalCount uint64 `protobuf:"varint,3,opt,name=proposal_count,json=proposalCount,proto3" json:"proposal_count,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Proposal is a call that the wallet makes once approved.
type Proposal struct {
	Target   []byte `protobuf:"bytes,1,opt,name=target,proto3" json:"target,omitempty"`
	Value    uint64 `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
	Payload  []byte `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
	Executed bool   `protobuf:"varint,4,opt,name=executed,proto3" json:"executed,omitempty"`
}

func (m *Proposal) Reset()         { *m = Proposal{} }
func (m *Proposal) String() string { return proto.CompactTextString(m) }
func (*Proposal) ProtoMessage()    {}

// Approval is the consent of a single owner. Only a given consent is
// stored.
type Approval struct {
	Approved bool `protobuf:"varint,1,opt,name=approved,proto3" json:"approved,omitempty"`
}

func (m *Approval) Reset()         { *m = Approval{} }
func (m *Approval) String() string { return proto.CompactTextString(m) }
func (*Approval) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Wallet)(nil), "wallet.Wallet")
	proto.RegisterType((*Proposal)(nil), "wallet.Proposal")
	proto.RegisterType((*Approval)(nil), "wallet.Approval")
}
