package app

import (
	"github.com/iov-one/multisafe"
	"github.com/iov-one/multisafe/errors"
	"github.com/iov-one/multisafe/x/cash"
	"github.com/iov-one/multisafe/x/sigs"
	"github.com/iov-one/multisafe/x/vm"
	amino "github.com/tendermint/go-amino"
)

// TxCodec serializes transactions. Every message type that can be routed
// must be registered here.
var TxCodec = amino.NewCodec()

func init() {
	TxCodec.RegisterInterface((*multisafe.Msg)(nil), nil)
	TxCodec.RegisterConcrete(&cash.SendMsg{}, "cash/send", nil)
	TxCodec.RegisterConcrete(&vm.CallMsg{}, "vm/call", nil)
	TxCodec.RegisterConcrete(&vm.DeployMsg{}, "vm/deploy", nil)
	TxCodec.Seal()
}

// Tx is a single message together with the condition authorizing it.
type Tx struct {
	Signer multisafe.Condition `json:"signer"`
	Msg    multisafe.Msg       `json:"msg"`
}

var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the message of this transaction.
func (tx *Tx) GetMsg() (multisafe.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSigners returns the signer, if set.
func (tx *Tx) GetSigners() []multisafe.Condition {
	if len(tx.Signer) == 0 {
		return nil
	}
	return []multisafe.Condition{tx.Signer}
}

// Marshal returns the binary representation of the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	raw, err := TxCodec.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}

// TxDecoder can parse the binary representation of a Tx.
func TxDecoder(raw []byte) (multisafe.Tx, error) {
	var tx Tx
	if err := TxCodec.UnmarshalBinaryBare(raw, &tx); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return &tx, nil
}

// DecodeJSONTx parses the JSON representation of a Tx, as produced by
// EncodeJSONTx. This is the format used by the command line tools.
func DecodeJSONTx(raw []byte) (*Tx, error) {
	var tx Tx
	if err := TxCodec.UnmarshalJSON(raw, &tx); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return &tx, nil
}

// EncodeJSONTx returns the JSON representation of a Tx.
func EncodeJSONTx(tx *Tx) ([]byte, error) {
	raw, err := TxCodec.MarshalJSONIndent(tx, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}
