package vm

import (
	"github.com/iov-one/multisafe/errors"
	amino "github.com/tendermint/go-amino"
)

// Payload is a call message understood by contract code.
type Payload interface {
	Validate() error
}

// PayloadCodec serializes call messages of a single contract kind. Each
// registered message type is identified by the prefix of its amino name, so
// a payload of an unknown type is detected while decoding.
type PayloadCodec struct {
	cdc *amino.Codec
}

// NewPayloadCodec returns a codec without any message registered.
func NewPayloadCodec() *PayloadCodec {
	cdc := amino.NewCodec()
	cdc.RegisterInterface((*Payload)(nil), nil)
	return &PayloadCodec{cdc: cdc}
}

// Register adds a message type under given unique name. Pass a pointer to
// the message.
func (c *PayloadCodec) Register(msg Payload, name string) {
	c.cdc.RegisterConcrete(msg, name, nil)
}

// Encode serializes a registered message.
func (c *PayloadCodec) Encode(msg Payload) ([]byte, error) {
	raw, err := c.cdc.MarshalBinaryBare(msg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, err.Error())
	}
	return raw, nil
}

// MustEncode is like Encode but panics on failure.
func (c *PayloadCodec) MustEncode(msg Payload) []byte {
	raw, err := c.Encode(msg)
	if err != nil {
		panic(err)
	}
	return raw
}

// Decode deserializes and validates a message. An unknown or malformed
// payload results in errors.ErrInvalidMsg.
func (c *PayloadCodec) Decode(raw []byte) (Payload, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "empty payload")
	}
	var msg Payload
	if err := c.cdc.UnmarshalBinaryBare(raw, &msg); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, err.Error())
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

// MarshalJSON encodes a registered message with its type name, which is
// the representation used by the command line tools.
func (c *PayloadCodec) MarshalJSON(msg Payload) ([]byte, error) {
	raw, err := c.cdc.MarshalJSON(msg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, err.Error())
	}
	return raw, nil
}

// UnmarshalJSON decodes a message encoded with MarshalJSON.
func (c *PayloadCodec) UnmarshalJSON(raw []byte) (Payload, error) {
	var msg Payload
	if err := c.cdc.UnmarshalJSON(raw, &msg); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, err.Error())
	}
	return msg, nil
}
