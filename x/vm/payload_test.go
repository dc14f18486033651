package vm

import (
	"testing"

	"github.com/iov-one/multisafe/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingPayload struct {
	Text string
}

func (p *pingPayload) Validate() error {
	if p.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

type pongPayload struct {
	Count uint32
}

func (*pongPayload) Validate() error { return nil }

func TestPayloadCodec(t *testing.T) {
	a := NewPayloadCodec()
	a.Register(&pingPayload{}, "test/ping")

	b := NewPayloadCodec()
	b.Register(&pongPayload{}, "test/pong")

	raw, err := a.Encode(&pingPayload{Text: "hi"})
	require.NoError(t, err)

	msg, err := a.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, &pingPayload{Text: "hi"}, msg)

	// Payload of another codec is not understood.
	_, err = b.Decode(raw)
	assert.True(t, errors.ErrInvalidMsg.Is(err))

	_, err = a.Decode(nil)
	assert.True(t, errors.ErrInvalidMsg.Is(err))

	_, err = a.Decode([]byte("garbage"))
	assert.True(t, errors.ErrInvalidMsg.Is(err))

	// Decoded messages are validated.
	_, err = a.Decode(a.MustEncode(&pingPayload{}))
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestPayloadCodecJSON(t *testing.T) {
	c := NewPayloadCodec()
	c.Register(&pongPayload{}, "test/pong")

	raw, err := c.MarshalJSON(&pongPayload{Count: 3})
	require.NoError(t, err)
	assert.Contains(t, string(raw), "test/pong")

	msg, err := c.UnmarshalJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, &pongPayload{Count: 3}, msg)
}
