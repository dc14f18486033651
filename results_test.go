package multisafe_test

import (
	"testing"

	"github.com/iov-one/multisafe"
	"github.com/stretchr/testify/assert"
)

func TestEventAttributes(t *testing.T) {
	src := multisafe.NewCondition("vm", "account", []byte{1}).Address()
	e := multisafe.NewEvent("approve",
		src,
		multisafe.Attr("owner", "A1"),
		multisafe.Attr("id", "3"),
	)

	v, ok := e.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	_, ok = e.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, "approve(owner=A1, id=3) from "+src.String(), e.String())
}

func TestFilterEvents(t *testing.T) {
	events := []multisafe.Event{
		multisafe.NewEvent("submit", nil, multisafe.Attr("id", "0")),
		multisafe.NewEvent("approve", nil, multisafe.Attr("id", "0")),
		multisafe.NewEvent("submit", nil, multisafe.Attr("id", "1")),
	}
	got := multisafe.FilterEvents(events, "submit")
	if assert.Len(t, got, 2) {
		v, _ := got[1].Get("id")
		assert.Equal(t, "1", v)
	}
	assert.Empty(t, multisafe.FilterEvents(events, "execute"))
}
