package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_Lifecycle(t *testing.T) {
	var g Gate
	require.NoError(t, g.Ready())

	gen := g.Begin()
	assert.True(t, g.Busy())
	assert.ErrorIs(t, g.Ready(), ErrBusy)

	assert.True(t, g.End(gen))
	assert.False(t, g.Busy())
	assert.NoError(t, g.Ready())
}

func TestGate_BumpDropsStaleCall(t *testing.T) {
	var g Gate
	gen := g.Begin()
	g.Bump()

	assert.False(t, g.Busy())
	assert.False(t, g.End(gen))

	next := g.Begin()
	assert.True(t, g.End(next))
}

func TestGate_Close(t *testing.T) {
	var g Gate
	gen := g.Begin()
	g.Close()

	assert.True(t, g.Closed())
	assert.ErrorIs(t, g.Ready(), ErrClosed)
	assert.False(t, g.End(gen))
}

func TestMessage(t *testing.T) {
	assert.True(t, Message{}.IsZero())
	assert.False(t, Success("ok").IsZero())
	assert.True(t, Error("x").IsError())
	assert.False(t, Success("ok").IsError())
}

func TestGate_Current(t *testing.T) {
	var g Gate
	gen := g.Generation()
	assert.True(t, g.Current(gen))

	g.Bump()
	assert.False(t, g.Current(gen))
	assert.True(t, g.Current(g.Generation()))

	g.Close()
	assert.False(t, g.Current(g.Generation()))
}
