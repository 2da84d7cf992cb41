package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"swarmfield/engine"
)

func TestLayoutLookupsWrap(t *testing.T) {
	l := engine.ClassicNetwork
	n := len(l.Nodes)

	assert.Equal(t, l.Nodes[3], l.Node(3))
	assert.Equal(t, l.Nodes[3], l.Node(n+3))
	assert.Equal(t, l.Nodes[n-1], l.Node(-1))

	assert.Equal(t, l.Kinds[2], l.Kind(len(l.Kinds)+2))
	assert.Equal(t, l.Kinds[len(l.Kinds)-1], l.Kind(-1))
	assert.Equal(t, l.Sizes[1], l.Size(len(l.Sizes)+1))
}

func TestLayoutWithoutKindsDrawsCircles(t *testing.T) {
	l := engine.NetworkLayout{Nodes: []engine.Vec2{{X: 0.5, Y: 0.5}}}
	assert.Equal(t, engine.KindCircle, l.Kind(4))
}

func TestLayoutByName(t *testing.T) {
	l, ok := engine.LayoutByName("extended")
	assert.True(t, ok)
	assert.Equal(t, "extended", l.Name)

	_, ok = engine.LayoutByName("hexagon")
	assert.False(t, ok)
}
