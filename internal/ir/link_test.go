package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkScopeSetGetRelease(t *testing.T) {
	g := NewGraph()
	b := g.NewBlock("entry")
	mode := NewIntMode(32, true)
	n := g.NewAddress(b, mode)

	scope := NewLinkScope(g)
	assert.Nil(t, scope.Get(n))

	sentinel := &struct{}{}
	scope.Set(n, sentinel)
	assert.Equal(t, sentinel, scope.Get(n))

	scope.Release()
	assert.Nil(t, scope.Get(n))
}

func TestLinkScopeReleaseOnlyClearsTouchedNodes(t *testing.T) {
	g := NewGraph()
	b := g.NewBlock("entry")
	mode := NewIntMode(32, true)
	n := g.NewAddress(b, mode)
	untouched := g.NewAddress(b, mode)
	untouched.SetLink("pre-existing")

	scope := NewLinkScope(g)
	scope.Set(n, "owned")
	scope.Release()

	assert.Nil(t, n.Link())
	assert.Equal(t, "pre-existing", untouched.Link())
}
