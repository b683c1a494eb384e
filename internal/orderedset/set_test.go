package orderedset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := New("c", "a", "b")
	assert.Equal(t, []string{"c", "a", "b"}, s.Items())

	assert.False(t, s.Add("a"), "re-adding must not move an element")
	assert.Equal(t, []string{"c", "a", "b"}, s.Items())

	assert.True(t, s.Add("d"))
	assert.Equal(t, []string{"c", "a", "b", "d"}, s.Items())
}

func TestRemove(t *testing.T) {
	s := New(1, 2, 3)
	assert.True(t, s.Remove(2))
	assert.False(t, s.Remove(2))
	assert.Equal(t, []int{1, 3}, s.Items())
	assert.False(t, s.Has(2))
	assert.Equal(t, 2, s.Len())
}

func TestUpdate(t *testing.T) {
	s := New("a", "b")
	s.Update(New("b", "c", "a", "d"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, s.Items())

	s.Update(nil)
	assert.Equal(t, []string{"a", "b", "c", "d"}, s.Items())
}

func TestIntersectWith(t *testing.T) {
	s := New("a", "b", "c", "d")
	s.IntersectWith(New("d", "b", "x"))
	assert.Equal(t, []string{"b", "d"}, s.Items(), "receiver order must survive intersection")

	s.IntersectWith(nil)
	assert.Zero(t, s.Len(), "intersecting with nothing empties the set")
}

func TestDifferenceWith(t *testing.T) {
	s := New("a", "b", "c")
	s.DifferenceWith(New("b", "x"))
	assert.Equal(t, []string{"a", "c"}, s.Items())

	s.DifferenceWith(nil)
	assert.Equal(t, []string{"a", "c"}, s.Items())
}

func TestCopyIsIndependent(t *testing.T) {
	s := New("a", "b")
	c := s.Copy()
	require.Equal(t, s.Items(), c.Items())

	c.Add("z")
	s.Remove("a")
	assert.Equal(t, []string{"b"}, s.Items())
	assert.Equal(t, []string{"a", "b", "z"}, c.Items())
}
