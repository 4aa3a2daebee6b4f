package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	tree := mustNew[int](t, RedBlack, WithValues(3, 1, 5, 2, 4))
	c := tree.Cursor()
	require.Equal(t, int64(5), c.Len())

	key, ok := c.Peek()
	require.True(t, ok)
	require.Equal(t, 1, key)
	require.False(t, c.HasPrev())
	require.True(t, c.HasNext())

	_, ok = c.Prev()
	require.False(t, ok)
	key, _ = c.Peek()
	require.Equal(t, 1, key)

	for expected := 2; expected <= 5; expected++ {
		key, ok = c.Next()
		require.True(t, ok)
		require.Equal(t, expected, key)
	}
	require.False(t, c.HasNext())
	_, ok = c.Next()
	require.False(t, ok)
	key, _ = c.Peek()
	require.Equal(t, 5, key)

	key, ok = c.Prev()
	require.True(t, ok)
	require.Equal(t, 4, key)

	key, ok = c.Head()
	require.True(t, ok)
	require.Equal(t, 1, key)
	key, ok = c.Tail()
	require.True(t, ok)
	require.Equal(t, 5, key)
	require.Equal(t, "5", c.String())
}

func TestCursor_Empty(t *testing.T) {
	tree := mustNew[int](t, AVL)
	c := tree.Cursor()
	_, ok := c.Peek()
	require.False(t, ok)
	require.False(t, c.HasNext())
	require.False(t, c.HasPrev())
	_, ok = c.Next()
	require.False(t, ok)
	_, ok = c.Tail()
	require.False(t, ok)
	require.True(t, c.Position().IsAbsent())
	require.Equal(t, "<absent>", c.String())
}

func TestCursor_Invalidated(t *testing.T) {
	tree := mustNew[int](t, Unbalanced, WithValues(1, 2, 3))
	c := tree.Cursor()
	_, _ = c.Next()
	require.True(t, tree.Remove(2))

	_, ok := c.Peek()
	require.False(t, ok)
	require.False(t, c.HasNext())
	_, ok = c.Next()
	require.False(t, ok)

	key, ok := c.Head()
	require.True(t, ok)
	require.Equal(t, 1, key)
}
