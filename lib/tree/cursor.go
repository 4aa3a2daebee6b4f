package tree

import (
	"fmt"

	"github.com/benz9527/xtree/lib/infra"
)

// positioner is the traversal surface a Cursor walks over.
type positioner[K infra.OrderedKey] interface {
	Len() int64
	Head() Position
	Tail() Position
	Next(p Position) Position
	Prev(p Position) Position
	Peek(p Position) (K, bool)
}

// Cursor is a bidirectional cursor over a tree. It keeps one
// position and never mutates the tree. Any structural mutation
// of the tree invalidates the cursor; a cursor whose node has
// been removed peeks as absent and cannot move.
type Cursor[K infra.OrderedKey] struct {
	ref     positioner[K]
	current Position
}

// newCursor starts at the head of the tree.
func newCursor[K infra.OrderedKey](ref positioner[K]) *Cursor[K] {
	c := &Cursor[K]{ref: ref}
	c.current = ref.Head()
	return c
}

func (c *Cursor[K]) Len() int64 {
	return c.ref.Len()
}

// Head moves to the minimum and returns its key.
func (c *Cursor[K]) Head() (K, bool) {
	c.current = c.ref.Head()
	return c.Peek()
}

// Tail moves to the maximum and returns its key.
func (c *Cursor[K]) Tail() (K, bool) {
	c.current = c.ref.Tail()
	return c.Peek()
}

// Next moves to the in-order successor and returns its key.
// At the tail the cursor stays and false is returned.
func (c *Cursor[K]) Next() (K, bool) {
	n := c.ref.Next(c.current)
	if n.IsAbsent() {
		return *new(K), false
	}
	c.current = n
	return c.Peek()
}

// Prev is the mirror of Next.
func (c *Cursor[K]) Prev() (K, bool) {
	p := c.ref.Prev(c.current)
	if p.IsAbsent() {
		return *new(K), false
	}
	c.current = p
	return c.Peek()
}

func (c *Cursor[K]) HasNext() bool {
	return !c.ref.Next(c.current).IsAbsent()
}

func (c *Cursor[K]) HasPrev() bool {
	return !c.ref.Prev(c.current).IsAbsent()
}

func (c *Cursor[K]) Peek() (K, bool) {
	return c.ref.Peek(c.current)
}

func (c *Cursor[K]) Position() Position {
	return c.current
}

// String renders the key under the cursor, or "<absent>".
func (c *Cursor[K]) String() string {
	key, ok := c.Peek()
	if !ok {
		return "<absent>"
	}
	return fmt.Sprint(key)
}
