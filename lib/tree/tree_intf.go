package tree

import (
	"errors"
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

type RBColor uint8

const (
	Black RBColor = iota
	Red
)

func (c RBColor) String() string {
	switch c {
	case Black:
		return "Black"
	case Red:
		return "Red"
	default:
	}
	return "RBColor(unknown)"
}

// Variant selects the balancing strategy of a threaded tree.
// It is fixed for the lifetime of a container.
type Variant uint8

const (
	Unbalanced Variant = iota
	AVL
	RedBlack
	_variantMax
)

func (v Variant) String() string {
	switch v {
	case Unbalanced:
		return "unbalanced"
	case AVL:
		return "avl"
	case RedBlack:
		return "redblack"
	default:
	}
	return "variant(unknown)"
}

type DuplicatePolicy uint8

const (
	// RejectDuplicates ignores the insertion of an existing key.
	RejectDuplicates DuplicatePolicy = iota
	// CountDuplicates aggregates duplicate keys by counter. Not implemented.
	CountDuplicates
	// MaterializeDuplicates stores each duplicate as its own node. Not implemented.
	MaterializeDuplicates
)

var (
	ErrInvalidArgument   = errors.New("[xtree] invalid argument")
	ErrUnsupportedPolicy = errors.New("[xtree] unsupported duplicate policy")
	ErrForeignTree       = errors.New("[xtree] tree is not created by this package")
)

// Position is an opaque reference to a node of one tree.
// The zero Position is absent. A Position is invalidated by
// removal of its node; reading it afterward reports absent.
type Position struct {
	h   handle
	gen uint32
}

func (p Position) IsAbsent() bool {
	return p.h == nilHandle
}

// ThreadedTree is a double threaded binary search tree.
// It is not thread safe. Callers must hold an external lock
// around any sequence of operations that needs a consistent
// view, including the whole life of a Cursor.
type ThreadedTree[K infra.OrderedKey] interface {
	Variant() Variant
	Len() int64
	// Insert returns ErrInvalidArgument if the key has no total
	// order (NaN). Existing keys are ignored.
	Insert(key K) error
	// Remove reports whether the key was present and removed.
	Remove(key K) bool
	Contains(key K) bool
	Min() (K, bool)
	Max() (K, bool)
	// Forward and Backward are restartable, each range starts
	// again from the boundary.
	Forward() iter.Seq[K]
	Backward() iter.Seq[K]
	Foreach(action func(idx int64, key K) bool)

	Head() Position
	Tail() Position
	Next(p Position) Position
	Prev(p Position) Position
	Peek(p Position) (K, bool)
	Cursor() *Cursor[K]

	Height() int
	Validate() error
	Release()
	// String renders the keys in tree order, e.g. "[1 2 3]".
	String() string
}
