package tree

import (
	"fmt"
	"iter"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
)

var _ ThreadedTree[int] = (*threadedTree[int])(nil)

// threadedTree is the container of all variants.
// Every null child slot holds a thread to the in-order neighbor,
// the head and tail nodes keep absent links on their outer sides.
type threadedTree[K infra.OrderedKey] struct {
	arena          *nodeArena[K]
	kcmp           infra.OrderedKeyComparator[K]
	logger         xlog.XLogger
	stats          *treeStats
	root           handle
	head           handle // minimum
	tail           handle // maximum
	count          int64
	variant        Variant
	policy         DuplicatePolicy
	isDesc         bool
	isRmBorrowSucc bool
}

func (tree *threadedTree[K]) node(h handle) *tnode[K] {
	return tree.arena.get(h)
}

// child returns the real child on side s, or nilHandle.
func (tree *threadedTree[K]) child(h handle, s side) handle {
	if h == nilHandle {
		return nilHandle
	}
	if l := tree.node(h).links[s]; l.isReal() {
		return l.to
	}
	return nilHandle
}

// sideOf returns the side of h under its parent.
// The bool result is true if h is the root.
func (tree *threadedTree[K]) sideOf(h handle) (side, bool) {
	p := tree.node(h).parent
	if p == nilHandle {
		return left, true
	}
	pn := tree.node(p)
	if l := pn.links[left]; l.isReal() && l.to == h {
		return left, false
	}
	if l := pn.links[right]; l.isReal() && l.to == h {
		return right, false
	}
	tree.violation("[xtree] parent does not own the child")
	return left, false
}

// setChild links c as the real child of p on side s. A nil p
// means the position of the root.
func (tree *threadedTree[K]) setChild(p handle, s side, c handle) {
	if p == nilHandle {
		tree.root = c
		if c != nilHandle {
			tree.node(c).parent = nilHandle
		}
		return
	}
	if c == nilHandle {
		// impossible run to here
		tree.violation("[xtree] real link to nil node")
	}
	tree.node(p).links[s] = realLink(c)
	tree.node(c).parent = p
}

// extreme descends real links on side s and returns the last node.
func (tree *threadedTree[K]) extreme(h handle, s side) handle {
	for {
		l := tree.node(h).links[s]
		if !l.isReal() {
			return h
		}
		h = l.to
	}
}

// step returns the in-order neighbor of h on side s.
// A thread is followed directly, a real link leads to the
// opposite extreme of that subtree.
func (tree *threadedTree[K]) step(h handle, s side) handle {
	l := tree.node(h).links[s]
	if !l.isReal() {
		return l.to
	}
	return tree.extreme(l.to, s.opp())
}

func (tree *threadedTree[K]) search(key K) handle {
	for x := tree.root; x != nilHandle; {
		n := tree.node(x)
		res := tree.kcmp(key, n.key)
		if /* equal */ res == 0 {
			return x
		}
		s := right
		if /* less */ res < 0 {
			s = left
		}
		l := n.links[s]
		if !l.isReal() {
			return nilHandle
		}
		x = l.to
	}
	return nilHandle
}

// insertNode materializes a new node at the first thread met during
// the descent. The new node inherits that thread on the same side
// and threads back to its parent on the other side.
func (tree *threadedTree[K]) insertNode(key K) (h handle, inserted bool) {
	if tree.root == nilHandle {
		h = tree.arena.alloc(key)
		tree.root, tree.head, tree.tail = h, h, h
		tree.count++
		return h, true
	}

	x := tree.root
	var s side
	for {
		n := tree.node(x)
		res := tree.kcmp(key, n.key)
		if /* equal */ res == 0 {
			// Duplicate keys are rejected. This is the place to
			// count or materialize them for the other policies.
			return x, false
		}
		s = right
		if /* less */ res < 0 {
			s = left
		}
		if l := n.links[s]; l.isReal() {
			x = l.to
			continue
		}
		break
	}

	h = tree.arena.alloc(key)
	nn, pn := tree.node(h), tree.node(x)
	nn.parent = x
	nn.links[s] = pn.links[s]
	nn.links[s.opp()] = threadLink(x)
	pn.links[s] = realLink(h)

	if nn.links[left].kind == linkAbsent {
		tree.head = h
	}
	if nn.links[right].kind == linkAbsent {
		tree.tail = h
	}
	tree.count++
	return h, true
}

func (tree *threadedTree[K]) Variant() Variant {
	return tree.variant
}

func (tree *threadedTree[K]) Len() int64 {
	return tree.count
}

func (tree *threadedTree[K]) Insert(key K) error {
	if infra.IsIncomparable(key) {
		return ErrInvalidArgument
	}
	h, inserted := tree.insertNode(key)
	if !inserted {
		return nil
	}
	switch tree.variant {
	case AVL:
		tree.avlRebalance(tree.node(h).parent)
	case RedBlack:
		tree.insertRebalance(h)
	default:
	}
	tree.stats.inserted()
	return nil
}

func (tree *threadedTree[K]) Remove(key K) bool {
	if tree.count <= 0 || infra.IsIncomparable(key) {
		return false
	}
	z := tree.search(key)
	if z == nilHandle {
		return false
	}

	if z == tree.head {
		tree.head = tree.step(z, right)
	}
	if z == tree.tail {
		tree.tail = tree.step(z, left)
	}

	switch tree.variant {
	case AVL:
		res := tree.removeBalanced(z)
		tree.avlRebalance(res.parent)
	case RedBlack:
		res := tree.removeBalanced(z)
		tree.removeRebalance(res)
	default:
		tree.removeUnbalanced(z)
	}
	tree.arena.free(z)
	tree.count--
	tree.stats.removed()
	return true
}

func (tree *threadedTree[K]) Contains(key K) bool {
	if tree.count <= 0 || infra.IsIncomparable(key) {
		return false
	}
	return tree.search(key) != nilHandle
}

func (tree *threadedTree[K]) Min() (K, bool) {
	if tree.head == nilHandle {
		return *new(K), false
	}
	return tree.node(tree.head).key, true
}

func (tree *threadedTree[K]) Max() (K, bool) {
	if tree.tail == nilHandle {
		return *new(K), false
	}
	return tree.node(tree.tail).key, true
}

func (tree *threadedTree[K]) walk(from handle, s side) iter.Seq[K] {
	return func(yield func(K) bool) {
		for x := from; x != nilHandle; x = tree.step(x, s) {
			if !yield(tree.node(x).key) {
				return
			}
		}
	}
}

// Forward yields keys in order, starting at the head and following
// threads. No stack is used.
func (tree *threadedTree[K]) Forward() iter.Seq[K] {
	return func(yield func(K) bool) {
		tree.walk(tree.head, right)(yield)
	}
}

func (tree *threadedTree[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		tree.walk(tree.tail, left)(yield)
	}
}

func (tree *threadedTree[K]) Foreach(action func(idx int64, key K) bool) {
	idx := int64(0)
	for x := tree.head; x != nilHandle; x = tree.step(x, right) {
		if !action(idx, tree.node(x).key) {
			return
		}
		idx++
	}
}

func (tree *threadedTree[K]) position(h handle) Position {
	if h == nilHandle {
		return Position{}
	}
	return Position{h: h, gen: tree.node(h).gen}
}

func (tree *threadedTree[K]) Head() Position {
	return tree.position(tree.head)
}

func (tree *threadedTree[K]) Tail() Position {
	return tree.position(tree.tail)
}

// Next is O(height) for an arbitrary position, amortized O(1)
// over consecutive positions.
func (tree *threadedTree[K]) Next(p Position) Position {
	if !tree.arena.live(p) {
		return Position{}
	}
	return tree.position(tree.step(p.h, right))
}

func (tree *threadedTree[K]) Prev(p Position) Position {
	if !tree.arena.live(p) {
		return Position{}
	}
	return tree.position(tree.step(p.h, left))
}

func (tree *threadedTree[K]) Peek(p Position) (K, bool) {
	if !tree.arena.live(p) {
		return *new(K), false
	}
	return tree.node(p.h).key, true
}

func (tree *threadedTree[K]) Cursor() *Cursor[K] {
	return newCursor[K](tree)
}

// Height counts nodes on the longest real path, an empty tree is 0.
func (tree *threadedTree[K]) Height() int {
	if tree.root == nilHandle {
		return 0
	}
	type frame struct {
		h     handle
		depth int
	}
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{tree.root, 1})
	height := 0
	for size := len(stack); size > 0; size = len(stack) {
		f := stack[size-1]
		stack = stack[:size-1]
		if f.depth > height {
			height = f.depth
		}
		for _, s := range [2]side{left, right} {
			if c := tree.child(f.h, s); c != nilHandle {
				stack = append(stack, frame{c, f.depth + 1})
			}
		}
	}
	return height
}

// Release frees all nodes. The tree is empty and reusable afterward.
func (tree *threadedTree[K]) Release() {
	for x := tree.head; x != nilHandle; {
		next := tree.step(x, right)
		tree.arena.free(x)
		x = next
	}
	tree.stats.released(tree.count)
	tree.root, tree.head, tree.tail = nilHandle, nilHandle, nilHandle
	tree.count = 0
}

func (tree *threadedTree[K]) String() string {
	return fmt.Sprint(Collect(tree.Forward()))
}

// debugEnabled guards the tracing of rotations and fixup cases,
// so that no fields are built when debug logs are dropped.
func (tree *threadedTree[K]) debugEnabled() bool {
	return tree.logger.Enabled(zapcore.DebugLevel)
}

// violation reports a broken structural invariant. It is a bug
// inside the package, so it is never recovered.
func (tree *threadedTree[K]) violation(msg string) {
	err := infra.NewErrorStack(msg)
	tree.logger.ErrorStack(err, "[xtree] structural invariant violation",
		zap.Stringer("variant", tree.variant),
		zap.Int64("len", tree.count),
	)
	panic(err)
}
