package tree

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

// Threaded tree rule validation utilities.

func asThreaded[K infra.OrderedKey](tree ThreadedTree[K]) (*threadedTree[K], error) {
	t, ok := tree.(*threadedTree[K])
	if !ok || t == nil {
		return nil, ErrForeignTree
	}
	return t, nil
}

// inorder collects nodes by real links only, it does not trust threads.
func (tree *threadedTree[K]) inorder() []handle {
	if tree.root == nilHandle {
		return nil
	}
	nodes := make([]handle, 0, tree.count)
	stack := make([]handle, 0, 64)
	defer func() {
		clear(stack)
	}()

	aux := tree.root
	for ; aux != nilHandle; aux = tree.child(aux, left) {
		stack = append(stack, aux)
	}
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		nodes = append(nodes, aux)
		for aux = tree.child(aux, right); aux != nilHandle; aux = tree.child(aux, left) {
			stack = append(stack, aux)
		}
	}
	return nodes
}

// OrderViolationValidate checks that the structural in-order sequence
// is strictly increasing by the tree comparator and has Len keys.
func OrderViolationValidate[K infra.OrderedKey](tree ThreadedTree[K]) error {
	t, err := asThreaded[K](tree)
	if err != nil {
		return err
	}
	nodes := t.inorder()
	if int64(len(nodes)) != t.count {
		return infra.NewErrorStack(fmt.Sprintf("[xtree] order violation, %d reachable nodes but len %d", len(nodes), t.count))
	}
	for i := 1; i < len(nodes); i++ {
		prev, next := t.node(nodes[i-1]).key, t.node(nodes[i]).key
		if t.kcmp(prev, next) >= 0 {
			return infra.NewErrorStack(fmt.Sprintf("[xtree] order violation, %v is not before %v", prev, next))
		}
	}
	return nil
}

// ThreadViolationValidate checks every non-real link. A left thread
// must reference the in-order predecessor and a right thread the
// successor. Only the head and the tail own absent links.
func ThreadViolationValidate[K infra.OrderedKey](tree ThreadedTree[K]) error {
	t, err := asThreaded[K](tree)
	if err != nil {
		return err
	}
	nodes := t.inorder()
	for i, h := range nodes {
		var neighbors [2]handle
		if i > 0 {
			neighbors[left] = nodes[i-1]
		}
		if i < len(nodes)-1 {
			neighbors[right] = nodes[i+1]
		}
		n := t.node(h)
		for _, s := range [2]side{left, right} {
			l := n.links[s]
			switch l.kind {
			case linkReal:
				continue
			case linkAbsent:
				if l.to != nilHandle || neighbors[s] != nilHandle {
					return infra.NewErrorStack(fmt.Sprintf("[xtree] thread violation, %v has an absent %s link", n.key, s))
				}
			case linkThread:
				if l.to == nilHandle || l.to != neighbors[s] {
					return infra.NewErrorStack(fmt.Sprintf("[xtree] thread violation, %v has a wrong %s thread", n.key, s))
				}
			default:
				return infra.NewErrorStack(fmt.Sprintf("[xtree] thread violation, %v has an unknown %s link", n.key, s))
			}
		}
	}
	return nil
}

func BoundaryViolationValidate[K infra.OrderedKey](tree ThreadedTree[K]) error {
	t, err := asThreaded[K](tree)
	if err != nil {
		return err
	}
	nodes := t.inorder()
	if len(nodes) == 0 {
		if t.head != nilHandle || t.tail != nilHandle || t.count != 0 {
			return infra.NewErrorStack("[xtree] boundary violation, empty tree keeps boundaries")
		}
		return nil
	}
	if t.head != nodes[0] {
		return infra.NewErrorStack("[xtree] boundary violation, head is not the minimum")
	}
	if t.tail != nodes[len(nodes)-1] {
		return infra.NewErrorStack("[xtree] boundary violation, tail is not the maximum")
	}
	return nil
}

func ParentViolationValidate[K infra.OrderedKey](tree ThreadedTree[K]) error {
	t, err := asThreaded[K](tree)
	if err != nil {
		return err
	}
	if t.root == nilHandle {
		return nil
	}
	if t.node(t.root).parent != nilHandle {
		return infra.NewErrorStack("[xtree] parent violation, root has a parent")
	}
	for _, h := range t.inorder() {
		for _, s := range [2]side{left, right} {
			if c := t.child(h, s); c != nilHandle && t.node(c).parent != h {
				return infra.NewErrorStack(fmt.Sprintf("[xtree] parent violation, %v lost its parent", t.node(c).key))
			}
		}
	}
	return nil
}

// postorder is the reverse of a root-right-left preorder.
func (tree *threadedTree[K]) postorder() []handle {
	if tree.root == nilHandle {
		return nil
	}
	order := make([]handle, 0, tree.count)
	stack := []handle{tree.root}
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		order = append(order, aux)
		if l := tree.child(aux, left); l != nilHandle {
			stack = append(stack, l)
		}
		if r := tree.child(aux, right); r != nilHandle {
			stack = append(stack, r)
		}
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// AVLViolationValidate recomputes the heights bottom-up and checks the
// stored heights and the balance factor of every node.
func AVLViolationValidate[K infra.OrderedKey](tree ThreadedTree[K]) error {
	t, err := asThreaded[K](tree)
	if err != nil {
		return err
	}
	heights := make(map[handle]int32, t.count)
	for _, h := range t.postorder() {
		lh, rh := heights[t.child(h, left)], heights[t.child(h, right)]
		height := max(lh, rh) + 1
		heights[h] = height
		n := t.node(h)
		if n.height != height {
			return infra.NewErrorStack(fmt.Sprintf("[xtree] avl violation, %v stores height %d but is %d", n.key, n.height, height))
		}
		if bf := rh - lh; bf < -1 || bf > 1 {
			return infra.NewErrorStack(fmt.Sprintf("[xtree] avl violation, %v balance factor %d", n.key, bf))
		}
	}
	return nil
}

func RedViolationValidate[K infra.OrderedKey](tree ThreadedTree[K]) error {
	t, err := asThreaded[K](tree)
	if err != nil {
		return err
	}
	if t.root == nilHandle {
		return nil
	}
	if t.colorOf(t.root) != Black {
		return infra.NewErrorStack("[xtree] rbtree red violation, red root")
	}
	for _, h := range t.inorder() {
		if t.colorOf(h) != Red {
			continue
		}
		if t.colorOf(t.child(h, left)) == Red || t.colorOf(t.child(h, right)) == Red {
			return infra.NewErrorStack(fmt.Sprintf("[xtree] rbtree red violation, red %v has a red child", t.node(h).key))
		}
	}
	return nil
}

// BFS traversal to load all nodes with at least one non-real link.
// Absent children hang below them.
func (tree *threadedTree[K]) bfsLeaves() []handle {
	if tree.root == nilHandle {
		return nil
	}
	leaves := make([]handle, 0, tree.count>>1+1)
	queue := make([]handle, 0, tree.count>>1+1)
	queue = append(queue, tree.root)
	for len(queue) > 0 {
		aux := queue[0]
		queue = queue[1:]
		l, r := tree.child(aux, left), tree.child(aux, right)
		if l == nilHandle || r == nilHandle {
			leaves = append(leaves, aux)
		}
		if l != nilHandle {
			queue = append(queue, l)
		}
		if r != nilHandle {
			queue = append(queue, r)
		}
	}
	return leaves
}

func (tree *threadedTree[K]) blackDepth(h handle) int {
	depth := 0
	for aux := h; aux != nilHandle; aux = tree.node(aux).parent {
		if tree.colorOf(aux) == Black {
			depth++
		}
	}
	return depth
}

/*
<X> is a RED node.
[X] is a BLACK node (or absent).

	        [13]
	        /  \
	     <8>    [15]
	     / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

Every path from the root down to an absent child
passes the same number of black nodes.
*/
func BlackViolationValidate[K infra.OrderedKey](tree ThreadedTree[K]) error {
	t, err := asThreaded[K](tree)
	if err != nil {
		return err
	}
	leaves := t.bfsLeaves()
	if len(leaves) == 0 {
		return nil
	}
	depth := t.blackDepth(leaves[0])
	for i := 1; i < len(leaves); i++ {
		if d := t.blackDepth(leaves[i]); d != depth {
			return infra.NewErrorStack(fmt.Sprintf("[xtree] rbtree black violation, %v black depth %d, expected %d", t.node(leaves[i]).key, d, depth))
		}
	}
	return nil
}

// Validate runs every validator that applies to the variant and
// combines their errors.
func (tree *threadedTree[K]) Validate() error {
	err := multierr.Combine(
		OrderViolationValidate[K](tree),
		ThreadViolationValidate[K](tree),
		BoundaryViolationValidate[K](tree),
		ParentViolationValidate[K](tree),
	)
	switch tree.variant {
	case AVL:
		err = multierr.Append(err, AVLViolationValidate[K](tree))
	case RedBlack:
		err = multierr.Append(err,
			multierr.Combine(RedViolationValidate[K](tree), BlackViolationValidate[K](tree)),
		)
	default:
	}
	return err
}
