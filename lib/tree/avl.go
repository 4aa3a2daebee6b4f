package tree

import (
	"go.uber.org/zap"
)

func (tree *threadedTree[K]) heightOf(h handle) int32 {
	if h == nilHandle {
		return 0
	}
	return tree.node(h).height
}

func (tree *threadedTree[K]) updateHeight(h handle) {
	lh, rh := tree.heightOf(tree.child(h, left)), tree.heightOf(tree.child(h, right))
	tree.node(h).height = max(lh, rh) + 1
}

// balanceFactor is height(right) - height(left) over real links.
func (tree *threadedTree[K]) balanceFactor(h handle) int32 {
	return tree.heightOf(tree.child(h, right)) - tree.heightOf(tree.child(h, left))
}

func (tree *threadedTree[K]) avlRotate(x handle, dir side) handle {
	y := tree.rotate(x, dir)
	tree.updateHeight(x)
	tree.updateHeight(y)
	return y
}

/*
avlRebalance walks from h up to the root after an insertion or a
structural removal below h.

a1: Balance -2, the left child is left heavy or even. Rotate right.

	      X              L
	     /              / \
	    L     ====>    LL  X
	   /
	  LL

a2: Balance -2, the left child is right heavy. Rotate the left
child to the left first, then enter a1.

	    X            X            LR
	   /            /            /  \
	  L    ====>   LR   ====>   L    X
	   \          /
	   LR        L

a3, a4: Balance +2, mirror of a1 and a2.

The walk stops once the height of a position is unchanged,
nothing above it could be affected.
*/
func (tree *threadedTree[K]) avlRebalance(h handle) {
	for h != nilHandle {
		old := tree.node(h).height
		tree.updateHeight(h)

		switch bf := tree.balanceFactor(h); {
		case bf < -1:
			if l := tree.child(h, left); /* a2 */ tree.balanceFactor(l) > 0 {
				tree.traceAVL("a2", h)
				tree.avlRotate(l, left)
			} else {
				tree.traceAVL("a1", h)
			}
			h = tree.avlRotate(h, right)
		case bf > 1:
			if r := tree.child(h, right); /* a4 */ tree.balanceFactor(r) < 0 {
				tree.traceAVL("a4", h)
				tree.avlRotate(r, right)
			} else {
				tree.traceAVL("a3", h)
			}
			h = tree.avlRotate(h, left)
		default:
		}

		if tree.node(h).height == old {
			return
		}
		h = tree.node(h).parent
	}
}

func (tree *threadedTree[K]) traceAVL(c string, h handle) {
	if !tree.debugEnabled() {
		return
	}
	n := tree.node(h)
	tree.logger.Debug("[xtree] avl rebalance",
		zap.String("case", c),
		zap.Any("key", n.key),
		zap.Int32("balance", tree.balanceFactor(h)),
	)
}
