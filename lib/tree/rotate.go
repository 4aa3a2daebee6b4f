package tree

import (
	"go.uber.org/zap"
)

/*
rotate(X, left), the right child S is promoted.
Sc moves from S to X. If S has no real left child, its left
link is a thread back to X, and X's right link turns into a
thread to S, the new in-order successor of X.

	     |                         |
	     X                         S
	    / \     rotate(X, left)   / \
	   L   S    ============>    X   Sd
	      / \                   / \
	    Sc   Sd                L   Sc

rotate(S, right) is the mirror.
The in-order sequence never changes, so no other thread is touched.
*/
func (tree *threadedTree[K]) rotate(x handle, dir side) handle {
	up := dir.opp() // the side of the promoted child
	xn := tree.node(x)
	if !xn.links[up].isReal() {
		// impossible run to here
		tree.violation("[xtree] rotate " + dir.String() + " without a real " + up.String() + " child")
	}

	y := xn.links[up].to
	yn := tree.node(y)
	p := xn.parent
	s, _ := tree.sideOf(x)

	if inner := yn.links[dir]; inner.isReal() {
		xn.links[up] = inner
		tree.node(inner.to).parent = x
	} else {
		xn.links[up] = threadLink(y)
	}
	yn.links[dir] = realLink(x)
	xn.parent = y

	// Hang the new local root where the old one was,
	// a nil p is the root position.
	tree.setChild(p, s, y)
	tree.stats.rotated()
	if tree.debugEnabled() {
		tree.logger.Debug("[xtree] rotate",
			zap.String("dir", dir.String()),
			zap.Any("pivot", xn.key),
			zap.Any("promoted", yn.key),
		)
	}
	return y
}
