package tree

// detached describes the position vacated by a structural removal.
// The balancing extensions start their fixup walk from it.
type detached struct {
	parent handle  // parent of the vacated position, nil if it is the root
	child  handle  // real node now occupying the position, maybe nil
	side   side    // side of the vacated position under parent
	color  RBColor // color of the node that left the position
}

/*
unlink removes y which has at most one real child.

r1: No real children. The parent inherits y's thread on the same
side, so it threads to y's neighbor or becomes a boundary.

	  P            P
	 /     ====>  :
	Y            (pred of Y)

r2: Only a left real child L. The predecessor of Y is the
rightmost node of L, its thread to Y is extended to Y's successor.
L takes the place of Y.

	  P                P
	 /                /
	Y     ====>      L
	/ :             / \
	L  (succ)      ..  M : (succ)
	 \
	  M : Y

r3: Only a right real child. Mirror of r2.
*/
func (tree *threadedTree[K]) unlink(y handle) detached {
	yn := tree.node(y)
	p := yn.parent
	s, _ := tree.sideOf(y)
	res := detached{parent: p, side: s, color: yn.color}
	l, r := yn.links[left], yn.links[right]

	switch {
	case /* r1 */ !l.isReal() && !r.isReal():
		if p == nilHandle {
			tree.root = nilHandle
		} else {
			tree.node(p).links[s] = yn.links[s]
		}
	case /* r2 */ l.isReal() && !r.isReal():
		pred := tree.extreme(l.to, right)
		tree.node(pred).links[right] = r
		tree.setChild(p, s, l.to)
		res.child = l.to
	case /* r3 */ !l.isReal() && r.isReal():
		succ := tree.extreme(r.to, left)
		tree.node(succ).links[left] = l
		tree.setChild(p, s, r.to)
		res.child = r.to
	default:
		// impossible run to here
		tree.violation("[xtree] unlink a node with two real children")
	}
	yn.parent = nilHandle
	return res
}

/*
removeUnbalanced detaches z without any balancing.

r4: Both children are real. The successor S (leftmost of R)
absorbs the real left subtree L, the predecessor M (rightmost
of L) threads to S, and R takes the place of Z.

	    P               P
	    |               |
	    Z               R
	   / \    ====>    /
	  L   R           S
	   \ /           /
	   M S          L
	                 \
	                  M : S
*/
func (tree *threadedTree[K]) removeUnbalanced(z handle) {
	zn := tree.node(z)
	if !zn.links[left].isReal() || !zn.links[right].isReal() {
		tree.unlink(z)
		return
	}

	l, r := zn.links[left].to, zn.links[right].to
	succ := tree.extreme(r, left)
	pred := tree.extreme(l, right)
	p := zn.parent
	s, _ := tree.sideOf(z)

	tree.setChild(succ, left, l)
	tree.node(pred).links[right] = threadLink(succ)
	tree.setChild(p, s, r)
	zn.parent = nilHandle
}

/*
removeBalanced detaches z and keeps the subtree shapes that the
balancing extensions rely on.
With at most one real child, z is unlinked directly (r1-r3).

r5: Both children are real. The in-order neighbor Y on the
borrowed side (pred by default, succ optional) is relinked into
Z's structural position. Keys are never swapped, so nodes keep
their identity and positions stay valid.

Borrow pred:

	   |                  |
	   Z                  Y
	  / \                / \
	 ..  R    ====>     ..  R
	  \  /               \  /
	  Q N : Z            Q N : Y
	   \                  \
	    Y                  C
	   /
	  C
*/
func (tree *threadedTree[K]) removeBalanced(z handle) detached {
	zn := tree.node(z)
	if !zn.links[left].isReal() || !zn.links[right].isReal() {
		return tree.unlink(z)
	}

	d := left
	if tree.isRmBorrowSucc {
		d = right
	}
	e := d.opp()

	zd, ze := zn.links[d].to, zn.links[e].to
	y := tree.extreme(zd, e)  // neighbor of z on side d, no real e child
	nb := tree.extreme(ze, d) // neighbor of z on side e, threads to z
	p := zn.parent
	zs, _ := tree.sideOf(z)

	yn := tree.node(y)
	res := detached{color: yn.color}
	if y == zd {
		// Y keeps its own d subtree.
		res.parent, res.side, res.child = y, d, tree.child(y, d)
	} else {
		q := yn.parent
		c := tree.child(y, d)
		if c != nilHandle {
			tree.setChild(q, e, c)
		} else {
			tree.node(q).links[e] = threadLink(y)
		}
		tree.setChild(y, d, zd)
		res.parent, res.side, res.child = q, e, c
	}
	tree.setChild(y, e, ze)
	tree.node(nb).links[d] = threadLink(y)
	yn.color, yn.height = zn.color, zn.height
	tree.setChild(p, zs, y)
	zn.parent = nilHandle
	return res
}
