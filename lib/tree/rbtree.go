package tree

import (
	"go.uber.org/zap"
)

// References:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All absent children (threads) are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   absent children goes through the same number of black nodes. (black-violation)
// p5. The root is black.

func (tree *threadedTree[K]) colorOf(h handle) RBColor {
	if h == nilHandle {
		return Black
	}
	return tree.node(h).color
}

func (tree *threadedTree[K]) paint(h handle, c RBColor) {
	tree.node(h).color = c
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or absent).

im1: The parent P is black. Nothing to do.

im2: Both the parent P and the uncle U are red, grandpa G is black.
Repaint and recursive to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im3: The parent P is red but the uncle U is black.
X is the inside child. Rotate P to straighten the path, then enter im4.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im4: X is the outside child. Repaint and rotate G to the opposite direction.

	    [G]                 [P]
	    / \    rotate(G)    / \
	  <P> [U]  ========>  <X> <G>
	  /                         \
	<X>                         [U]

The root is repainted to black unconditionally at the end.
*/
func (tree *threadedTree[K]) insertRebalance(x handle) {
	for x != tree.root {
		p := tree.node(x).parent
		if /* im1 */ tree.colorOf(p) == Black {
			break
		}
		g := tree.node(p).parent
		if g == nilHandle {
			// impossible run to here, a red parent is never the root
			tree.violation("[xtree] red node without grandpa")
		}
		pd, _ := tree.sideOf(p)
		if u := tree.child(g, pd.opp()); /* im2 */ tree.colorOf(u) == Red {
			tree.traceRB("im2", x)
			tree.paint(p, Black)
			tree.paint(u, Black)
			tree.paint(g, Red)
			x = g
			continue
		}
		if xd, _ := tree.sideOf(x); /* im3 */ xd != pd {
			tree.traceRB("im3", x)
			tree.rotate(p, pd)
			x, p = p, x
		}
		/* im4 */
		tree.traceRB("im4", x)
		tree.paint(p, Black)
		tree.paint(g, Red)
		tree.rotate(g, pd.opp())
		break
	}
	tree.paint(tree.root, Black)
}

// doubleBlack is the transient sentinel of a deletion defect.
// It stands at the vacated position, is black by definition and
// knows its parent and side even if no node occupies the position.
type doubleBlack struct {
	node   handle
	parent handle
	side   side
}

func (tree *threadedTree[K]) removeRebalance(res detached) {
	if res.color == Red {
		return
	}
	if res.child != nilHandle && tree.colorOf(res.child) == Red {
		tree.paint(res.child, Black)
		return
	}
	tree.fixDoubleBlack(doubleBlack{
		node:   res.child,
		parent: res.parent,
		side:   res.side,
	})
}

/*
<X> is a RED node.
[X] is a BLACK node (or absent).
{X} is either a RED node or a BLACK node.
Sc is the sibling's child near to X, Sd is the far one.

rm1: X is at the root position. Done.

rm2: The sibling S is red. Rotate P toward X and repaint.
Continue with the new black sibling.

	  [P]                   <S>               [S]
	  / \    rotate(P)      / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm3: P, S, Sc and Sd are all black. Repaint S to red and move
the defect up to P.

rm4: P is red, S, Sc and Sd are black. Swap colors of P and S. Done.

	  <P>             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm5: S is black, Sc is red and Sd is black. Rotate S away from X,
repaint, then enter rm6.

	  {P}                   {P}
	  / \    rotate(S)      / \
	[X] [S]  ==========>  [X] [Sc]
	    / \                     \
	  <Sc> [Sd]                 <S>
	                              \
	                              [Sd]

rm6: S is black and Sd is red. Rotate P toward X, S takes the
color of P, P and Sd are repainted black. Done.

	  {P}                   {S}
	  / \    rotate(P)      / \
	[X] [S]  ==========>  [P] [Sd]
	    / \               / \
	 {Sc} <Sd>          [X] {Sc}
*/
func (tree *threadedTree[K]) fixDoubleBlack(x doubleBlack) {
	for /* rm1 */ x.parent != nilHandle && tree.colorOf(x.node) == Black {
		p, d := x.parent, x.side
		e := d.opp()
		s := tree.child(p, e)
		if s == nilHandle {
			// impossible run to here, the sibling side holds a black height >= 1
			tree.violation("[xtree] double black without sibling")
		}
		if /* rm2 */ tree.colorOf(s) == Red {
			tree.traceRB("rm2", p)
			tree.paint(s, Black)
			tree.paint(p, Red)
			tree.rotate(p, d)
			if s = tree.child(p, e); s == nilHandle {
				// impossible run to here
				tree.violation("[xtree] double black without sibling after rotation")
			}
		}

		sc, sd := tree.child(s, d), tree.child(s, e)
		if tree.colorOf(sc) == Black && tree.colorOf(sd) == Black {
			tree.paint(s, Red)
			if /* rm4 */ tree.colorOf(p) == Red {
				tree.traceRB("rm4", p)
				tree.paint(p, Black)
				return
			}
			/* rm3 */
			tree.traceRB("rm3", p)
			ps, _ := tree.sideOf(p)
			x = doubleBlack{
				node:   p,
				parent: tree.node(p).parent,
				side:   ps,
			}
			continue
		}

		if /* rm5 */ tree.colorOf(sd) == Black {
			tree.traceRB("rm5", p)
			tree.paint(sc, Black)
			tree.paint(s, Red)
			tree.rotate(s, e)
			s = tree.child(p, e)
			sd = tree.child(s, e)
		}

		/* rm6 */
		tree.traceRB("rm6", p)
		tree.paint(s, tree.colorOf(p))
		tree.paint(p, Black)
		tree.paint(sd, Black)
		tree.rotate(p, d)
		return
	}
	if x.node != nilHandle {
		tree.paint(x.node, Black)
	}
}

func (tree *threadedTree[K]) traceRB(c string, h handle) {
	if !tree.debugEnabled() {
		return
	}
	n := tree.node(h)
	tree.logger.Debug("[xtree] rbtree rebalance",
		zap.String("case", c),
		zap.Any("key", n.key),
		zap.Stringer("color", n.color),
	)
}
