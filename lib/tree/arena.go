package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// handle is the index of a node inside the arena.
// Index 0 is reserved as the nil handle, so a zero link is absent.
type handle uint32

const nilHandle handle = 0

type side uint8

const (
	left side = iota
	right
)

func (s side) opp() side {
	return s ^ 1
}

func (s side) String() string {
	if s == left {
		return "left"
	}
	return "right"
}

type linkKind uint8

// A thread is non-owning, it references the in-order predecessor
// or successor. A real link owns the structural child.
const (
	linkAbsent linkKind = iota
	linkThread
	linkReal
)

// link is either a real child, a thread or absent.
// An absent link always points to nilHandle.
type link struct {
	to   handle
	kind linkKind
}

var absent = link{}

func realLink(h handle) link {
	return link{to: h, kind: linkReal}
}

func threadLink(h handle) link {
	if h == nilHandle {
		return absent
	}
	return link{to: h, kind: linkThread}
}

func (l link) isReal() bool {
	return l.kind == linkReal
}

// A single node record serves all variants. The tree variant
// decides whether height or color is maintained.
type tnode[K infra.OrderedKey] struct {
	key    K
	links  [2]link
	parent handle
	height int32 // AVL, real links only, a node without real children is 1
	gen    uint32
	color  RBColor
}

// nodeArena owns every node of a tree. Removed nodes are recycled.
// Pointers returned by get are only valid until the next alloc.
type nodeArena[K infra.OrderedKey] struct {
	nodes    []tnode[K]
	recycled []handle
}

func newNodeArena[K infra.OrderedKey](capacity int) *nodeArena[K] {
	if capacity < 0 {
		capacity = 0
	}
	arena := &nodeArena[K]{
		nodes:    make([]tnode[K], 1, capacity+1), // non-zero handle
		recycled: make([]handle, 0, 8),
	}
	return arena
}

func (arena *nodeArena[K]) alloc(key K) handle {
	var h handle
	if rl := len(arena.recycled); rl > 0 {
		h = arena.recycled[rl-1]
		arena.recycled = arena.recycled[:rl-1]
	} else {
		arena.nodes = append(arena.nodes, tnode[K]{})
		h = handle(len(arena.nodes) - 1)
	}
	n := &arena.nodes[h]
	gen := n.gen
	if gen == 0 {
		gen = 1
	}
	*n = tnode[K]{
		key:    key,
		height: 1,
		gen:    gen,
		color:  Red,
	}
	return h
}

func (arena *nodeArena[K]) get(h handle) *tnode[K] {
	if h == nilHandle {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] dereference nil handle")
	}
	return &arena.nodes[h]
}

// free releases the node and bumps its generation, so that every
// Position issued for it reads as absent.
func (arena *nodeArena[K]) free(h handle) {
	n := arena.get(h)
	gen := n.gen + 1
	if gen == 0 {
		gen = 1
	}
	*n = tnode[K]{gen: gen}
	arena.recycled = append(arena.recycled, h)
}

func (arena *nodeArena[K]) live(p Position) bool {
	return p.h != nilHandle && int(p.h) < len(arena.nodes) && arena.nodes[p.h].gen == p.gen
}

// inUse counts allocated and not freed nodes.
func (arena *nodeArena[K]) inUse() int {
	return len(arena.nodes) - 1 - len(arena.recycled)
}
