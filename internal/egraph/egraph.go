// Package egraph implements the congruence-closed e-graph of §4.2: a
// union-find over e-classes, a hashcons from canonical enodes to class
// ids, and a rebuild pass that restores the four invariants of §3 after
// a batch of merges.
//
// The analysis data carried per e-class is generic (type parameter D)
// so this package has no dependency on the field-type lattice; fieldtype,
// cost and bridge are the library packages that know D is a FieldType.
package egraph

import "fieldeq/internal/ast"

// ENode is an operator applied to e-class ids (never to enode handles —
// this is the structural invariant that makes congruence closure work).
// Leaves (constants, symbols) carry no children and store their payload
// in Value/Symbol instead.
type ENode struct {
	Op       ast.Op
	Children []int
	Value    float64
	Symbol   string
}

const (
	opConst  ast.Op = "const"
	opSymbol ast.Op = "sym"
)

// Const builds a constant leaf enode.
func Const(v float64) ENode { return ENode{Op: opConst, Value: v} }

// Symbol builds a symbol leaf enode.
func Symbol(name string) ENode { return ENode{Op: opSymbol, Symbol: name} }

// IsConst reports whether n is a constant leaf.
func (n ENode) IsConst() bool { return n.Op == opConst }

// IsSymbol reports whether n is a symbol leaf.
func (n ENode) IsSymbol() bool { return n.Op == opSymbol }

// key is the hashcons key: operator tag plus *canonicalized* children.
// Two enodes with the same key are, by invariant 1 of §3, the same
// e-class.
type key struct {
	op       ast.Op
	children [4]int // arity is <= 2 in this grammar; fixed array avoids slice-equality friction as a map key
	arity    int
	value    float64
	symbol   string
}

func (n ENode) canonicalKey(find func(int) int) key {
	k := key{op: n.Op, value: n.Value, symbol: n.Symbol, arity: len(n.Children)}
	for i, c := range n.Children {
		k.children[i] = find(c)
	}
	return k
}

// parentRef names the enode a class is referenced from, so rebuild can
// walk up from a dirty class to its parents.
type parentRef struct {
	node ENode
	id   int // the class id this parent enode belonged to when recorded
}

// eclass is one equivalence class: its member enodes, the parent enodes
// that reference it, and the analysis data for its contents.
type eclass[D any] struct {
	nodes   []ENode
	parents []parentRef
	data    D
}

// Analysis computes and merges per-e-class data (§4.3). Make is called
// once per newly-added enode; Merge combines two classes' data when they
// are unioned and reports whether the result changed (so rebuild knows
// whether to keep propagating upward).
type Analysis[D any] interface {
	Make(g *EGraph[D], n ENode) D
	Merge(old, new D) (D, bool)
}

// EGraph is the full congruence-closed e-graph of §4.2.
type EGraph[D any] struct {
	analysis Analysis[D]

	parent  []int // union-find parent pointers, indexed by class id
	classes []*eclass[D]
	alive   []bool // classes[i] may have been merged away; alive tracks survivors

	hashcons map[key]int
	worklist []int
	inWork   map[int]bool
}

// New creates an empty e-graph using the given analysis.
func New[D any](analysis Analysis[D]) *EGraph[D] {
	return &EGraph[D]{
		analysis: analysis,
		hashcons: make(map[key]int),
		inWork:   make(map[int]bool),
	}
}

// Find returns the path-compressed union-find root of id.
func (g *EGraph[D]) Find(id int) int {
	root := id
	for g.parent[root] != root {
		root = g.parent[root]
	}
	for id != root {
		next := g.parent[id]
		g.parent[id] = root
		id = next
	}
	return root
}

// Lookup is a read-only hashcons probe: it reports the class an enode
// with these (canonicalized) children already belongs to, if any.
func (g *EGraph[D]) Lookup(n ENode) (int, bool) {
	k := n.canonicalKey(g.Find)
	id, ok := g.hashcons[k]
	if !ok {
		return 0, false
	}
	return g.Find(id), true
}

// Add canonicalizes n's children, looks it up in the hashcons, and
// either returns the existing class or creates a new singleton class,
// running Make on it and registering it as a parent of each child class.
func (g *EGraph[D]) Add(n ENode) int {
	canon := ENode{Op: n.Op, Value: n.Value, Symbol: n.Symbol}
	if len(n.Children) > 0 {
		canon.Children = make([]int, len(n.Children))
		for i, c := range n.Children {
			canon.Children[i] = g.Find(c)
		}
	}

	k := canon.canonicalKey(func(i int) int { return i }) // children already canonical
	if id, ok := g.hashcons[k]; ok {
		return g.Find(id)
	}

	id := len(g.classes)
	g.parent = append(g.parent, id)
	g.alive = append(g.alive, true)
	c := &eclass[D]{nodes: []ENode{canon}}
	c.data = g.analysis.Make(g, canon)
	g.classes = append(g.classes, c)
	g.hashcons[k] = id

	for _, child := range canon.Children {
		root := g.Find(child)
		g.classes[root].parents = append(g.classes[root].parents, parentRef{node: canon, id: id})
	}

	return id
}

// Union merges the e-classes of a and b, joining their analysis data and
// enqueuing the survivor for rebuild. Reports whether anything changed
// (classes were distinct, or analysis data changed).
func (g *EGraph[D]) Union(a, b int) (int, bool) {
	ra, rb := g.Find(a), g.Find(b)
	if ra == rb {
		return ra, false
	}

	// By-rank heuristic: the class with the longer parent list survives,
	// ties broken by lower id (§4.2 "Tie-breaks & ordering").
	survivor, absorbed := ra, rb
	switch {
	case len(g.classes[rb].parents) > len(g.classes[ra].parents):
		survivor, absorbed = rb, ra
	case len(g.classes[rb].parents) == len(g.classes[ra].parents) && rb < ra:
		survivor, absorbed = rb, ra
	}

	g.parent[absorbed] = survivor
	sc, ac := g.classes[survivor], g.classes[absorbed]
	sc.nodes = append(sc.nodes, ac.nodes...)
	sc.parents = append(sc.parents, ac.parents...)
	g.alive[absorbed] = false

	newData, _ := g.analysis.Merge(sc.data, ac.data)
	sc.data = newData

	g.enqueue(survivor)
	return survivor, true
}

func (g *EGraph[D]) enqueue(id int) {
	root := g.Find(id)
	if !g.inWork[root] {
		g.inWork[root] = true
		g.worklist = append(g.worklist, root)
	}
}

// Rebuild drains the worklist, recanonicalizing every parent of each
// dirty class (which may reveal new congruences and trigger further
// unions) and propagating analysis joins upward until fixpoint. The
// post-condition is that all four invariants of §3 hold.
func (g *EGraph[D]) Rebuild() {
	for len(g.worklist) > 0 {
		todo := g.dedupWorklist()
		g.worklist = nil
		for _, id := range todo {
			g.repairCongruence(id)
		}
	}

	// Recanonicalize every live class's member enodes and drop those that
	// became identical once their children were merged.
	for i, c := range g.classes {
		if !g.alive[i] {
			continue
		}
		seen := make(map[key]bool, len(c.nodes))
		var nodes []ENode
		for _, n := range c.nodes {
			k := n.canonicalKey(g.Find)
			if !seen[k] {
				seen[k] = true
				nodes = append(nodes, ENode{Op: n.Op, Children: append([]int(nil), k.children[:k.arity]...), Value: n.Value, Symbol: n.Symbol})
			}
		}
		c.nodes = nodes
	}
}

func (g *EGraph[D]) dedupWorklist() []int {
	seen := make(map[int]bool, len(g.worklist))
	var out []int
	for _, id := range g.worklist {
		root := g.Find(id)
		if !seen[root] {
			seen[root] = true
			out = append(out, root)
		}
		delete(g.inWork, id)
	}
	g.inWork = make(map[int]bool)
	return out
}

// repairCongruence recanonicalizes every parent enode of class id,
// reinserting into the hashcons (which may merge previously-distinct
// classes), and repropagates this class's analysis data to each parent.
func (g *EGraph[D]) repairCongruence(id int) {
	root := g.Find(id)
	parents := g.classes[root].parents

	// Recanonicalize and re-hashcons: duplicate canonical parents now
	// congruent must be unioned.
	newHashes := make(map[key]int)
	var survivors []parentRef
	for _, p := range parents {
		canon := ENode{Op: p.node.Op, Value: p.node.Value, Symbol: p.node.Symbol}
		if len(p.node.Children) > 0 {
			canon.Children = make([]int, len(p.node.Children))
			for i, c := range p.node.Children {
				canon.Children[i] = g.Find(c)
			}
		}
		k := canon.canonicalKey(func(i int) int { return i })
		pid := g.Find(p.id)

		if existing, ok := newHashes[k]; ok {
			if existing != pid {
				g.Union(existing, pid)
			}
		} else {
			newHashes[k] = pid
			survivors = append(survivors, parentRef{node: canon, id: pid})
			g.hashcons[k] = pid
		}
	}
	g.classes[root].parents = survivors

	// Repropagate this class's (possibly-changed) data to each parent's
	// analysis, upward until the parent's own data stops changing.
	for _, p := range survivors {
		pid := g.Find(p.id)
		newData := g.analysis.Make(g, p.node)
		merged, changed := g.analysis.Merge(g.classes[pid].data, newData)
		g.classes[pid].data = merged
		if changed {
			g.enqueue(pid)
		}
	}
}

// Data returns the current analysis data for id's class (after Find).
func (g *EGraph[D]) Data(id int) D {
	return g.classes[g.Find(id)].data
}

// Nodes returns the (deduplicated) enodes belonging to id's class.
func (g *EGraph[D]) Nodes(id int) []ENode {
	return g.classes[g.Find(id)].nodes
}

// NumClasses returns the number of live e-classes.
func (g *EGraph[D]) NumClasses() int {
	n := 0
	for i, alive := range g.alive {
		if alive && g.Find(i) == i {
			n++
		}
	}
	return n
}

// NumNodes returns the total number of enodes stored across all live
// classes (used against the N_NODES resource cap of §4.4).
func (g *EGraph[D]) NumNodes() int {
	n := 0
	for i, alive := range g.alive {
		if alive && g.Find(i) == i {
			n += len(g.classes[i].nodes)
		}
	}
	return n
}

// Classes invokes fn once per live, canonical e-class id.
func (g *EGraph[D]) Classes(fn func(id int)) {
	for i, alive := range g.alive {
		if alive && g.Find(i) == i {
			fn(i)
		}
	}
}

// ContainsConst reports whether id's class has a Constant enode —
// the exact test §4.5/§9 use to pick the "*const" cost key.
func (g *EGraph[D]) ContainsConst(id int) bool {
	for _, n := range g.Nodes(id) {
		if n.IsConst() {
			return true
		}
	}
	return false
}
