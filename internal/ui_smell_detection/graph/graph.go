package graph

import (
	"slices"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
)

// Graph is a validated Abstract Component Graph for one source unit.
// It is read-only once built; callers must not modify returned nodes.
type Graph struct {
	unit  string
	nodes []*domain.ComponentNode
	index map[string]int
	// parent is keyed by child id
	parent map[string]string
	roots  []string

	flows    []domain.PropFlow
	flowsIn  map[string][]int
	flowsOut map[string][]int

	hash string
}

// New validates nodes and flows and builds the graph. Inputs are copied.
func New(unit string, nodes []domain.ComponentNode, flows []domain.PropFlow) (*Graph, error) {
	g := &Graph{
		unit:     unit,
		nodes:    make([]*domain.ComponentNode, 0, len(nodes)),
		index:    make(map[string]int, len(nodes)),
		parent:   map[string]string{},
		flowsIn:  map[string][]int{},
		flowsOut: map[string][]int{},
	}

	for i := range nodes {
		n := cloneNode(nodes[i])
		if n.ID == "" {
			return nil, domain.Malformed(unit, domain.ReasonSchema, n.Name, "node id is empty")
		}
		if _, dup := g.index[n.ID]; dup {
			return nil, domain.Malformed(unit, domain.ReasonDuplicateID, n.ID, "node declared twice")
		}
		if err := checkCounts(unit, n); err != nil {
			return nil, err
		}
		g.index[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}

	for _, n := range g.nodes {
		for _, c := range n.Children {
			if _, ok := g.index[c]; !ok {
				return nil, domain.Malformed(unit, domain.ReasonDanglingChild, n.ID, "unknown child "+c)
			}
			if c == n.ID {
				return nil, domain.Malformed(unit, domain.ReasonCycle, n.ID, "node is its own child")
			}
			if p, taken := g.parent[c]; taken {
				return nil, domain.Malformed(unit, domain.ReasonMultipleParents, c, "children of both "+p+" and "+n.ID)
			}
			g.parent[c] = n.ID
		}
	}

	for _, n := range g.nodes {
		if _, ok := g.parent[n.ID]; !ok {
			g.roots = append(g.roots, n.ID)
		}
	}
	if err := g.checkAcyclic(); err != nil {
		return nil, err
	}

	for i, f := range flows {
		if f.ID == "" {
			f.ID = domain.PropFlowID(f.From, f.To, f.Param)
		}
		from, ok := g.Node(f.From)
		if !ok {
			return nil, domain.Malformed(unit, domain.ReasonDanglingFlow, f.ID, "unknown source node "+f.From)
		}
		to, ok := g.Node(f.To)
		if !ok {
			return nil, domain.Malformed(unit, domain.ReasonDanglingFlow, f.ID, "unknown target node "+f.To)
		}
		if !to.HasParam(f.Param) {
			return nil, domain.Malformed(unit, domain.ReasonUndeclaredParam, f.ID, f.To+" does not declare "+f.Param)
		}
		if f.Source != "" && !from.HasParam(f.Source) {
			return nil, domain.Malformed(unit, domain.ReasonUndeclaredParam, f.ID, f.From+" does not declare "+f.Source)
		}
		// an unnamed source forwards the sender's own parameter of that name
		if f.Source == "" && from.HasParam(f.Param) {
			f.Source = f.Param
		}
		g.flows = append(g.flows, f)
		g.flowsOut[f.From] = append(g.flowsOut[f.From], i)
		g.flowsIn[f.To] = append(g.flowsIn[f.To], i)
	}

	h, err := hashGraph(g.nodes, g.flows)
	if err != nil {
		return nil, err
	}
	g.hash = h
	return g, nil
}

// checkAcyclic relies on unique parents: any node unreachable from a root
// sits on a parent cycle.
func (g *Graph) checkAcyclic() error {
	seen := make(map[string]bool, len(g.nodes))
	stack := slices.Clone(g.roots)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		stack = append(stack, g.nodes[g.index[id]].Children...)
	}
	for _, n := range g.nodes {
		if !seen[n.ID] {
			return domain.Malformed(g.unit, domain.ReasonCycle, n.ID, "node is not reachable from any root")
		}
	}
	return nil
}

func checkCounts(unit string, n *domain.ComponentNode) error {
	neg := func(what string) error {
		return domain.Malformed(unit, domain.ReasonNegativeCount, n.ID, what+" is negative")
	}
	if n.BranchConstructs < 0 {
		return neg("branch_constructs")
	}
	if n.DerivedComputations < 0 {
		return neg("derived_computations")
	}
	if n.LiteralSlots < 0 {
		return neg("literal_slots")
	}
	if n.BodyStatementCount.Known() && n.BodyStatementCount.Value < 0 {
		return neg("body_statement_count")
	}
	for _, l := range n.Lists {
		if l.Size.Known() && l.Size.Value < 0 {
			return neg("list size of " + l.ID)
		}
	}
	for _, c := range n.Calls {
		if c.Iterations.Known() && c.Iterations.Value < 0 {
			return neg("iterations of " + c.Name)
		}
	}
	return nil
}

func cloneNode(n domain.ComponentNode) *domain.ComponentNode {
	c := n
	c.Children = slices.Clone(n.Children)
	c.Params = slices.Clone(n.Params)
	c.State = slices.Clone(n.State)
	c.Effects = make([]domain.EffectBinding, len(n.Effects))
	for i, e := range n.Effects {
		e.Trigger.Keys = slices.Clone(e.Trigger.Keys)
		e.Writes = slices.Clone(e.Writes)
		c.Effects[i] = e
	}
	c.Calls = slices.Clone(n.Calls)
	c.Writes = slices.Clone(n.Writes)
	c.Lists = slices.Clone(n.Lists)
	c.ExtraConcerns = slices.Clone(n.ExtraConcerns)
	return &c
}

func (g *Graph) Unit() string { return g.unit }

func (g *Graph) Len() int { return len(g.nodes) }

// Hash is the hex highwayhash of the graph content, independent of the unit name.
func (g *Graph) Hash() string { return g.hash }
