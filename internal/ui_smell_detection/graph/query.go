package graph

import (
	"slices"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
)

// Lookups on unknown ids return the zero value; every list is in declaration order.

func (g *Graph) Nodes() []*domain.ComponentNode {
	return slices.Clone(g.nodes)
}

func (g *Graph) Node(id string) (*domain.ComponentNode, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

func (g *Graph) Roots() []*domain.ComponentNode {
	return g.byIDs(g.roots)
}

func (g *Graph) Children(id string) []*domain.ComponentNode {
	n, ok := g.Node(id)
	if !ok {
		return nil
	}
	return g.byIDs(n.Children)
}

func (g *Graph) Parent(id string) (*domain.ComponentNode, bool) {
	p, ok := g.parent[id]
	if !ok {
		return nil, false
	}
	return g.Node(p)
}

// Ancestors returns the parent chain, nearest first.
func (g *Graph) Ancestors(id string) []*domain.ComponentNode {
	var out []*domain.ComponentNode
	for {
		p, ok := g.Parent(id)
		if !ok {
			return out
		}
		out = append(out, p)
		id = p.ID
	}
}

// NearestComponent returns the closest ancestor-or-self with the component role.
func (g *Graph) NearestComponent(id string) (*domain.ComponentNode, bool) {
	n, ok := g.Node(id)
	if !ok {
		return nil, false
	}
	if n.Role == domain.RoleComponent {
		return n, true
	}
	for _, a := range g.Ancestors(id) {
		if a.Role == domain.RoleComponent {
			return a, true
		}
	}
	return nil, false
}

func (g *Graph) Depth(id string) int {
	return len(g.Ancestors(id))
}

func (g *Graph) StateBindings(id string) []domain.StateBinding {
	if n, ok := g.Node(id); ok {
		return slices.Clone(n.State)
	}
	return nil
}

func (g *Graph) Effects(id string) []domain.EffectBinding {
	if n, ok := g.Node(id); ok {
		return slices.Clone(n.Effects)
	}
	return nil
}

func (g *Graph) ExternalCalls(id string) []domain.ExternalCall {
	if n, ok := g.Node(id); ok {
		return slices.Clone(n.Calls)
	}
	return nil
}

func (g *Graph) ListRenderSites(id string) []domain.ListRenderSite {
	if n, ok := g.Node(id); ok {
		return slices.Clone(n.Lists)
	}
	return nil
}

func (g *Graph) Writes(id string) []domain.StateWrite {
	if n, ok := g.Node(id); ok {
		return slices.Clone(n.Writes)
	}
	return nil
}

func (g *Graph) PropFlows() []domain.PropFlow {
	return slices.Clone(g.flows)
}

func (g *Graph) PropFlowsInto(id string) []domain.PropFlow {
	return g.flowsAt(g.flowsIn[id])
}

func (g *Graph) PropFlowsOutOf(id string) []domain.PropFlow {
	return g.flowsAt(g.flowsOut[id])
}

// Walk visits every node in pre-order starting from the roots. Returning
// false from fn skips the node's subtree.
func (g *Graph) Walk(fn func(n *domain.ComponentNode, depth int) bool) {
	var visit func(id string, depth int)
	visit = func(id string, depth int) {
		n := g.nodes[g.index[id]]
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, r := range g.roots {
		visit(r, 0)
	}
}

// Subtree returns id and its descendants in pre-order with depths relative to id.
func (g *Graph) Subtree(id string) []Visit {
	var out []Visit
	var visit func(id string, depth int)
	visit = func(id string, depth int) {
		n := g.nodes[g.index[id]]
		out = append(out, Visit{Node: n, Depth: depth})
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	if _, ok := g.index[id]; ok {
		visit(id, 0)
	}
	return out
}

type Visit struct {
	Node  *domain.ComponentNode
	Depth int
}

func (g *Graph) byIDs(ids []string) []*domain.ComponentNode {
	out := make([]*domain.ComponentNode, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.nodes[g.index[id]])
	}
	return out
}

func (g *Graph) flowsAt(idx []int) []domain.PropFlow {
	out := make([]domain.PropFlow, 0, len(idx))
	for _, i := range idx {
		out = append(out, g.flows[i])
	}
	return out
}
