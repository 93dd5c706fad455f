package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

type duplicateView struct{}

func (duplicateView) Name() domain.RuleID { return domain.RuleDuplicateView }

type shapeGroup struct {
	depth   int
	first   int
	size    int
	members []*domain.ComponentNode
}

// shapeSignature is the sorted multiset of (kind, relative depth, literal
// slots) over the subtree. Nested components count as opaque leaves.
func shapeSignature(g *graph.Graph, root *domain.ComponentNode) (string, int) {
	var entries []string
	var visit func(n *domain.ComponentNode, depth int)
	visit = func(n *domain.ComponentNode, depth int) {
		entries = append(entries, fmt.Sprintf("%s@%d#%d", n.Kind, depth, n.LiteralSlots))
		if depth > 0 && n.Role == domain.RoleComponent {
			return
		}
		for _, c := range g.Children(n.ID) {
			visit(c, depth+1)
		}
	}
	visit(root, 0)
	sort.Strings(entries)
	return strings.Join(entries, ";"), len(entries)
}

// scopeMembers lists the nodes rendered by scope itself, pre-order, with
// depths relative to scope. Nested components are separate scopes.
func scopeMembers(g *graph.Graph, scope *domain.ComponentNode) []graph.Visit {
	var out []graph.Visit
	var visit func(n *domain.ComponentNode, depth int)
	visit = func(n *domain.ComponentNode, depth int) {
		for _, c := range g.Children(n.ID) {
			if c.Role == domain.RoleComponent {
				continue
			}
			out = append(out, graph.Visit{Node: c, Depth: depth + 1})
			visit(c, depth+1)
		}
	}
	visit(scope, 0)
	return out
}

func (duplicateView) Detect(g *graph.Graph, cfg detection.Config) ([]domain.Finding, error) {
	var out []domain.Finding
	for _, scope := range g.Nodes() {
		if scope.Role != domain.RoleComponent {
			if _, hasParent := g.Parent(scope.ID); hasParent {
				continue
			}
		}
		out = append(out, duplicatesInScope(g, scope, cfg)...)
	}
	return out, nil
}

func duplicatesInScope(g *graph.Graph, scope *domain.ComponentNode, cfg detection.Config) []domain.Finding {
	groups := map[string]*shapeGroup{}
	var order []*shapeGroup
	for i, v := range scopeMembers(g, scope) {
		if len(v.Node.Children) == 0 {
			continue
		}
		sig, size := shapeSignature(g, v.Node)
		key := fmt.Sprintf("%d|%s", v.Depth, sig)
		grp, ok := groups[key]
		if !ok {
			grp = &shapeGroup{depth: v.Depth, first: i, size: size}
			groups[key] = grp
			order = append(order, grp)
		}
		grp.members = append(grp.members, v.Node)
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].depth != order[j].depth {
			return order[i].depth < order[j].depth
		}
		return order[i].first < order[j].first
	})

	covered := map[string]bool{}
	var out []domain.Finding
	for _, grp := range order {
		var members []*domain.ComponentNode
		for _, m := range grp.members {
			if !covered[m.ID] {
				members = append(members, m)
			}
		}
		if len(members) < cfg.MinDuplicates {
			continue
		}
		for _, m := range members {
			for _, v := range g.Subtree(m.ID) {
				covered[v.Node.ID] = true
			}
		}
		out = append(out, duplicateFinding(scope, members, grp.size, cfg))
	}
	return out
}

func duplicateFinding(scope *domain.ComponentNode, members []*domain.ComponentNode, size int, cfg detection.Config) domain.Finding {
	evidence := make([]domain.EvidenceRef, 0, len(members)+1)
	for _, m := range members {
		evidence = append(evidence, nodeRef(m))
	}
	evidence = append(evidence, nodeRef(scope))

	first := members[0]
	f := domain.Finding{
		Severity:   domain.SeverityWarning,
		Confidence: 0.75,
		Rationale: fmt.Sprintf("%d structurally identical %s subtrees (%d nodes each) repeated in %s",
			len(members), first.Kind, size, displayName(scope)),
		Evidence: evidence,
		Meta: domain.Attrs{
			"copies":         len(members),
			"subtree_size":   size,
			"min_duplicates": cfg.MinDuplicates,
			"scope":          scope.ID,
		},
	}.At(first.Location)
	for _, m := range members[1:] {
		if m.Location.File == f.File && m.Location.EndLine > f.EndLine {
			f.EndLine = m.Location.EndLine
		}
	}
	return f
}

func init() { detection.Register(duplicateView{}) }
