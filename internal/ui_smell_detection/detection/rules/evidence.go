package rules

import (
	"strings"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

func nodeRef(n *domain.ComponentNode) domain.EvidenceRef {
	return domain.EvidenceRef{Kind: domain.EvidenceNode, ID: n.ID, Node: n.ID}
}

func ref(kind domain.EvidenceKind, owner, id string) domain.EvidenceRef {
	return domain.EvidenceRef{Kind: kind, ID: id, Node: owner}
}

func displayName(n *domain.ComponentNode) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

func names(ns []*domain.ComponentNode) string {
	parts := make([]string, 0, len(ns))
	for _, n := range ns {
		parts = append(parts, displayName(n))
	}
	return strings.Join(parts, ", ")
}

// consumesProps reports whether any value flowing into id is read by id.
func consumesProps(g *graph.Graph, id string) bool {
	for _, f := range g.PropFlowsInto(id) {
		if f.ConsumedByChild {
			return true
		}
	}
	return false
}
