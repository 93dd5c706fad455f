package rules

import (
	"fmt"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

type propDrilling struct{}

func (propDrilling) Name() domain.RuleID { return domain.RulePropDrilling }

// startsChain: the value either originates in f.From or was read there.
func startsChain(g *graph.Graph, f domain.PropFlow) bool {
	if f.Source == "" {
		return true
	}
	for _, in := range g.PropFlowsInto(f.From) {
		if in.Param == f.Source && !in.ConsumedByChild {
			return false
		}
	}
	return true
}

func (propDrilling) Detect(g *graph.Graph, cfg detection.Config) ([]domain.Finding, error) {
	var out []domain.Finding
	for _, f := range g.PropFlows() {
		if !startsChain(g, f) {
			continue
		}
		follow(g, []domain.PropFlow{f}, func(path []domain.PropFlow) {
			// every hop but the last lands on a node that only forwards
			if hops := len(path) - 1; hops >= cfg.MinDrillDepth {
				out = append(out, drillingFinding(g, path, cfg))
			}
		})
	}
	return out, nil
}

// follow extends path through forwarding nodes and calls done once per
// consuming terminal. Paths that revisit a node are dropped.
func follow(g *graph.Graph, path []domain.PropFlow, done func([]domain.PropFlow)) {
	last := path[len(path)-1]
	if last.ConsumedByChild {
		done(path)
		return
	}
	for _, next := range g.PropFlowsOutOf(last.To) {
		if next.Source != last.Param || visits(path, next.To) {
			continue
		}
		ext := make([]domain.PropFlow, len(path), len(path)+1)
		copy(ext, path)
		follow(g, append(ext, next), done)
	}
}

func visits(path []domain.PropFlow, id string) bool {
	if len(path) > 0 && path[0].From == id {
		return true
	}
	for _, f := range path {
		if f.To == id {
			return true
		}
	}
	return false
}

func drillingFinding(g *graph.Graph, path []domain.PropFlow, cfg detection.Config) domain.Finding {
	origin, _ := g.Node(path[0].From)
	terminal := path[len(path)-1]
	consumer, _ := g.Node(terminal.To)

	evidence := []domain.EvidenceRef{ref(domain.EvidencePropFlow, terminal.To, terminal.ID)}
	var intermediates []*domain.ComponentNode
	for _, f := range path[:len(path)-1] {
		evidence = append(evidence, ref(domain.EvidencePropFlow, f.To, f.ID))
		if n, ok := g.Node(f.To); ok {
			intermediates = append(intermediates, n)
		}
	}
	evidence = append(evidence, nodeRef(origin))
	for _, n := range intermediates {
		evidence = append(evidence, nodeRef(n))
	}

	value := path[0].Param
	return domain.Finding{
		Severity:   domain.SeverityWarning,
		Confidence: 0.8,
		Rationale: fmt.Sprintf("%q is drilled from %s through %d intermediate components without use (%s) before %s reads it",
			value, displayName(origin), len(intermediates), names(intermediates), displayName(consumer)),
		Evidence: evidence,
		Meta: domain.Attrs{
			"value":           value,
			"depth":           len(intermediates),
			"min_drill_depth": cfg.MinDrillDepth,
			"consumer":        consumer.ID,
		},
	}.At(origin.Location)
}

func init() { detection.Register(propDrilling{}) }
