package rules

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

type mutableView struct{}

func (mutableView) Name() domain.RuleID { return domain.RuleMutableView }

type stateWrites struct {
	state   string
	indexes []int
}

// groupWrites buckets handler and render writes by target state, in first-write order.
func groupWrites(n *domain.ComponentNode) []stateWrites {
	var out []stateWrites
	pos := map[string]int{}
	for i, w := range n.Writes {
		if w.Site != domain.SiteHandler && w.Site != domain.SiteRender {
			continue
		}
		j, ok := pos[w.State]
		if !ok {
			j = len(out)
			pos[w.State] = j
			out = append(out, stateWrites{state: w.State})
		}
		out[j].indexes = append(out[j].indexes, i)
	}
	return out
}

func (mutableView) Detect(g *graph.Graph, cfg detection.Config) ([]domain.Finding, error) {
	var out []domain.Finding
	for _, n := range g.Nodes() {
		for _, grp := range groupWrites(n) {
			sb, ok := n.StateByName(grp.state)
			if !ok {
				continue
			}

			if sb.ExternallyOwned {
				out = append(out, externalWriteFinding(n, sb, grp.indexes))
				continue
			}

			var renderWrites []int
			for _, i := range grp.indexes {
				if n.Writes[i].Site == domain.SiteRender {
					renderWrites = append(renderWrites, i)
				}
			}
			if len(renderWrites) > 0 {
				out = append(out, renderWriteFinding(n, sb, renderWrites))
			}
		}
	}
	return out, nil
}

func writeEvidence(n *domain.ComponentNode, sb domain.StateBinding, idx []int) ([]domain.EvidenceRef, []string) {
	evidence := []domain.EvidenceRef{ref(domain.EvidenceState, n.ID, domain.StateRef(n.ID, sb.Name))}
	var sites []string
	for _, i := range idx {
		w := n.Writes[i]
		evidence = append(evidence, ref(domain.EvidenceWrite, n.ID, domain.WriteRef(n.ID, i)))
		sites = append(sites, fmt.Sprintf("%s@%d", w.Site, w.Location.StartLine))
	}
	return append(evidence, nodeRef(n)), sites
}

func externalWriteFinding(n *domain.ComponentNode, sb domain.StateBinding, idx []int) domain.Finding {
	evidence, sites := writeEvidence(n, sb, idx)
	return domain.Finding{
		Severity:   domain.SeverityWarning,
		Confidence: 0.85,
		Rationale: fmt.Sprintf("%s mutates externally owned %s %q in place (%d writes: %s)",
			displayName(n), sb.Type, sb.Name, len(idx), strings.Join(sites, ", ")),
		Evidence: evidence,
		Meta: domain.Attrs{
			"state":  sb.Name,
			"writes": len(idx),
		},
	}.At(n.Writes[idx[0]].Location)
}

func renderWriteFinding(n *domain.ComponentNode, sb domain.StateBinding, idx []int) domain.Finding {
	evidence, _ := writeEvidence(n, sb, idx)
	return domain.Finding{
		Severity:   domain.SeverityInfo,
		Confidence: 0.5,
		Rationale:  fmt.Sprintf("%s writes state %q while rendering, which schedules another render", displayName(n), sb.Name),
		Evidence:   evidence,
		Meta: domain.Attrs{
			"state":  sb.Name,
			"writes": len(idx),
			"site":   string(domain.SiteRender),
		},
	}.At(n.Writes[idx[0]].Location)
}

func init() { detection.Register(mutableView{}) }
