package rules

import (
	"fmt"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

type businessLogicInView struct{}

func (businessLogicInView) Name() domain.RuleID { return domain.RuleBusinessLogicInView }

func (businessLogicInView) Detect(g *graph.Graph, cfg detection.Config) ([]domain.Finding, error) {
	var out []domain.Finding
	for _, n := range g.Nodes() {
		for i, c := range n.Calls {
			if c.Class != domain.CallDomainRule || !c.DeclaredInline {
				continue
			}

			where := "in its body"
			if c.Site == domain.SiteEffect && c.Effect != "" {
				where = "in effect " + c.Effect
			} else if c.Site == domain.SiteHandler {
				where = "in an event handler"
			}
			out = append(out, domain.Finding{
				Severity:   domain.SeverityWarning,
				Confidence: 0.7,
				Rationale:  fmt.Sprintf("%s evaluates domain rule %s %s instead of delegating to a model or service", displayName(n), c.Name, where),
				Evidence: []domain.EvidenceRef{
					ref(domain.EvidenceCall, n.ID, domain.CallRef(n.ID, i)),
					nodeRef(n),
				},
				Meta: domain.Attrs{"call": c.Name, "site": string(c.Site)},
			}.At(c.Location))
		}
	}
	return out, nil
}

func init() { detection.Register(businessLogicInView{}) }
