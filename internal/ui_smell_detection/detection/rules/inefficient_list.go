package rules

import (
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

type inefficientList struct{}

func (inefficientList) Name() domain.RuleID { return domain.RuleInefficientList }

func (inefficientList) Detect(g *graph.Graph, cfg detection.Config) ([]domain.Finding, error) {
	var out []domain.Finding
	for _, n := range g.Nodes() {
		for _, l := range n.Lists {
			if l.Virtualized {
				continue
			}
			k, err := l.Size.Resolve()
			if errors.Is(err, domain.ErrUnresolvableBound) {
				continue
			}
			if k < cfg.LargeListThreshold {
				continue
			}

			what := "a list"
			if l.Collection != "" {
				what = fmt.Sprintf("list %q", l.Collection)
			}
			out = append(out, domain.Finding{
				Severity:   domain.SeverityWarning,
				Confidence: 0.85,
				Rationale: fmt.Sprintf("%s renders %s of %s items eagerly (threshold %d); use a lazy or virtualized list",
					displayName(n), what, l.Size, cfg.LargeListThreshold),
				Evidence: []domain.EvidenceRef{
					ref(domain.EvidenceList, n.ID, domain.ListRef(n.ID, l.ID)),
					nodeRef(n),
				},
				Meta: domain.Attrs{
					"size":                 k,
					"large_list_threshold": cfg.LargeListThreshold,
				},
			}.At(l.Location))
		}
	}
	return out, nil
}

func init() { detection.Register(inefficientList{}) }
