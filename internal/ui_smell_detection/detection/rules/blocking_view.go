package rules

import (
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

type blockingView struct{}

func (blockingView) Name() domain.RuleID { return domain.RuleBlockingView }

func (blockingView) Detect(g *graph.Graph, cfg detection.Config) ([]domain.Finding, error) {
	var out []domain.Finding
	for _, n := range g.Nodes() {
		for i, c := range n.Calls {
			if c.Site != domain.SiteRender {
				continue
			}

			var rationale string
			meta := domain.Attrs{"call": c.Name, "class": string(c.Class)}
			switch c.Class {
			case domain.CallIOBound:
				rationale = fmt.Sprintf("%s calls %s (I/O) directly while rendering", displayName(n), c.Name)
			case domain.CallCompute:
				iters, err := c.Iterations.Resolve()
				if errors.Is(err, domain.ErrUnresolvableBound) {
					continue
				}
				if iters < cfg.HeavyWorkThreshold {
					continue
				}
				rationale = fmt.Sprintf("%s runs %s (%s iterations, threshold %d) directly while rendering",
					displayName(n), c.Name, c.Iterations, cfg.HeavyWorkThreshold)
				meta["iterations"] = iters
				meta["heavy_work_threshold"] = cfg.HeavyWorkThreshold
			default:
				continue
			}

			out = append(out, domain.Finding{
				Severity:   domain.SeverityWarning,
				Confidence: 0.8,
				Rationale:  rationale,
				Evidence: []domain.EvidenceRef{
					ref(domain.EvidenceCall, n.ID, domain.CallRef(n.ID, i)),
					nodeRef(n),
				},
				Meta: meta,
			}.At(c.Location))
		}
	}
	return out, nil
}

func init() { detection.Register(blockingView{}) }
