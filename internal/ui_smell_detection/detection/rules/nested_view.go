package rules

import (
	"fmt"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

type nestedView struct{}

func (nestedView) Name() domain.RuleID { return domain.RuleNestedView }

// isPureContainer: exactly one child and no behaviour or content of its own.
func isPureContainer(g *graph.Graph, n *domain.ComponentNode) bool {
	return len(n.Children) == 1 &&
		len(n.State) == 0 &&
		len(n.Effects) == 0 &&
		len(n.Calls) == 0 &&
		len(n.Writes) == 0 &&
		len(n.Lists) == 0 &&
		n.LiteralSlots == 0 &&
		!consumesProps(g, n.ID)
}

func (nestedView) Detect(g *graph.Graph, cfg detection.Config) ([]domain.Finding, error) {
	var out []domain.Finding
	for _, n := range g.Nodes() {
		if !isPureContainer(g, n) {
			continue
		}
		// only start at the outermost container of a run
		if p, ok := g.Parent(n.ID); ok && isPureContainer(g, p) {
			continue
		}

		chain := []*domain.ComponentNode{n}
		cur := n
		for {
			child := g.Children(cur.ID)[0]
			if !isPureContainer(g, child) {
				break
			}
			chain = append(chain, child)
			cur = child
		}
		if len(chain) <= cfg.MaxNestingDepth {
			continue
		}

		evidence := make([]domain.EvidenceRef, 0, len(chain))
		for _, c := range chain {
			evidence = append(evidence, nodeRef(c))
		}
		innermost := chain[len(chain)-1]
		f := domain.Finding{
			Severity:   domain.SeverityWarning,
			Confidence: 0.8,
			Rationale: fmt.Sprintf("%d single-child wrappers nested under %s, more than %d",
				len(chain), displayName(n), cfg.MaxNestingDepth),
			Evidence: evidence,
			Meta: domain.Attrs{
				"depth":             len(chain),
				"max_nesting_depth": cfg.MaxNestingDepth,
				"innermost":         innermost.ID,
			},
		}.At(n.Location)
		if innermost.Location.File == n.Location.File && innermost.Location.EndLine > f.EndLine {
			f.EndLine = innermost.Location.EndLine
		}
		out = append(out, f)
	}
	return out, nil
}

func init() { detection.Register(nestedView{}) }
