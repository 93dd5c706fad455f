package rules

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

type largeComponent struct{}

func (largeComponent) Name() domain.RuleID { return domain.RuleLargeComponent }

// concerns lists the distinct responsibilities a component takes on.
func concerns(n *domain.ComponentNode) []string {
	var out []string
	if len(n.Calls) > 0 {
		out = append(out, "external calls")
	}
	if n.BranchConstructs > 0 {
		out = append(out, "navigation or mode branching")
	}
	if n.DerivedComputations > 0 {
		out = append(out, "derived aggregates")
	}
	if len(n.Children) > 0 || len(n.Lists) > 0 {
		out = append(out, "rendering")
	}
	seen := map[string]bool{}
	for _, c := range out {
		seen[c] = true
	}
	for _, extra := range n.ExtraConcerns {
		c := strings.TrimSpace(extra)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func (largeComponent) Detect(g *graph.Graph, cfg detection.Config) ([]domain.Finding, error) {
	var out []domain.Finding
	for _, n := range g.Nodes() {
		if n.Role != domain.RoleComponent {
			continue
		}

		cs := concerns(n)
		tooMany := len(cs) > cfg.MaxResponsibilities
		size, err := n.BodyStatementCount.Resolve()
		tooBig := err == nil && size > cfg.MaxBodySize
		if !tooMany && !tooBig {
			continue
		}

		var reasons []string
		if tooMany {
			reasons = append(reasons, fmt.Sprintf("combines %d concerns (%s), more than %d",
				len(cs), strings.Join(cs, ", "), cfg.MaxResponsibilities))
		}
		if tooBig {
			reasons = append(reasons, fmt.Sprintf("has %d body statements, more than %d", size, cfg.MaxBodySize))
		}

		meta := domain.Attrs{
			"concerns":             cs,
			"concern_count":        len(cs),
			"max_responsibilities": cfg.MaxResponsibilities,
			"max_body_size":        cfg.MaxBodySize,
		}
		if err == nil {
			meta["body_statement_count"] = size
		}

		conf := 0.75
		if tooMany && tooBig {
			conf = 0.9
		}
		out = append(out, domain.Finding{
			Severity:   domain.SeverityWarning,
			Confidence: conf,
			Rationale:  fmt.Sprintf("component %s %s", displayName(n), strings.Join(reasons, " and ")),
			Evidence:   []domain.EvidenceRef{nodeRef(n)},
			Meta:       meta,
		}.At(n.Location))
	}
	return out, nil
}

func init() { detection.Register(largeComponent{}) }
