package rules

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

type misusedEffects struct{}

func (misusedEffects) Name() domain.RuleID { return domain.RuleMisusedEffects }

func describeTrigger(t domain.TriggerKey) string {
	switch {
	case t.Kind == domain.TriggerAbsent:
		return "no trigger key"
	case t.Kind == domain.TriggerConstant:
		return "a constant trigger key"
	case t.Unstable:
		return fmt.Sprintf("unstable trigger keys [%s]", strings.Join(t.Keys, ", "))
	default:
		return "an empty trigger key"
	}
}

func (misusedEffects) Detect(g *graph.Graph, cfg detection.Config) ([]domain.Finding, error) {
	var out []domain.Finding
	for _, n := range g.Nodes() {
		for _, e := range n.Effects {
			if !e.Trigger.RunsEveryCycle() {
				continue
			}

			var (
				sev       domain.Severity
				conf      float64
				rationale string
			)
			switch e.Class {
			case domain.EffectSetsDerivedState:
				sev, conf = domain.SeverityWarning, 0.85
				target := "state"
				if len(e.Writes) > 0 {
					target = strings.Join(e.Writes, ", ")
				}
				rationale = fmt.Sprintf("effect %s in %s has %s and only recomputes %s; derive it during render instead",
					e.Name, displayName(n), describeTrigger(e.Trigger), target)
			case domain.EffectPerformsIO:
				sev, conf = domain.SeverityInfo, 0.4
				rationale = fmt.Sprintf("effect %s in %s performs I/O with %s; confirm it is meant to run once per mount",
					e.Name, displayName(n), describeTrigger(e.Trigger))
			default:
				continue
			}

			out = append(out, domain.Finding{
				Severity:   sev,
				Confidence: conf,
				Rationale:  rationale,
				Evidence: []domain.EvidenceRef{
					ref(domain.EvidenceEffect, n.ID, domain.EffectRef(n.ID, e.Name)),
					nodeRef(n),
				},
				Meta: domain.Attrs{
					"effect":  e.Name,
					"trigger": string(e.Trigger.Kind),
					"class":   string(e.Class),
				},
			}.At(e.Location))
		}
	}
	return out, nil
}

func init() { detection.Register(misusedEffects{}) }
