package scoring

import "github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"

// ScoreFinding ranks a finding for "top findings" views. Confidence scales
// the severity weight; wider evidence adds a little.
func ScoreFinding(f domain.Finding) int {
	base := severityWeight(f.Severity)
	if f.Confidence > 0 && f.Confidence < 1 {
		base = int(float64(base) * (0.5 + f.Confidence/2))
	}
	rule := ruleWeight(f.RuleID)
	breadth := 0
	if len(f.Evidence) > 0 {
		breadth = min(5, len(f.Evidence)-1)
	}
	return base + rule + breadth
}

func severityWeight(s domain.Severity) int {
	switch s {
	case domain.SeverityWarning:
		return 60
	case domain.SeverityInfo:
		return 20
	default:
		return 10
	}
}

func ruleWeight(id domain.RuleID) int {
	switch id {
	case domain.RuleBlockingView:
		return 25
	case domain.RuleMutableView:
		return 22
	case domain.RuleInefficientList:
		return 20
	case domain.RuleMisusedEffects:
		return 18
	case domain.RuleLargeComponent:
		return 16
	case domain.RuleBusinessLogicInView:
		return 15
	case domain.RulePropDrilling:
		return 14
	case domain.RuleDuplicateView:
		return 12
	case domain.RuleNestedView:
		return 10
	default:
		return 8
	}
}
