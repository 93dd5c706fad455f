package detection

import (
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

// Detector is one smell rule. Detect must not modify g and must be safe to
// call concurrently with other detectors on the same graph.
type Detector interface {
	Name() domain.RuleID
	Detect(g *graph.Graph, cfg Config) ([]domain.Finding, error)
}
