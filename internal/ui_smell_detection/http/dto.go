package http

import (
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/service"
)

type AnalyzeRawRequest struct {
	Document string           `json:"document"`
	Format   string           `json:"format,omitempty"`
	Unit     string           `json:"unit,omitempty"`
	Config   detection.Config `json:"config"`
}

type BatchUnit struct {
	Unit     string `json:"unit"`
	Document string `json:"document"`
	Format   string `json:"format,omitempty"`
}

type BatchRequest struct {
	Units   []BatchUnit      `json:"units"`
	Config  detection.Config `json:"config"`
	Workers int              `json:"workers,omitempty"`
}

type DotRequest struct {
	Document string `json:"document"`
	Format   string `json:"format,omitempty"`
	Title    string `json:"title,omitempty"`
}

type AnalyzeResponse struct {
	*service.UnitResult
	ExitCode int `json:"exit_code"`
}

type RuleInfo struct {
	ID      domain.RuleID `json:"id"`
	Enabled bool          `json:"enabled"`
}

type RulesResponse struct {
	Rules  []RuleInfo       `json:"rules"`
	Config detection.Config `json:"config"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}
