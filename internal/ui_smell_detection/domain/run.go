package domain

import "time"

// AnalysisRun is the persisted record of one unit analysis.
type AnalysisRun struct {
	ID          string         `json:"id"`
	Unit        string         `json:"unit"`
	GraphHash   string         `json:"graph_hash"`
	ConfigHash  string         `json:"config_hash"`
	RuleIDs     []RuleID       `json:"rule_ids"`
	Findings    int            `json:"findings"`
	MaxSeverity Severity       `json:"max_severity,omitempty"`
	Summary     map[RuleID]int `json:"summary"`
	Report      *Report        `json:"report,omitempty"`
	Cached      bool           `json:"cached"`
	DurationMs  int64          `json:"duration_ms"`
	CreatedAt   time.Time      `json:"created_at"`
}
