package domain

type EvidenceRef struct {
	Kind EvidenceKind `json:"kind" yaml:"kind"`
	ID   string       `json:"id" yaml:"id"`
	// Node owning the evidence; equals ID for node refs.
	Node string `json:"node,omitempty" yaml:"node,omitempty"`
}

type Finding struct {
	RuleID      RuleID        `json:"rule_id" yaml:"rule_id"`
	Severity    Severity      `json:"severity" yaml:"severity"`
	Confidence  float64       `json:"confidence" yaml:"confidence"`
	File        string        `json:"file" yaml:"file"`
	StartLine   int           `json:"start_line" yaml:"start_line"`
	EndLine     int           `json:"end_line" yaml:"end_line"`
	Rationale   string        `json:"rationale" yaml:"rationale"`
	Evidence    []EvidenceRef `json:"evidence" yaml:"evidence"`
	Meta        Attrs         `json:"meta,omitempty" yaml:"meta,omitempty"`
	Fingerprint string        `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// Primary returns the evidence ref that identifies the finding for dedup.
func (f Finding) Primary() EvidenceRef {
	if len(f.Evidence) == 0 {
		return EvidenceRef{}
	}
	return f.Evidence[0]
}

// At fills the location fields from loc.
func (f Finding) At(loc Location) Finding {
	f.File = loc.File
	f.StartLine = loc.StartLine
	f.EndLine = loc.EndLine
	return f
}

type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	RuleID  RuleID         `json:"rule_id,omitempty" yaml:"rule_id,omitempty"`
	Unit    string         `json:"unit,omitempty" yaml:"unit,omitempty"`
	Message string         `json:"message" yaml:"message"`
}

// Record is the serialized form of a finding at the report boundary.
type Record struct {
	RuleID    RuleID   `json:"ruleId" yaml:"ruleId"`
	Severity  Severity `json:"severity" yaml:"severity"`
	File      string   `json:"file" yaml:"file"`
	StartLine int      `json:"startLine" yaml:"startLine"`
	EndLine   int      `json:"endLine" yaml:"endLine"`
	Rationale string   `json:"rationale" yaml:"rationale"`
}

func (f Finding) Record() Record {
	return Record{
		RuleID:    f.RuleID,
		Severity:  f.Severity,
		File:      f.File,
		StartLine: f.StartLine,
		EndLine:   f.EndLine,
		Rationale: f.Rationale,
	}
}

type Report struct {
	Unit        string         `json:"unit" yaml:"unit"`
	GraphHash   string         `json:"graph_hash,omitempty" yaml:"graph_hash,omitempty"`
	Findings    []Finding      `json:"findings" yaml:"findings"`
	Summary     map[RuleID]int `json:"summary" yaml:"summary"`
	Diagnostics []Diagnostic   `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func (r *Report) Records() []Record {
	out := make([]Record, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.Record())
	}
	return out
}
