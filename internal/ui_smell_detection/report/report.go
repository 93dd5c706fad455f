package report

import (
	"sort"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

// Exit codes for batch runs.
const (
	ExitClean     = 0
	ExitFindings  = 1
	ExitMalformed = 2
)

// Build assembles the report for one unit. Findings are sorted by
// (file, startLine, ruleId, endLine, primary evidence) and deduplicated on
// (ruleId, primary evidence), keeping the first.
func Build(unit, graphHash string, findings []domain.Finding, diags []domain.Diagnostic) domain.Report {
	sorted := make([]domain.Finding, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	type key struct {
		rule    domain.RuleID
		primary string
	}
	seen := make(map[key]bool, len(sorted))
	out := make([]domain.Finding, 0, len(sorted))
	summary := map[domain.RuleID]int{}
	for _, f := range sorted {
		k := key{f.RuleID, f.Primary().ID}
		if seen[k] {
			continue
		}
		seen[k] = true
		if f.Fingerprint == "" {
			f.Fingerprint = Fingerprint(f)
		}
		out = append(out, f)
		summary[f.RuleID]++
	}

	return domain.Report{
		Unit:        unit,
		GraphHash:   graphHash,
		Findings:    out,
		Summary:     summary,
		Diagnostics: dedupDiagnostics(diags),
	}
}

func less(a, b domain.Finding) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	if a.StartLine != b.StartLine {
		return a.StartLine < b.StartLine
	}
	if a.RuleID != b.RuleID {
		return a.RuleID < b.RuleID
	}
	if a.EndLine != b.EndLine {
		return a.EndLine < b.EndLine
	}
	return a.Primary().ID < b.Primary().ID
}

// Fingerprint identifies a finding across runs of the same source.
func Fingerprint(f domain.Finding) string {
	return graph.HashFields(string(f.RuleID), f.File, f.Primary().ID)
}

func dedupDiagnostics(diags []domain.Diagnostic) []domain.Diagnostic {
	if len(diags) == 0 {
		return nil
	}
	seen := make(map[domain.Diagnostic]bool, len(diags))
	out := make([]domain.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// Merge combines two reports of the same unit. Merging a report with
// itself returns an equal report.
func Merge(a, b domain.Report) domain.Report {
	unit := a.Unit
	if unit == "" {
		unit = b.Unit
	}
	hash := a.GraphHash
	if hash == "" {
		hash = b.GraphHash
	} else if b.GraphHash != "" && b.GraphHash != hash {
		hash = ""
	}

	findings := make([]domain.Finding, 0, len(a.Findings)+len(b.Findings))
	findings = append(findings, a.Findings...)
	findings = append(findings, b.Findings...)

	diags := make([]domain.Diagnostic, 0, len(a.Diagnostics)+len(b.Diagnostics))
	diags = append(diags, a.Diagnostics...)
	diags = append(diags, b.Diagnostics...)

	return Build(unit, hash, findings, diags)
}

// ExitCode is ExitMalformed when any unit failed ingestion, ExitFindings
// when any finding is at warning or above, ExitClean otherwise.
func ExitCode(reports []domain.Report, failures int) int {
	if failures > 0 {
		return ExitMalformed
	}
	for _, r := range reports {
		if MaxSeverity(r).Rank() >= domain.SeverityWarning.Rank() {
			return ExitFindings
		}
	}
	return ExitClean
}

// MaxSeverity returns the highest severity in r, or "" when r is clean.
func MaxSeverity(r domain.Report) domain.Severity {
	var top domain.Severity
	for _, f := range r.Findings {
		if f.Severity.Rank() > top.Rank() {
			top = f.Severity
		}
	}
	return top
}

// Total counts findings across reports.
func Total(reports []domain.Report) int {
	n := 0
	for _, r := range reports {
		n += len(r.Findings)
	}
	return n
}
