package detection

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

type ruleResult struct {
	findings []domain.Finding
	failure  *domain.RuleFailedError
}

// RunAll runs every detector enabled by cfg.
func RunAll(ctx context.Context, g *graph.Graph, cfg Config) ([]domain.Finding, []domain.Diagnostic, error) {
	return RunRules(ctx, g, Select(cfg), cfg)
}

// RunRules runs detectors concurrently against g. A detector that errors or
// panics yields a rule_failed diagnostic and the others still report.
// Output order follows the detector order, so identical inputs produce
// identical output. If ctx ends before every detector has run, the unit is
// abandoned and ctx.Err() returned.
func RunRules(ctx context.Context, g *graph.Graph, detectors []Detector, cfg Config) ([]domain.Finding, []domain.Diagnostic, error) {
	if g == nil {
		return nil, nil, fmt.Errorf("detection: graph is nil")
	}
	cfg = cfg.WithDefaults()

	results := make([]ruleResult, len(detectors))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, det := range detectors {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = runDetector(det, g, cfg)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, fmt.Errorf("rules on %s abandoned: %w", g.Unit(), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("rules on %s abandoned: %w", g.Unit(), err)
	}

	var (
		findings []domain.Finding
		diags    []domain.Diagnostic
	)
	for _, r := range results {
		if r.failure != nil {
			logrus.WithFields(logrus.Fields{
				"unit": g.Unit(),
				"rule": r.failure.RuleID,
			}).Warnf("rule failed: %v", r.failure.Cause)
			diags = append(diags, domain.Diagnostic{
				Kind:    domain.DiagRuleFailed,
				RuleID:  r.failure.RuleID,
				Unit:    g.Unit(),
				Message: r.failure.Error(),
			})
			continue
		}
		findings = append(findings, r.findings...)
	}
	return findings, diags, nil
}

func runDetector(det Detector, g *graph.Graph, cfg Config) (res ruleResult) {
	id := det.Name()
	defer func() {
		if p := recover(); p != nil {
			res = ruleResult{failure: &domain.RuleFailedError{RuleID: id, Cause: fmt.Errorf("panic: %v", p)}}
		}
	}()

	fs, err := det.Detect(g, cfg)
	if err != nil {
		return ruleResult{failure: &domain.RuleFailedError{RuleID: id, Cause: err}}
	}
	for i := range fs {
		if len(fs[i].Evidence) == 0 {
			return ruleResult{failure: &domain.RuleFailedError{RuleID: id, Cause: fmt.Errorf("finding %d has no evidence", i)}}
		}
		fs[i].RuleID = id
	}
	return ruleResult{findings: fs}
}
