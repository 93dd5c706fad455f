package service

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/report"
)

type BatchResult struct {
	// Reports of the units that ingested, in input order.
	Reports []domain.Report `json:"reports" yaml:"reports"`
	// Diagnostics holds one malformed_graph entry per failed unit.
	Diagnostics []domain.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Failures    int                 `json:"failures" yaml:"failures"`
	ExitCode    int                 `json:"exit_code" yaml:"exit_code"`
	Results     []*UnitResult       `json:"-" yaml:"-"`
}

// AnalyzeBatch analyses units with at most workers in flight. A unit that
// fails ingestion becomes a diagnostic and the rest still report. The
// batch is abandoned only when ctx ends.
func (s *Service) AnalyzeBatch(ctx context.Context, units []ingest.SourceUnit, cfg detection.Config, workers int) (*BatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]*UnitResult, len(units))
	failed := make([]error, len(units))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, u := range units {
		eg.Go(func() error {
			res, err := s.AnalyzeUnit(egCtx, u, cfg)
			if err != nil {
				if errors.Is(err, domain.ErrMalformedGraph) {
					failed[i] = err
					return nil
				}
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := &BatchResult{Reports: []domain.Report{}}
	for i, u := range units {
		if failed[i] != nil {
			s.log.WithField("unit", u.DisplayName()).WithError(failed[i]).Warn("unit skipped")
			out.Diagnostics = append(out.Diagnostics, domain.Diagnostic{
				Kind:    domain.DiagMalformedGraph,
				Unit:    u.DisplayName(),
				Message: failed[i].Error(),
			})
			out.Failures++
			continue
		}
		out.Reports = append(out.Reports, results[i].Report)
		out.Results = append(out.Results, results[i])
	}
	out.ExitCode = report.ExitCode(out.Reports, out.Failures)
	return out, nil
}
