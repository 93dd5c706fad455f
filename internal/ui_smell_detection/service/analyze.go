package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	_ "github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection/rules"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/report"
)

// ReportCache stores reports keyed by graph hash and config hash.
type ReportCache interface {
	Get(ctx context.Context, graphHash, configHash string) (*domain.Report, error)
	Put(ctx context.Context, configHash string, r *domain.Report) error
}

// RunRecorder persists analysis runs.
type RunRecorder interface {
	Create(ctx context.Context, run *domain.AnalysisRun) error
}

type Service struct {
	cache ReportCache
	runs  RunRecorder
	log   logrus.FieldLogger
}

type Option func(*Service)

func WithCache(c ReportCache) Option { return func(s *Service) { s.cache = c } }

func WithRuns(r RunRecorder) Option { return func(s *Service) { s.runs = r } }

func WithLogger(l logrus.FieldLogger) Option { return func(s *Service) { s.log = l } }

func New(opts ...Option) *Service {
	s := &Service{log: logrus.StandardLogger()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// UnitResult is the outcome of analysing one source unit.
type UnitResult struct {
	Report domain.Report `json:"report" yaml:"report"`
	Graph  *graph.Graph  `json:"-" yaml:"-"`
	Cached bool          `json:"cached" yaml:"cached"`
	RunID  string        `json:"run_id,omitempty" yaml:"run_id,omitempty"`
}

// Analyze runs the enabled rules on g and builds its report.
func (s *Service) Analyze(ctx context.Context, g *graph.Graph, cfg detection.Config) (*domain.Report, error) {
	findings, diags, err := detection.RunAll(ctx, g, cfg)
	if err != nil {
		return nil, err
	}
	r := report.Build(g.Unit(), g.Hash(), findings, diags)
	return &r, nil
}

// AnalyzeUnit ingests u and analyses the resulting graph. Ingestion failures
// come back as *domain.MalformedGraphError. Cache and run store errors are
// logged and never fail the analysis.
func (s *Service) AnalyzeUnit(ctx context.Context, u ingest.SourceUnit, cfg detection.Config) (*UnitResult, error) {
	start := time.Now()
	g, err := ingest.BuildGraph(ctx, u)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg = cfg.WithDefaults()
	cfgHash := cfg.Hash()
	log := s.log.WithFields(logrus.Fields{"unit": g.Unit(), "graph_hash": g.Hash()})

	res := &UnitResult{Graph: g}
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, g.Hash(), cfgHash)
		switch {
		case err == nil:
			res.Report = *cached
			res.Report.Unit = g.Unit()
			res.Cached = true
		case !errors.Is(err, domain.ErrReportNotFound):
			log.WithError(err).Warn("report cache lookup failed")
		}
	}

	if !res.Cached {
		r, err := s.Analyze(ctx, g, cfg)
		if err != nil {
			return nil, err
		}
		res.Report = *r
		if s.cache != nil {
			if err := s.cache.Put(ctx, cfgHash, r); err != nil {
				log.WithError(err).Warn("report cache store failed")
			}
		}
	}

	if s.runs != nil {
		run := newRun(res, cfg, cfgHash, time.Since(start))
		if err := s.runs.Create(ctx, run); err != nil {
			log.WithError(err).Warn("failed to record analysis run")
		} else {
			res.RunID = run.ID
		}
	}

	log.WithFields(logrus.Fields{
		"findings": len(res.Report.Findings),
		"cached":   res.Cached,
	}).Debug("unit analysed")
	return res, nil
}

func newRun(res *UnitResult, cfg detection.Config, cfgHash string, elapsed time.Duration) *domain.AnalysisRun {
	rules := make([]domain.RuleID, 0)
	for _, d := range detection.Select(cfg) {
		rules = append(rules, d.Name())
	}
	r := res.Report
	return &domain.AnalysisRun{
		Unit:        r.Unit,
		GraphHash:   r.GraphHash,
		ConfigHash:  cfgHash,
		RuleIDs:     rules,
		Findings:    len(r.Findings),
		MaxSeverity: report.MaxSeverity(r),
		Summary:     r.Summary,
		Report:      &r,
		Cached:      res.Cached,
		DurationMs:  elapsed.Milliseconds(),
	}
}

// AnalyzeBytes analyses an in-memory YAML or JSON document. An empty format
// is detected from the content.
func (s *Service) AnalyzeBytes(ctx context.Context, name, format string, b []byte, cfg detection.Config) (*UnitResult, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	return s.AnalyzeUnit(ctx, ingest.SourceUnit{Name: name, Format: format, Content: b}, cfg)
}
