package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/report"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/service"
)

type memCache struct {
	mu      sync.Mutex
	reports map[string]domain.Report
	puts    int
}

func (c *memCache) Get(_ context.Context, graphHash, configHash string) (*domain.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.reports[graphHash+":"+configHash]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return &r, nil
}

func (c *memCache) Put(_ context.Context, configHash string, r *domain.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reports == nil {
		c.reports = map[string]domain.Report{}
	}
	c.reports[r.GraphHash+":"+configHash] = *r
	c.puts++
	return nil
}

type memRuns struct {
	mu   sync.Mutex
	runs []*domain.AnalysisRun
	err  error
}

func (m *memRuns) Create(_ context.Context, run *domain.AnalysisRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	run.ID = "run-1"
	m.runs = append(m.runs, run)
	return nil
}

func dashboard(t *testing.T) ingest.SourceUnit {
	t.Helper()
	b, err := os.ReadFile("../ingest/testdata/dashboard.acg.yaml")
	require.NoError(t, err)
	return ingest.SourceUnit{Name: "src/Dashboard.jsx", Path: "dashboard.acg.yaml", Content: b}
}

func TestAnalyzeUnit_Dashboard(t *testing.T) {
	res, err := service.New().AnalyzeUnit(context.Background(), dashboard(t), detection.Config{})
	require.NoError(t, err)

	r := res.Report
	assert.Equal(t, "src/Dashboard.jsx", r.Unit)
	assert.NotEmpty(t, r.GraphHash)
	assert.Empty(t, r.Diagnostics)
	assert.Equal(t, map[domain.RuleID]int{
		domain.RuleBlockingView:        2,
		domain.RuleBusinessLogicInView: 1,
		domain.RuleInefficientList:     1,
		domain.RuleLargeComponent:      1,
		domain.RuleMisusedEffects:      2,
		domain.RuleMutableView:         1,
	}, r.Summary)

	for i := 1; i < len(r.Findings); i++ {
		assert.LessOrEqual(t, r.Findings[i-1].StartLine, r.Findings[i].StartLine)
	}
}

func TestAnalyzeUnit_ConfigChangesResult(t *testing.T) {
	res, err := service.New().AnalyzeUnit(context.Background(), dashboard(t), detection.Config{
		MinDrillDepth: 2,
		EnabledRules:  []domain.RuleID{domain.RulePropDrilling},
	})
	require.NoError(t, err)
	require.Len(t, res.Report.Findings, 1)
	assert.Equal(t, domain.RulePropDrilling, res.Report.Findings[0].RuleID)
}

func TestAnalyzeBytes_JSONDocument(t *testing.T) {
	b, err := os.ReadFile("../ingest/testdata/nested/clean.acg.json")
	require.NoError(t, err)

	svc := service.New()
	for _, format := range []string{"", "json"} {
		res, err := svc.AnalyzeBytes(context.Background(), "clean", format, b, detection.Config{})
		require.NoError(t, err, format)
		assert.NotEmpty(t, res.Report.GraphHash)
		assert.Empty(t, res.Report.Findings)
	}

	_, err = svc.AnalyzeBytes(context.Background(), "clean", "", nil, detection.Config{})
	assert.EqualError(t, err, "empty document")
}

func TestAnalyzeUnit_UsesCacheAndRecordsRuns(t *testing.T) {
	cache := &memCache{}
	runs := &memRuns{}
	svc := service.New(service.WithCache(cache), service.WithRuns(runs))

	first, err := svc.AnalyzeUnit(context.Background(), dashboard(t), detection.Config{})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "run-1", first.RunID)

	second, err := svc.AnalyzeUnit(context.Background(), dashboard(t), detection.Config{})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Report, second.Report)
	assert.Equal(t, 1, cache.puts)

	// different thresholds miss the cache
	_, err = svc.AnalyzeUnit(context.Background(), dashboard(t), detection.Config{LargeListThreshold: 10000})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.puts)

	require.Len(t, runs.runs, 3)
	assert.Len(t, runs.runs[0].RuleIDs, len(domain.AllRuleIDs()))
	assert.Equal(t, domain.SeverityWarning, runs.runs[0].MaxSeverity)
	assert.True(t, runs.runs[1].Cached)
}

func TestAnalyzeUnit_RunStoreFailureIsNotFatal(t *testing.T) {
	svc := service.New(service.WithRuns(&memRuns{err: errors.New("db down")}))
	res, err := svc.AnalyzeUnit(context.Background(), dashboard(t), detection.Config{})
	require.NoError(t, err)
	assert.Empty(t, res.RunID)
}

func TestAnalyzeUnit_RejectsUnknownRule(t *testing.T) {
	_, err := service.New().AnalyzeUnit(context.Background(), dashboard(t), detection.Config{
		EnabledRules: []domain.RuleID{"god_component"},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownRule)
}

func TestAnalyzeBatch_IsolatesMalformedUnits(t *testing.T) {
	units := []ingest.SourceUnit{
		dashboard(t),
		{Name: "broken.acg.yaml", Format: "yaml", Content: []byte("nodes:\n  - {id: a, children: [ghost]}\n")},
		{Name: "empty.acg.yaml", Format: "yaml", Content: []byte("nodes: []\n")},
	}

	res, err := service.New().AnalyzeBatch(context.Background(), units, detection.Config{}, 2)
	require.NoError(t, err)

	require.Len(t, res.Reports, 2)
	assert.Equal(t, "src/Dashboard.jsx", res.Reports[0].Unit)
	assert.Equal(t, "empty.acg.yaml", res.Reports[1].Unit)
	assert.Empty(t, res.Reports[1].Findings)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, domain.DiagMalformedGraph, res.Diagnostics[0].Kind)
	assert.Equal(t, "broken.acg.yaml", res.Diagnostics[0].Unit)
	assert.Equal(t, 1, res.Failures)
	assert.Equal(t, report.ExitMalformed, res.ExitCode)
}

func TestAnalyzeBatch_ExitCodes(t *testing.T) {
	clean := ingest.SourceUnit{Name: "clean", Format: "yaml", Content: []byte("nodes:\n  - {id: App, role: component}\n")}

	res, err := service.New().AnalyzeBatch(context.Background(), []ingest.SourceUnit{clean}, detection.Config{}, 0)
	require.NoError(t, err)
	assert.Equal(t, report.ExitClean, res.ExitCode)

	res, err = service.New().AnalyzeBatch(context.Background(), []ingest.SourceUnit{clean, dashboard(t)}, detection.Config{}, 1)
	require.NoError(t, err)
	assert.Equal(t, report.ExitFindings, res.ExitCode)
}

func TestAnalyzeBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := service.New().AnalyzeBatch(ctx, []ingest.SourceUnit{dashboard(t)}, detection.Config{}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteArtifacts(t *testing.T) {
	res, err := service.New().AnalyzeUnit(context.Background(), dashboard(t), detection.Config{})
	require.NoError(t, err)

	dir := t.TempDir()
	a, err := service.WriteArtifacts(context.Background(), dir, res.Graph, &res.Report, service.ArtifactOptions{})
	require.NoError(t, err)
	assert.Empty(t, a.SVGPath)

	for _, p := range []string{a.DOTPath, a.JSONPath, a.YAMLPath} {
		assert.FileExists(t, p)
		assert.Equal(t, dir, filepath.Dir(p))
	}
	dot, err := os.ReadFile(a.DOTPath)
	require.NoError(t, err)
	assert.Contains(t, string(dot), `"Dashboard"`)
}
