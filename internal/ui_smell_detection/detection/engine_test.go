package detection_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

type fakeDetector struct {
	id     domain.RuleID
	detect func(g *graph.Graph, cfg detection.Config) ([]domain.Finding, error)
}

func (f fakeDetector) Name() domain.RuleID { return f.id }

func (f fakeDetector) Detect(g *graph.Graph, cfg detection.Config) ([]domain.Finding, error) {
	return f.detect(g, cfg)
}

func emitOne(id domain.RuleID) fakeDetector {
	return fakeDetector{id: id, detect: func(g *graph.Graph, cfg detection.Config) ([]domain.Finding, error) {
		return []domain.Finding{{
			Severity:  domain.SeverityWarning,
			File:      "App.jsx",
			StartLine: 1,
			Rationale: string(id),
			Evidence:  []domain.EvidenceRef{{Kind: domain.EvidenceNode, ID: "root", Node: "root"}},
		}}, nil
	}}
}

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New("App.jsx", []domain.ComponentNode{{ID: "root", Name: "App", Kind: "App", Role: domain.RoleComponent}}, nil)
	require.NoError(t, err)
	return g
}

func TestRunRules_IsolatesFailingRules(t *testing.T) {
	g := testGraph(t)
	dets := []detection.Detector{
		emitOne(domain.RuleBlockingView),
		fakeDetector{id: domain.RuleDuplicateView, detect: func(*graph.Graph, detection.Config) ([]domain.Finding, error) {
			panic("index out of range")
		}},
		fakeDetector{id: domain.RuleInefficientList, detect: func(*graph.Graph, detection.Config) ([]domain.Finding, error) {
			return nil, errors.New("boom")
		}},
		fakeDetector{id: domain.RuleLargeComponent, detect: func(*graph.Graph, detection.Config) ([]domain.Finding, error) {
			return []domain.Finding{{Rationale: "no evidence"}}, nil
		}},
		emitOne(domain.RuleNestedView),
	}

	findings, diags, err := detection.RunRules(context.Background(), g, dets, detection.Config{})
	require.NoError(t, err)

	require.Len(t, findings, 2)
	assert.Equal(t, domain.RuleBlockingView, findings[0].RuleID)
	assert.Equal(t, domain.RuleNestedView, findings[1].RuleID)

	require.Len(t, diags, 3)
	for i, want := range []domain.RuleID{domain.RuleDuplicateView, domain.RuleInefficientList, domain.RuleLargeComponent} {
		assert.Equal(t, domain.DiagRuleFailed, diags[i].Kind)
		assert.Equal(t, want, diags[i].RuleID)
		assert.Equal(t, "App.jsx", diags[i].Unit)
	}
	assert.Contains(t, diags[0].Message, "panic")
}

func TestRunRules_AppliesDefaults(t *testing.T) {
	g := testGraph(t)
	var seen detection.Config
	det := fakeDetector{id: domain.RuleNestedView, detect: func(_ *graph.Graph, cfg detection.Config) ([]domain.Finding, error) {
		seen = cfg
		return nil, nil
	}}

	_, _, err := detection.RunRules(context.Background(), g, []detection.Detector{det}, detection.Config{MaxNestingDepth: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, seen.MaxNestingDepth)
	assert.Equal(t, 500, seen.LargeListThreshold)
}

func TestRunRules_Deterministic(t *testing.T) {
	g := testGraph(t)
	dets := []detection.Detector{emitOne(domain.RuleBlockingView), emitOne(domain.RuleMisusedEffects), emitOne(domain.RulePropDrilling)}

	first, _, err := detection.RunRules(context.Background(), g, dets, detection.Config{})
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, _, err := detection.RunRules(context.Background(), g, dets, detection.Config{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRunRules_CancelledContextAbandonsUnit(t *testing.T) {
	g := testGraph(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	findings, diags, err := detection.RunRules(ctx, g, []detection.Detector{emitOne(domain.RuleBlockingView)}, detection.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, findings)
	assert.Nil(t, diags)
}

func TestRunRules_NilGraph(t *testing.T) {
	_, _, err := detection.RunRules(context.Background(), nil, nil, detection.Config{})
	assert.Error(t, err)
}
