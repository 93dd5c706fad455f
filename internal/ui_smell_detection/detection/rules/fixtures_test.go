package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	_ "github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection/rules"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

const file = "Screen.jsx"

func loc(line int) domain.Location {
	return domain.Location{File: file, StartLine: line, EndLine: line + 1}
}

func comp(id string, line int, children ...string) domain.ComponentNode {
	return domain.ComponentNode{
		ID:       id,
		Name:     id,
		Kind:     id,
		Role:     domain.RoleComponent,
		Location: loc(line),
		Children: children,
	}
}

func elem(id, kind string, line int, children ...string) domain.ComponentNode {
	return domain.ComponentNode{
		ID:       id,
		Name:     id,
		Kind:     kind,
		Role:     domain.RoleElement,
		Location: loc(line),
		Children: children,
	}
}

func text(id, kind string, line int) domain.ComponentNode {
	n := elem(id, kind, line)
	n.LiteralSlots = 1
	return n
}

func run(t *testing.T, id domain.RuleID, cfg detection.Config, nodes []domain.ComponentNode, flows []domain.PropFlow) []domain.Finding {
	t.Helper()
	g, err := graph.New(file, nodes, flows)
	require.NoError(t, err)

	det, ok := detection.Lookup(id)
	require.True(t, ok, "rule %s is not registered", id)

	fs, diags, err := detection.RunRules(context.Background(), g, []detection.Detector{det}, cfg)
	require.NoError(t, err)
	require.Empty(t, diags)
	return fs
}

func TestAllRulesRegistered(t *testing.T) {
	for _, id := range domain.AllRuleIDs() {
		_, ok := detection.Lookup(id)
		require.True(t, ok, "rule %s is not registered", id)
	}
	require.Len(t, detection.All(), len(domain.AllRuleIDs()))
}
