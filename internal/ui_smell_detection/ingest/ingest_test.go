package ingest_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	_ "github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection/rules"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest"
)

func TestBuildGraph_Document(t *testing.T) {
	b, err := os.ReadFile("testdata/dashboard.acg.yaml")
	require.NoError(t, err)

	g, err := ingest.BuildGraph(context.Background(), ingest.SourceUnit{Content: b, Format: "yaml"})
	require.NoError(t, err)

	assert.Equal(t, "src/Dashboard.jsx", g.Unit())
	assert.Equal(t, 4, g.Len())

	dash, ok := g.Node("Dashboard")
	require.True(t, ok)
	assert.Equal(t, "src/Dashboard.jsx", dash.Location.File)
	assert.Equal(t, domain.Exactly(140), dash.BodyStatementCount)

	// calls bound to an effect default to the effect site
	calls := g.ExternalCalls("Dashboard")
	require.Len(t, calls, 4)
	assert.Equal(t, domain.SiteEffect, calls[0].Site)
	assert.Equal(t, domain.SiteRender, calls[1].Site)

	effects := g.Effects("Dashboard")
	require.Len(t, effects, 2)
	assert.Equal(t, domain.TriggerAbsent, effects[1].Trigger.Kind)

	shell, _ := g.Node("Shell")
	assert.Equal(t, domain.RoleComponent, shell.Role)
	assert.Len(t, g.PropFlowsInto("Badge"), 1)
}

func TestBuildGraph_JSONAndRoleDefaults(t *testing.T) {
	b, err := os.ReadFile("testdata/nested/clean.acg.json")
	require.NoError(t, err)

	g, err := ingest.BuildGraph(context.Background(), ingest.SourceUnit{Name: "clean", Path: "nested/clean.acg.json", Content: b})
	require.NoError(t, err)
	assert.Equal(t, "clean", g.Unit())

	root, ok := g.Node("root")
	require.True(t, ok)
	assert.Equal(t, domain.RoleElement, root.Role)
	assert.Equal(t, "clean", root.Location.File)
	assert.Equal(t, 3, root.Location.EndLine)
}

func TestBuildGraph_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		unit   ingest.SourceUnit
		reason string
	}{
		{
			name:   "undecodable",
			unit:   ingest.SourceUnit{Name: "x", Format: "json", Content: []byte("{nodes")},
			reason: domain.ReasonDecode,
		},
		{
			name:   "schema",
			unit:   ingest.SourceUnit{Name: "x", Format: "yaml", Content: []byte("nodes:\n  - {id: a, role: widget}\n")},
			reason: domain.ReasonSchema,
		},
		{
			name:   "structural",
			unit:   ingest.SourceUnit{Name: "x", Format: "yaml", Content: []byte("nodes:\n  - {id: a, children: [b]}\n")},
			reason: domain.ReasonDanglingChild,
		},
		{
			name:   "no front end",
			unit:   ingest.SourceUnit{Path: "src/App.tsx", Content: []byte("export default () => null")},
			reason: domain.ReasonNoFrontend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ingest.BuildGraph(context.Background(), tt.unit)
			require.ErrorIs(t, err, domain.ErrMalformedGraph)

			var mge *domain.MalformedGraphError
			require.True(t, errors.As(err, &mge))
			assert.Equal(t, tt.reason, mge.Reason)
		})
	}
}

func TestBuildGraph_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ingest.FromBytes(ctx, "x", "yaml", []byte("nodes: []"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsDocument(t *testing.T) {
	assert.True(t, ingest.IsDocument("src/App.acg.yaml"))
	assert.True(t, ingest.IsDocument("App.ACG.JSON"))
	assert.False(t, ingest.IsDocument("App.yaml"))
	assert.False(t, ingest.IsDocument("App.jsx"))
}

// composeCards is a Column of three copy-pasted Row{Text, Text} cards with no
// roles given.
const composeCards = `
unit: examples/compose/UserCards.kt
framework: compose
nodes:
  - {id: UserCards, kind: UserCards, location: {start_line: 10, end_line: 40}, children: [list]}
  - {id: list, kind: Column, location: {start_line: 12}, children: [row1, row2, row3]}
  - {id: row1, kind: Row, location: {start_line: 14}, children: [name1, mail1]}
  - {id: name1, kind: Text, literal_slots: 1, location: {start_line: 15}}
  - {id: mail1, kind: Text, literal_slots: 1, location: {start_line: 16}}
  - {id: row2, kind: Row, location: {start_line: 20}, children: [name2, mail2]}
  - {id: name2, kind: Text, literal_slots: 1, location: {start_line: 21}}
  - {id: mail2, kind: Text, literal_slots: 1, location: {start_line: 22}}
  - {id: row3, kind: Row, location: {start_line: 26}, children: [name3, mail3]}
  - {id: name3, kind: Text, literal_slots: 1, location: {start_line: 27}}
  - {id: mail3, kind: Text, literal_slots: 1, location: {start_line: 28}}
`

func TestBuildGraph_FrameworkPrimitivesAreElements(t *testing.T) {
	g, err := ingest.BuildGraph(context.Background(), ingest.SourceUnit{Content: []byte(composeCards), Format: "yaml"})
	require.NoError(t, err)

	for id, want := range map[string]domain.NodeRole{
		"UserCards": domain.RoleComponent,
		"list":      domain.RoleElement,
		"row1":      domain.RoleElement,
		"name1":     domain.RoleElement,
	} {
		n, ok := g.Node(id)
		require.True(t, ok, id)
		assert.Equal(t, want, n.Role, id)
	}

	findings, diags, err := detection.RunAll(context.Background(), g, detection.Config{})
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.RuleDuplicateView, findings[0].RuleID)
	assert.Equal(t, "row1", findings[0].Primary().Node)
}

func TestBuildGraph_SwiftUIRoles(t *testing.T) {
	doc := `
framework: SwiftUI
nodes:
  - {id: Cards, kind: Cards, children: [stack]}
  - {id: stack, kind: VStack, children: [title, card]}
  - {id: title, kind: Text}
  - {id: card, kind: UserCard}
`
	g, err := ingest.FromBytes(context.Background(), "Cards.swift", "yaml", []byte(doc))
	require.NoError(t, err)

	stack, _ := g.Node("stack")
	assert.Equal(t, domain.RoleElement, stack.Role)
	card, _ := g.Node("card")
	assert.Equal(t, domain.RoleComponent, card.Role, "user views keep the component default")
}
