package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest/parser"
)

func TestBound_YAML(t *testing.T) {
	doc, err := parser.ParseYAMLString(`
nodes:
  - id: a
    body_statement_count: 42
  - id: b
    body_statement_count: {at_least: 10}
  - id: c
    body_statement_count: null
  - id: d
  - id: e
    body_statement_count: {exact: 7}
`)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 5)

	want := []domain.Bound{
		domain.Exactly(42),
		domain.AtLeast(10),
		domain.Unknown(),
		{},
		domain.Exactly(7),
	}
	for i, w := range want {
		got := domain.Bound(doc.Nodes[i].BodyStatementCount)
		assert.Equal(t, w.Known(), got.Known(), doc.Nodes[i].ID)
		if w.Known() {
			assert.Equal(t, w, got, doc.Nodes[i].ID)
		}
	}
}

func TestBound_JSON(t *testing.T) {
	doc, err := parser.ParseJSONString(`{"nodes":[
		{"id":"a","lists":[{"id":"l","size":5000}]},
		{"id":"b","lists":[{"id":"l","size":{"at_least":600}}]},
		{"id":"c","lists":[{"id":"l","size":null}]}
	]}`)
	require.NoError(t, err)

	assert.Equal(t, domain.Exactly(5000), domain.Bound(doc.Nodes[0].Lists[0].Size))
	assert.Equal(t, domain.AtLeast(600), domain.Bound(doc.Nodes[1].Lists[0].Size))
	assert.False(t, domain.Bound(doc.Nodes[2].Lists[0].Size).Known())
}

func TestBound_RejectsAmbiguousObject(t *testing.T) {
	_, err := parser.ParseYAMLString("nodes:\n  - id: a\n    body_statement_count: {exact: 1, at_least: 2}\n")
	assert.Error(t, err)

	_, err = parser.ParseJSONString(`{"nodes":[{"id":"a","body_statement_count":"lots"}]}`)
	assert.Error(t, err)
}

func TestParseBytes_DetectsFormat(t *testing.T) {
	j, err := parser.ParseBytes([]byte(` {"unit":"a.jsx","nodes":[]}`), "")
	require.NoError(t, err)
	assert.Equal(t, "a.jsx", j.Unit)

	y, err := parser.ParseBytes([]byte("unit: b.vue\nnodes: []\n"), "")
	require.NoError(t, err)
	assert.Equal(t, "b.vue", y.Unit)

	_, err = parser.ParseBytes([]byte("unit: b"), "xml")
	assert.Error(t, err)
}

func TestParseYAML_File(t *testing.T) {
	doc, err := parser.ParseYAML("../testdata/dashboard.acg.yaml")
	require.NoError(t, err)
	assert.Equal(t, "src/Dashboard.jsx", doc.Unit)
	require.Len(t, doc.Nodes, 4)
	assert.Len(t, doc.PropFlows, 3)
	assert.Equal(t, domain.AtLeast(20000), domain.Bound(doc.Nodes[0].Calls[2].Iterations))
}
