package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest/parser"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest/validator"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "empty document", doc: "nodes: []"},
		{
			name: "minimal node",
			doc:  "nodes:\n  - id: App\n    calls:\n      - {name: f, class: compute}\n",
		},
		{name: "missing id", doc: "nodes:\n  - kind: div\n", wantErr: "id is empty"},
		{name: "bad role", doc: "nodes:\n  - {id: a, role: widget}\n", wantErr: "invalid role"},
		{
			name:    "call without class",
			doc:     "nodes:\n  - id: a\n    calls: [{name: f}]\n",
			wantErr: "call class is empty",
		},
		{
			name:    "call in unknown effect",
			doc:     "nodes:\n  - id: a\n    calls: [{name: f, class: io_bound, effect: load}]\n",
			wantErr: "unknown effect",
		},
		{
			name: "call in default-named effect",
			doc:  "nodes:\n  - id: a\n    effects: [{class: performs_io}]\n    calls: [{name: f, class: io_bound, effect: effect-0}]\n",
		},
		{
			name:    "duplicate state",
			doc:     "nodes:\n  - id: a\n    state: [{name: s}, {name: s}]\n",
			wantErr: "duplicate state",
		},
		{
			name:    "bad trigger",
			doc:     "nodes:\n  - id: a\n    effects: [{name: e, trigger: {kind: sometimes}}]\n",
			wantErr: "invalid trigger kind",
		},
		{
			name:    "memoized write",
			doc:     "nodes:\n  - id: a\n    writes: [{state: s, site: memoized}]\n",
			wantErr: "invalid write site",
		},
		{
			name:    "flow without param",
			doc:     "nodes: [{id: a}, {id: b}]\nprop_flows: [{from: a, to: b}]\n",
			wantErr: "param is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parser.ParseYAMLString(tt.doc)
			if !assert.NoError(t, err) {
				return
			}
			err = validator.Validate(doc)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.Error(t, validator.Validate(nil))
}
