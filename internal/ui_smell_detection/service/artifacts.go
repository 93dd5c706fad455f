package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph/export"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/utils"
)

type Artifacts struct {
	DOTPath  string `json:"dot_path" yaml:"dot_path"`
	JSONPath string `json:"json_path" yaml:"json_path"`
	YAMLPath string `json:"yaml_path" yaml:"yaml_path"`
	SVGPath  string `json:"svg_path,omitempty" yaml:"svg_path,omitempty"`
}

type ArtifactOptions struct {
	Title string
	// SVG renders graph.svg with Graphviz; DotBin defaults to "dot".
	SVG    bool
	DotBin string
}

// WriteArtifacts writes graph.dot, report.json and report.yaml for one unit
// into outDir.
func WriteArtifacts(ctx context.Context, outDir string, g *graph.Graph, r *domain.Report, opts ArtifactOptions) (*Artifacts, error) {
	if outDir == "" {
		outDir = "out"
	}
	title := opts.Title
	if title == "" {
		title = g.Unit()
	}

	a := &Artifacts{
		DOTPath:  filepath.Join(outDir, "graph.dot"),
		JSONPath: filepath.Join(outDir, "report.json"),
		YAMLPath: filepath.Join(outDir, "report.yaml"),
	}
	if err := export.WriteDOT(a.DOTPath, export.ToDOT(g, title, r.Findings)); err != nil {
		return nil, err
	}
	if err := export.WriteJSON(a.JSONPath, r); err != nil {
		return nil, err
	}
	if err := export.WriteYAML(a.YAMLPath, r); err != nil {
		return nil, err
	}

	if opts.SVG {
		svg := filepath.Join(outDir, "graph.svg")
		if err := utils.DotTo(ctx, a.DOTPath, svg, "svg", opts.DotBin); err != nil {
			return nil, fmt.Errorf("graphviz render: %w", err)
		}
		a.SVGPath = svg
	}
	return a, nil
}
