package ingest

import (
	"context"
	"path"
	"strings"
	"sync"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest/mapper"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest/parser"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest/validator"
)

// SourceUnit is one analysable input: a file, an uploaded document or a
// request body.
type SourceUnit struct {
	Name    string
	Path    string
	Format  string // "yaml", "json" or empty to detect
	Content []byte
}

func (u SourceUnit) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Path != "" {
		return u.Path
	}
	return "<inline>"
}

// Frontend turns one source unit into a validated graph.
type Frontend interface {
	Name() string
	Accepts(u SourceUnit) bool
	BuildGraph(ctx context.Context, u SourceUnit) (*graph.Graph, error)
}

var (
	mu        sync.RWMutex
	frontends []Frontend
)

func Register(f Frontend) {
	mu.Lock()
	defer mu.Unlock()
	frontends = append(frontends, f)
}

func Frontends() []Frontend {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Frontend, len(frontends))
	copy(out, frontends)
	return out
}

// BuildGraph hands u to the first front end that accepts it. Every failure
// is a *domain.MalformedGraphError.
func BuildGraph(ctx context.Context, u SourceUnit) (*graph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, f := range Frontends() {
		if f.Accepts(u) {
			return f.BuildGraph(ctx, u)
		}
	}
	return nil, domain.Malformed(u.DisplayName(), domain.ReasonNoFrontend, u.Path, "no front end accepts this input")
}

// DocumentExtensions are the file suffixes of serialized component graphs.
var DocumentExtensions = []string{".acg.yaml", ".acg.yml", ".acg.json"}

// IsDocument reports whether name looks like a serialized component graph.
func IsDocument(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range DocumentExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// documentFrontend reads ACG documents that another tool already extracted
// from framework source.
type documentFrontend struct{}

func (documentFrontend) Name() string { return "acg-document" }

func (documentFrontend) Accepts(u SourceUnit) bool {
	if u.Format != "" || u.Path == "" {
		return true
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func (documentFrontend) BuildGraph(ctx context.Context, u SourceUnit) (*graph.Graph, error) {
	unit := u.DisplayName()
	format := u.Format
	if format == "" {
		switch strings.ToLower(path.Ext(u.Path)) {
		case ".json":
			format = "json"
		case ".yaml", ".yml":
			format = "yaml"
		}
	}

	doc, err := parser.ParseBytes(u.Content, format)
	if err != nil {
		return nil, domain.Malformed(unit, domain.ReasonDecode, "", err.Error())
	}
	if err := validator.Validate(doc); err != nil {
		return nil, domain.Malformed(unit, domain.ReasonSchema, "", err.Error())
	}
	if u.Name == "" && u.Path == "" && doc.Unit != "" {
		unit = doc.Unit
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g, err := mapper.ToGraph(doc, unit)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// FromBytes is a shortcut for analysing a document held in memory.
func FromBytes(ctx context.Context, name, format string, b []byte) (*graph.Graph, error) {
	return BuildGraph(ctx, SourceUnit{Name: name, Format: format, Content: b})
}

func init() { Register(documentFrontend{}) }
