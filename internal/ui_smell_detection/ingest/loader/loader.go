package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// Loader discovers and downloads ACG documents from any afs location
// (local paths, file://, mem://, s3://, gs://).
type Loader struct {
	fs afs.Service
}

func New() *Loader {
	return &Loader{fs: afs.New()}
}

func NewWithService(fs afs.Service) *Loader {
	return &Loader{fs: fs}
}

type entry struct {
	name string
	url  string
}

// Discover lists document locations under roots, sorted by name.
// A root that is a file is returned as is.
func (l *Loader) Discover(ctx context.Context, roots ...string) ([]string, error) {
	entries, err := l.discover(ctx, roots)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out, nil
}

func (l *Loader) discover(ctx context.Context, roots []string) ([]entry, error) {
	var entries []entry
	seen := map[string]bool{}
	add := func(e entry) {
		if !seen[e.url] {
			seen[e.url] = true
			entries = append(entries, e)
		}
	}

	for _, root := range roots {
		obj, err := l.fs.Object(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", root, err)
		}
		if !obj.IsDir() {
			add(entry{name: root, url: obj.URL()})
			continue
		}

		err = l.fs.Walk(ctx, root, func(ctx context.Context, baseURL, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
			name := info.Name()
			if info.IsDir() {
				if skipDirs[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..") {
					return false, nil
				}
				return true, nil
			}
			if ingest.IsDocument(name) {
				add(entry{
					name: path.Join(root, parent, name),
					url:  url.Join(baseURL, parent, name),
				})
			}
			return true, nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	return entries, nil
}

// Load discovers documents under roots and reads each into a source unit.
func (l *Loader) Load(ctx context.Context, roots ...string) ([]ingest.SourceUnit, error) {
	entries, err := l.discover(ctx, roots)
	if err != nil {
		return nil, err
	}

	units := make([]ingest.SourceUnit, 0, len(entries))
	for _, e := range entries {
		content, err := l.fs.DownloadWithURL(ctx, e.url)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", e.name, err)
		}
		units = append(units, ingest.SourceUnit{Name: e.name, Path: e.name, Content: content})
	}
	return units, nil
}
