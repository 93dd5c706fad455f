package detection

import (
	"sort"
	"sync"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
)

var (
	mu         sync.RWMutex
	registered = map[domain.RuleID]Detector{}
)

func Register(d Detector) {
	if d == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registered[d.Name()] = d
}

func Lookup(id domain.RuleID) (Detector, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := registered[id]
	return d, ok
}

func All() []Detector {
	mu.RLock()
	out := make([]Detector, 0, len(registered))
	for _, d := range registered {
		out = append(out, d)
	}
	mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Select returns the registered detectors enabled by cfg, sorted by name.
func Select(cfg Config) []Detector {
	var out []Detector
	for _, d := range All() {
		if cfg.Enabled(d.Name()) {
			out = append(out, d)
		}
	}
	return out
}
