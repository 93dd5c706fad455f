package scoring

import (
	"sort"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
)

// Prioritize returns a copy of fs ordered by score, highest first. Ties keep
// report order.
func Prioritize(fs []domain.Finding) []domain.Finding {
	out := make([]domain.Finding, len(fs))
	copy(out, fs)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := ScoreFinding(out[i]), ScoreFinding(out[j])
		if si != sj {
			return si > sj
		}
		return out[i].Severity.Rank() > out[j].Severity.Rank()
	})
	return out
}

// Top returns at most n prioritized findings across reports; n <= 0 means all.
func Top(reports []domain.Report, n int) []domain.Finding {
	var all []domain.Finding
	for _, r := range reports {
		all = append(all, r.Findings...)
	}
	all = Prioritize(all)
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}
