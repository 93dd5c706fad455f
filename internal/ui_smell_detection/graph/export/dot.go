package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

// ToDOT renders the component tree with prop flows as dashed edges.
// Nodes named by a finding's evidence are filled by severity and get
// the rule IDs in their tooltip.
func ToDOT(g *graph.Graph, title string, findings []domain.Finding) string {
	flagged := flaggedNodes(findings)

	var b strings.Builder
	b.WriteString("digraph G {\n  rankdir=TB;\n  node [shape=box, style=rounded, fontname=\"Helvetica\"];\n")
	if title != "" {
		b.WriteString(fmt.Sprintf(`  labelloc="t"; label=%q; fontname="Helvetica";`, title))
		b.WriteString("\n")
	}

	for _, n := range g.Nodes() {
		label := n.Name
		if label == "" {
			label = n.ID
		}
		style := `shape=box,style="rounded,filled",fillcolor="#eef6ff"`
		if n.Role == domain.RoleElement {
			label = "<" + n.Kind + ">"
			style = `shape=plaintext`
		}
		tooltip := n.Location.String()
		if f, ok := flagged[n.ID]; ok {
			color := "#fff3cd"
			if f.severity == domain.SeverityWarning {
				color = "#f8d7da"
			}
			style = fmt.Sprintf(`shape=box,style="rounded,filled",fillcolor=%q,penwidth=2`, color)
			tooltip += " " + strings.Join(f.rules, ",")
		}
		b.WriteString(fmt.Sprintf("  %q [label=%q, tooltip=%q, %s];\n", n.ID, label, tooltip, style))
	}

	for _, n := range g.Nodes() {
		for _, c := range n.Children {
			b.WriteString(fmt.Sprintf("  %q -> %q;\n", n.ID, c))
		}
	}

	for _, f := range g.PropFlows() {
		color := "#6c757d"
		if f.ConsumedByChild {
			color = "#0d6efd"
		}
		b.WriteString(fmt.Sprintf("  %q -> %q [style=dashed, color=%q, label=%q, tooltip=%q];\n",
			f.From, f.To, color, f.Param, f.ID))
	}

	b.WriteString("}\n")
	return b.String()
}

type flag struct {
	severity domain.Severity
	rules    []string
}

func flaggedNodes(findings []domain.Finding) map[string]flag {
	out := map[string]flag{}
	for _, f := range findings {
		seen := map[string]bool{}
		for _, ev := range f.Evidence {
			if ev.Node == "" || seen[ev.Node] {
				continue
			}
			seen[ev.Node] = true
			cur := out[ev.Node]
			if f.Severity.Rank() > cur.severity.Rank() {
				cur.severity = f.Severity
			}
			if !contains(cur.rules, string(f.RuleID)) {
				cur.rules = append(cur.rules, string(f.RuleID))
				sort.Strings(cur.rules)
			}
			out[ev.Node] = cur
		}
	}
	return out
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
