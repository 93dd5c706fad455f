package mapper

import (
	"fmt"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest/parser"
)

// ToGraph fills document defaults and builds the immutable graph for unit.
// An empty unit falls back to the document's own unit field.
func ToGraph(d *parser.YDocument, unit string) (*graph.Graph, error) {
	if unit == "" {
		unit = d.Unit
	}

	nodes := make([]domain.ComponentNode, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		nodes = append(nodes, toNode(n, unit, d.Framework))
	}

	flows := make([]domain.PropFlow, 0, len(d.PropFlows))
	for _, f := range d.PropFlows {
		flows = append(flows, domain.PropFlow{
			ID:              f.ID,
			From:            f.From,
			To:              f.To,
			Param:           f.Param,
			Source:          f.Source,
			ConsumedByChild: f.ConsumedByChild,
		})
	}

	return graph.New(unit, nodes, flows)
}

func toNode(n parser.YNode, unit, fw string) domain.ComponentNode {
	file := n.Location.File
	if file == "" {
		file = unit
	}
	at := func(l parser.YLocation) domain.Location {
		out := domain.Location{File: l.File, StartLine: l.StartLine, EndLine: l.EndLine}
		if out.File == "" {
			out.File = file
		}
		if out.EndLine < out.StartLine {
			out.EndLine = out.StartLine
		}
		return out
	}

	name := n.Name
	if name == "" {
		name = n.ID
	}
	kind := n.Kind
	if kind == "" {
		kind = name
	}

	out := domain.ComponentNode{
		ID:                  n.ID,
		Name:                name,
		Kind:                kind,
		Role:                role(n.Role, kind, fw),
		Exported:            n.Exported,
		Location:            at(n.Location),
		Children:            n.Children,
		Params:              n.Params,
		BodyStatementCount:  domain.Bound(n.BodyStatementCount),
		BranchConstructs:    n.BranchConstructs,
		DerivedComputations: n.DerivedComputations,
		ExtraConcerns:       n.ExtraConcerns,
		LiteralSlots:        n.LiteralSlots,
	}

	for _, s := range n.State {
		t := domain.StateType(s.Type)
		if t == "" {
			t = domain.StateScalar
		}
		loc := at(s.Location)
		if s.Location.StartLine == 0 {
			loc = out.Location
		}
		out.State = append(out.State, domain.StateBinding{
			Name:            s.Name,
			Type:            t,
			ExternallyOwned: s.ExternallyOwned,
			Location:        loc,
		})
	}

	for i, e := range n.Effects {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("effect-%d", i)
		}
		class := domain.EffectClass(e.Class)
		if class == "" {
			class = domain.EffectOther
		}
		out.Effects = append(out.Effects, domain.EffectBinding{
			Name:     name,
			Location: at(e.Location),
			Trigger:  trigger(e.Trigger),
			Class:    class,
			Writes:   e.Writes,
		})
	}

	for _, c := range n.Calls {
		site := domain.CallSite(c.Site)
		if site == "" {
			site = domain.SiteRender
			if c.Effect != "" {
				site = domain.SiteEffect
			}
		}
		out.Calls = append(out.Calls, domain.ExternalCall{
			Name:           c.Name,
			Location:       at(c.Location),
			Class:          domain.CallClass(c.Class),
			Site:           site,
			Effect:         c.Effect,
			DeclaredInline: c.DeclaredInline,
			Iterations:     domain.Bound(c.Iterations),
		})
	}

	for _, w := range n.Writes {
		site := domain.CallSite(w.Site)
		if site == "" {
			site = domain.SiteHandler
		}
		out.Writes = append(out.Writes, domain.StateWrite{State: w.State, Site: site, Location: at(w.Location)})
	}

	for i, l := range n.Lists {
		id := l.ID
		if id == "" {
			id = fmt.Sprintf("list-%d", i)
		}
		out.Lists = append(out.Lists, domain.ListRenderSite{
			ID:          id,
			Location:    at(l.Location),
			Collection:  l.Collection,
			Size:        domain.Bound(l.Size),
			Virtualized: l.Virtualized,
		})
	}
	return out
}

func trigger(t parser.YTrigger) domain.TriggerKey {
	kind := domain.TriggerKind(t.Kind)
	if kind == "" {
		kind = domain.TriggerAbsent
		if len(t.Keys) > 0 {
			kind = domain.TriggerKeys
		}
	}
	return domain.TriggerKey{Kind: kind, Keys: t.Keys, Unstable: t.Unstable}
}
