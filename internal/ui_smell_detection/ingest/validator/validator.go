package validator

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest/parser"
)

var (
	roles        = set("component", "element")
	stateTypes   = set("scalar", "collection", "external_ref")
	triggerKinds = set("absent", "constant", "keys")
	effectClass  = set("sets_derived_state", "performs_io", "other")
	callClass    = set("domain_rule", "io_bound", "compute")
	callSites    = set("render", "effect", "handler", "memoized")
	writeSites   = set("render", "handler")
)

func set(vs ...string) map[string]bool {
	m := make(map[string]bool, len(vs))
	for _, v := range vs {
		m[v] = true
	}
	return m
}

// Validate checks the document shape: required fields, enum values and
// references that stay inside a single node. Structural checks across
// nodes happen when the graph is built.
func Validate(d *parser.YDocument) error {
	if d == nil {
		return fmt.Errorf("document is nil")
	}

	for i, n := range d.Nodes {
		id := strings.TrimSpace(n.ID)
		if id == "" {
			return fmt.Errorf("node #%d: id is empty", i)
		}
		if err := validateNode(n); err != nil {
			return fmt.Errorf("node %q: %w", id, err)
		}
	}

	for i, f := range d.PropFlows {
		if strings.TrimSpace(f.From) == "" || strings.TrimSpace(f.To) == "" {
			return fmt.Errorf("prop flow #%d: empty from/to", i)
		}
		if strings.TrimSpace(f.Param) == "" {
			return fmt.Errorf("prop flow #%d: param is empty", i)
		}
	}
	return nil
}

func validateNode(n parser.YNode) error {
	if err := oneOf("role", n.Role, roles, true); err != nil {
		return err
	}

	states := map[string]bool{}
	for _, s := range n.State {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("state name is empty")
		}
		if states[s.Name] {
			return fmt.Errorf("duplicate state %q", s.Name)
		}
		states[s.Name] = true
		if err := oneOf("state type", s.Type, stateTypes, true); err != nil {
			return err
		}
	}

	effects := map[string]bool{}
	for i, e := range n.Effects {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("effect-%d", i)
		}
		if effects[name] {
			return fmt.Errorf("duplicate effect %q", name)
		}
		effects[name] = true
		if err := oneOf("trigger kind", e.Trigger.Kind, triggerKinds, true); err != nil {
			return err
		}
		if err := oneOf("effect class", e.Class, effectClass, true); err != nil {
			return err
		}
	}

	for _, c := range n.Calls {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("call name is empty")
		}
		if err := oneOf("call class", c.Class, callClass, false); err != nil {
			return fmt.Errorf("call %q: %w", c.Name, err)
		}
		if err := oneOf("call site", c.Site, callSites, true); err != nil {
			return fmt.Errorf("call %q: %w", c.Name, err)
		}
		if c.Effect != "" && !effects[c.Effect] {
			return fmt.Errorf("call %q: unknown effect %q", c.Name, c.Effect)
		}
	}

	for _, w := range n.Writes {
		if strings.TrimSpace(w.State) == "" {
			return fmt.Errorf("write target is empty")
		}
		if err := oneOf("write site", w.Site, writeSites, true); err != nil {
			return err
		}
	}

	lists := map[string]bool{}
	for _, l := range n.Lists {
		if l.ID == "" {
			continue
		}
		if lists[l.ID] {
			return fmt.Errorf("duplicate list %q", l.ID)
		}
		lists[l.ID] = true
	}
	return nil
}

func oneOf(field, v string, allowed map[string]bool, optional bool) error {
	if v == "" {
		if optional {
			return nil
		}
		return fmt.Errorf("%s is empty", field)
	}
	if !allowed[v] {
		return fmt.Errorf("invalid %s %q", field, v)
	}
	return nil
}
