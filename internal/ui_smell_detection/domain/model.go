package domain

import (
	"encoding/json"
	"fmt"
)

type Attrs map[string]any

type Location struct {
	File      string `json:"file" yaml:"file"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d-%d", l.File, l.StartLine, l.EndLine)
}

type BoundKind string

const (
	BoundUnknown BoundKind = "unknown"
	BoundExact   BoundKind = "exact"
	BoundAtLeast BoundKind = "at_least"
)

// Bound is a non-negative quantity that may not be statically known.
// The zero value is unknown.
type Bound struct {
	Kind  BoundKind
	Value int
}

func Exactly(n int) Bound { return Bound{Kind: BoundExact, Value: n} }
func AtLeast(n int) Bound { return Bound{Kind: BoundAtLeast, Value: n} }
func Unknown() Bound      { return Bound{Kind: BoundUnknown} }

func (b Bound) Known() bool {
	return b.Kind == BoundExact || b.Kind == BoundAtLeast
}

// Resolve returns the exact value or the known lower bound.
func (b Bound) Resolve() (int, error) {
	if !b.Known() {
		return 0, ErrUnresolvableBound
	}
	return b.Value, nil
}

func (b Bound) String() string {
	switch b.Kind {
	case BoundExact:
		return fmt.Sprintf("%d", b.Value)
	case BoundAtLeast:
		return fmt.Sprintf(">=%d", b.Value)
	default:
		return "unknown"
	}
}

func (b Bound) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case BoundExact:
		return json.Marshal(b.Value)
	case BoundAtLeast:
		return json.Marshal(map[string]int{"at_least": b.Value})
	default:
		return []byte("null"), nil
	}
}

func (b Bound) MarshalYAML() (any, error) {
	switch b.Kind {
	case BoundExact:
		return b.Value, nil
	case BoundAtLeast:
		return map[string]int{"at_least": b.Value}, nil
	default:
		return nil, nil
	}
}

type StateBinding struct {
	Name            string    `json:"name" yaml:"name"`
	Type            StateType `json:"type" yaml:"type"`
	ExternallyOwned bool      `json:"externally_owned" yaml:"externally_owned"`
	Location        Location  `json:"location" yaml:"location"`
}

type TriggerKey struct {
	Kind TriggerKind `json:"kind" yaml:"kind"`
	Keys []string    `json:"keys,omitempty" yaml:"keys,omitempty"`
	// Unstable keys are recreated every cycle (inline objects, lambdas).
	Unstable bool `json:"unstable,omitempty" yaml:"unstable,omitempty"`
}

// RunsEveryCycle reports whether the trigger fails to gate the effect.
func (t TriggerKey) RunsEveryCycle() bool {
	switch t.Kind {
	case TriggerKeys:
		return len(t.Keys) == 0 || t.Unstable
	default:
		return true
	}
}

type EffectBinding struct {
	Name     string      `json:"name" yaml:"name"`
	Location Location    `json:"location" yaml:"location"`
	Trigger  TriggerKey  `json:"trigger" yaml:"trigger"`
	Class    EffectClass `json:"class" yaml:"class"`
	Writes   []string    `json:"writes,omitempty" yaml:"writes,omitempty"`
}

type StateWrite struct {
	State    string   `json:"state" yaml:"state"`
	Site     CallSite `json:"site" yaml:"site"`
	Location Location `json:"location" yaml:"location"`
}

type ExternalCall struct {
	Name           string    `json:"name" yaml:"name"`
	Location       Location  `json:"location" yaml:"location"`
	Class          CallClass `json:"class" yaml:"class"`
	Site           CallSite  `json:"site" yaml:"site"`
	Effect         string    `json:"effect,omitempty" yaml:"effect,omitempty"`
	DeclaredInline bool      `json:"declared_inline" yaml:"declared_inline"`
	Iterations     Bound     `json:"iterations" yaml:"iterations"`
}

type ListRenderSite struct {
	ID          string   `json:"id" yaml:"id"`
	Location    Location `json:"location" yaml:"location"`
	Collection  string   `json:"collection,omitempty" yaml:"collection,omitempty"`
	Size        Bound    `json:"size" yaml:"size"`
	Virtualized bool     `json:"virtualized" yaml:"virtualized"`
}

type ComponentNode struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Kind     string   `json:"kind" yaml:"kind"`
	Role     NodeRole `json:"role" yaml:"role"`
	Exported bool     `json:"exported,omitempty" yaml:"exported,omitempty"`
	Location Location `json:"location" yaml:"location"`

	Children []string         `json:"children,omitempty" yaml:"children,omitempty"`
	Params   []string         `json:"params,omitempty" yaml:"params,omitempty"`
	State    []StateBinding   `json:"state,omitempty" yaml:"state,omitempty"`
	Effects  []EffectBinding  `json:"effects,omitempty" yaml:"effects,omitempty"`
	Calls    []ExternalCall   `json:"calls,omitempty" yaml:"calls,omitempty"`
	Writes   []StateWrite     `json:"writes,omitempty" yaml:"writes,omitempty"`
	Lists    []ListRenderSite `json:"lists,omitempty" yaml:"lists,omitempty"`

	BodyStatementCount  Bound    `json:"body_statement_count" yaml:"body_statement_count"`
	BranchConstructs    int      `json:"branch_constructs,omitempty" yaml:"branch_constructs,omitempty"`
	DerivedComputations int      `json:"derived_computations,omitempty" yaml:"derived_computations,omitempty"`
	ExtraConcerns       []string `json:"extra_concerns,omitempty" yaml:"extra_concerns,omitempty"`
	LiteralSlots        int      `json:"literal_slots,omitempty" yaml:"literal_slots,omitempty"`
}

// HasParam reports whether name is a declared parameter of the node.
func (n *ComponentNode) HasParam(name string) bool {
	for _, p := range n.Params {
		if p == name {
			return true
		}
	}
	return false
}

func (n *ComponentNode) StateByName(name string) (StateBinding, bool) {
	for _, s := range n.State {
		if s.Name == name {
			return s, true
		}
	}
	return StateBinding{}, false
}

// PropFlow passes a value from From to To's parameter Param. Source names
// the sender's parameter being forwarded when it was renamed; empty means
// the value originates in From unless From itself declares Param.
type PropFlow struct {
	ID              string `json:"id" yaml:"id"`
	From            string `json:"from" yaml:"from"`
	To              string `json:"to" yaml:"to"`
	Param           string `json:"param" yaml:"param"`
	Source          string `json:"source,omitempty" yaml:"source,omitempty"`
	ConsumedByChild bool   `json:"consumed_by_child" yaml:"consumed_by_child"`
}

func PropFlowID(from, to, param string) string {
	return fmt.Sprintf("flow:%s->%s:%s", from, to, param)
}

// Entity references below identify sub-node evidence by owner and name.

func EffectRef(node, name string) string { return node + "/effect/" + name }
func StateRef(node, name string) string  { return node + "/state/" + name }
func CallRef(node string, i int) string  { return fmt.Sprintf("%s/call/%d", node, i) }
func ListRef(node, id string) string     { return node + "/list/" + id }
func WriteRef(node string, i int) string { return fmt.Sprintf("%s/write/%d", node, i) }
