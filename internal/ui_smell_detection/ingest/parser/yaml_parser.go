package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
)

// YDocument is an Abstract Component Graph serialized by a framework front end.
type YDocument struct {
	Note      string  `yaml:"__note,omitempty" json:"__note,omitempty"`
	Unit      string  `yaml:"unit,omitempty" json:"unit,omitempty"`
	Framework string  `yaml:"framework,omitempty" json:"framework,omitempty"`
	Nodes     []YNode `yaml:"nodes" json:"nodes"`
	PropFlows []YFlow `yaml:"prop_flows,omitempty" json:"prop_flows,omitempty"`
}

type YLocation struct {
	File      string `yaml:"file,omitempty" json:"file,omitempty"`
	StartLine int    `yaml:"start_line" json:"start_line"`
	EndLine   int    `yaml:"end_line,omitempty" json:"end_line,omitempty"`
}

type YNode struct {
	ID       string    `yaml:"id" json:"id"`
	Name     string    `yaml:"name,omitempty" json:"name,omitempty"`
	Kind     string    `yaml:"kind,omitempty" json:"kind,omitempty"`
	Role     string    `yaml:"role,omitempty" json:"role,omitempty"`
	Exported bool      `yaml:"exported,omitempty" json:"exported,omitempty"`
	Location YLocation `yaml:"location" json:"location"`

	Children []string  `yaml:"children,omitempty" json:"children,omitempty"`
	Params   []string  `yaml:"params,omitempty" json:"params,omitempty"`
	State    []YState  `yaml:"state,omitempty" json:"state,omitempty"`
	Effects  []YEffect `yaml:"effects,omitempty" json:"effects,omitempty"`
	Calls    []YCall   `yaml:"calls,omitempty" json:"calls,omitempty"`
	Writes   []YWrite  `yaml:"writes,omitempty" json:"writes,omitempty"`
	Lists    []YList   `yaml:"lists,omitempty" json:"lists,omitempty"`

	BodyStatementCount  YBound   `yaml:"body_statement_count,omitempty" json:"body_statement_count,omitempty"`
	BranchConstructs    int      `yaml:"branch_constructs,omitempty" json:"branch_constructs,omitempty"`
	DerivedComputations int      `yaml:"derived_computations,omitempty" json:"derived_computations,omitempty"`
	ExtraConcerns       []string `yaml:"extra_concerns,omitempty" json:"extra_concerns,omitempty"`
	LiteralSlots        int      `yaml:"literal_slots,omitempty" json:"literal_slots,omitempty"`
}

type YState struct {
	Name            string    `yaml:"name" json:"name"`
	Type            string    `yaml:"type,omitempty" json:"type,omitempty"`
	ExternallyOwned bool      `yaml:"externally_owned,omitempty" json:"externally_owned,omitempty"`
	Location        YLocation `yaml:"location,omitempty" json:"location,omitempty"`
}

type YTrigger struct {
	Kind     string   `yaml:"kind,omitempty" json:"kind,omitempty"`
	Keys     []string `yaml:"keys,omitempty" json:"keys,omitempty"`
	Unstable bool     `yaml:"unstable,omitempty" json:"unstable,omitempty"`
}

type YEffect struct {
	Name     string    `yaml:"name,omitempty" json:"name,omitempty"`
	Location YLocation `yaml:"location" json:"location"`
	Trigger  YTrigger  `yaml:"trigger,omitempty" json:"trigger,omitempty"`
	Class    string    `yaml:"class,omitempty" json:"class,omitempty"`
	Writes   []string  `yaml:"writes,omitempty" json:"writes,omitempty"`
}

type YCall struct {
	Name           string    `yaml:"name" json:"name"`
	Location       YLocation `yaml:"location" json:"location"`
	Class          string    `yaml:"class" json:"class"`
	Site           string    `yaml:"site,omitempty" json:"site,omitempty"`
	Effect         string    `yaml:"effect,omitempty" json:"effect,omitempty"`
	DeclaredInline bool      `yaml:"declared_inline,omitempty" json:"declared_inline,omitempty"`
	Iterations     YBound    `yaml:"iterations,omitempty" json:"iterations,omitempty"`
}

type YWrite struct {
	State    string    `yaml:"state" json:"state"`
	Site     string    `yaml:"site,omitempty" json:"site,omitempty"`
	Location YLocation `yaml:"location" json:"location"`
}

type YList struct {
	ID          string    `yaml:"id,omitempty" json:"id,omitempty"`
	Location    YLocation `yaml:"location" json:"location"`
	Collection  string    `yaml:"collection,omitempty" json:"collection,omitempty"`
	Size        YBound    `yaml:"size,omitempty" json:"size,omitempty"`
	Virtualized bool      `yaml:"virtualized,omitempty" json:"virtualized,omitempty"`
}

type YFlow struct {
	ID              string `yaml:"id,omitempty" json:"id,omitempty"`
	From            string `yaml:"from" json:"from"`
	To              string `yaml:"to" json:"to"`
	Param           string `yaml:"param" json:"param"`
	Source          string `yaml:"source,omitempty" json:"source,omitempty"`
	ConsumedByChild bool   `yaml:"consumed_by_child,omitempty" json:"consumed_by_child,omitempty"`
}

// YBound decodes an integer (exact), {at_least: n}, {exact: n} or null.
// A missing value stays unknown.
type YBound domain.Bound

type boundObject struct {
	AtLeast *int `yaml:"at_least" json:"at_least"`
	Exact   *int `yaml:"exact" json:"exact"`
}

func (b boundObject) bound() (YBound, error) {
	switch {
	case b.Exact != nil && b.AtLeast != nil:
		return YBound{}, fmt.Errorf("bound sets both exact and at_least")
	case b.Exact != nil:
		return YBound(domain.Exactly(*b.Exact)), nil
	case b.AtLeast != nil:
		return YBound(domain.AtLeast(*b.AtLeast)), nil
	default:
		return YBound(domain.Unknown()), nil
	}
}

func (b *YBound) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*b = YBound(domain.Unknown())
			return nil
		}
		var n int
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("line %d: bound must be an integer: %w", value.Line, err)
		}
		*b = YBound(domain.Exactly(n))
		return nil
	case yaml.MappingNode:
		var obj boundObject
		if err := value.Decode(&obj); err != nil {
			return err
		}
		v, err := obj.bound()
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*b = v
		return nil
	default:
		return fmt.Errorf("line %d: unsupported bound", value.Line)
	}
}

func ParseYAML(path string) (*YDocument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAMLBytes(b)
}

func ParseYAMLBytes(b []byte) (*YDocument, error) {
	var d YDocument
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func ParseYAMLString(s string) (*YDocument, error) {
	return ParseYAMLBytes([]byte(s))
}
