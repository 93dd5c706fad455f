package domain

type NodeRole string

const (
	RoleComponent NodeRole = "component"
	RoleElement   NodeRole = "element"
)

type StateType string

const (
	StateScalar      StateType = "scalar"
	StateCollection  StateType = "collection"
	StateExternalRef StateType = "external_ref"
)

type TriggerKind string

const (
	TriggerAbsent   TriggerKind = "absent"
	TriggerConstant TriggerKind = "constant"
	TriggerKeys     TriggerKind = "keys"
)

type EffectClass string

const (
	EffectSetsDerivedState EffectClass = "sets_derived_state"
	EffectPerformsIO       EffectClass = "performs_io"
	EffectOther            EffectClass = "other"
)

type CallClass string

const (
	CallDomainRule CallClass = "domain_rule"
	CallIOBound    CallClass = "io_bound"
	CallCompute    CallClass = "compute"
)

// CallSite is where an expression runs relative to the render pass.
type CallSite string

const (
	SiteRender   CallSite = "render"
	SiteEffect   CallSite = "effect"
	SiteHandler  CallSite = "handler"
	SiteMemoized CallSite = "memoized"
)

type RuleID string

const (
	RuleLargeComponent      RuleID = "large_component"
	RuleNestedView          RuleID = "nested_view"
	RuleMutableView         RuleID = "mutable_view"
	RuleBlockingView        RuleID = "blocking_view"
	RuleBusinessLogicInView RuleID = "business_logic_in_view"
	RulePropDrilling        RuleID = "prop_drilling"
	RuleDuplicateView       RuleID = "duplicate_view"
	RuleInefficientList     RuleID = "inefficient_list"
	RuleMisusedEffects      RuleID = "misused_effects"
)

// AllRuleIDs lists every rule the detector knows, in report order.
func AllRuleIDs() []RuleID {
	return []RuleID{
		RuleBlockingView,
		RuleBusinessLogicInView,
		RuleDuplicateView,
		RuleInefficientList,
		RuleLargeComponent,
		RuleMisusedEffects,
		RuleMutableView,
		RuleNestedView,
		RulePropDrilling,
	}
}

func IsKnownRule(id RuleID) bool {
	for _, r := range AllRuleIDs() {
		if r == id {
			return true
		}
	}
	return false
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Rank orders severities; unknown values rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityInfo, SeverityWarning:
		return Severity(s), true
	default:
		return "", false
	}
}

type EvidenceKind string

const (
	EvidenceNode     EvidenceKind = "node"
	EvidencePropFlow EvidenceKind = "prop_flow"
	EvidenceEffect   EvidenceKind = "effect"
	EvidenceState    EvidenceKind = "state"
	EvidenceCall     EvidenceKind = "call"
	EvidenceList     EvidenceKind = "list"
	EvidenceWrite    EvidenceKind = "write"
)

type DiagnosticKind string

const (
	DiagRuleFailed     DiagnosticKind = "rule_failed"
	DiagMalformedGraph DiagnosticKind = "malformed_graph"
)
