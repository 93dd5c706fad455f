package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedGraph    = errors.New("malformed graph")
	ErrRuleFailed        = errors.New("rule failed")
	ErrUnresolvableBound = errors.New("unresolvable bound")
	ErrUnknownRule       = errors.New("unknown rule")
	ErrReportNotFound    = errors.New("report not found")
	ErrRunNotFound       = errors.New("analysis run not found")
)

// Reasons a graph can be rejected at construction.
const (
	ReasonDecode          = "decode"
	ReasonSchema          = "schema"
	ReasonDuplicateID     = "duplicate_id"
	ReasonDanglingChild   = "dangling_child"
	ReasonMultipleParents = "multiple_parents"
	ReasonCycle           = "cycle"
	ReasonDanglingFlow    = "dangling_prop_flow"
	ReasonUndeclaredParam = "undeclared_param"
	ReasonNegativeCount   = "negative_count"
	ReasonNoFrontend      = "no_frontend"
)

type MalformedGraphError struct {
	Unit    string
	Reason  string
	Subject string
	Detail  string
}

func (e *MalformedGraphError) Error() string {
	msg := "malformed graph"
	if e.Unit != "" {
		msg += " in " + e.Unit
	}
	msg += ": " + e.Reason
	if e.Subject != "" {
		msg += fmt.Sprintf(" (%s)", e.Subject)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *MalformedGraphError) Is(target error) bool { return target == ErrMalformedGraph }

func Malformed(unit, reason, subject, detail string) *MalformedGraphError {
	return &MalformedGraphError{Unit: unit, Reason: reason, Subject: subject, Detail: detail}
}

type RuleFailedError struct {
	RuleID RuleID
	Cause  error
}

func (e *RuleFailedError) Error() string {
	return fmt.Sprintf("rule %q failed: %v", e.RuleID, e.Cause)
}

func (e *RuleFailedError) Is(target error) bool { return target == ErrRuleFailed }

func (e *RuleFailedError) Unwrap() error { return e.Cause }
