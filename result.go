package scenewire

import (
	"fmt"
	"reflect"
)

// Status classifies the outcome of resolving one member.
type Status int

const (
	// StatusInjected means a value was found and assigned.
	StatusInjected Status = iota

	// StatusUnresolved means neither hierarchy nor service resolution found
	// a value; the member keeps its previous value.
	StatusUnresolved

	// StatusAmbiguous means two or more services satisfied the member; the
	// member keeps its previous value.
	StatusAmbiguous

	// StatusConfigError means the injection point itself is misconfigured
	// and the member could not be introspected.
	StatusConfigError

	// StatusAssignError means a match was found but assigning it failed.
	StatusAssignError
)

// String returns the string representation of the Status.
func (s Status) String() string {
	switch s {
	case StatusInjected:
		return "Injected"
	case StatusUnresolved:
		return "Unresolved"
	case StatusAmbiguous:
		return "Ambiguous"
	case StatusConfigError:
		return "ConfigError"
	case StatusAssignError:
		return "AssignError"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome records what happened to a single injection point during one
// resolution pass.
type Outcome struct {
	// Where the member lives.
	Node         NodeID
	NodeName     string
	BehaviorType reflect.Type
	Member       string
	DeclaredType reflect.Type
	Category     Category
	Scope        Scope

	Status Status

	// Populated for StatusInjected. SourceNode is NoNode when the value came
	// from a service source rather than the scene.
	SourceNode NodeID
	SourceType reflect.Type

	// Populated for StatusAmbiguous.
	Candidates []reflect.Type

	// Populated for every non-injected status.
	Err error
}

// Result is the structured report of one resolution pass. Outcomes appear in
// scan order: pre-order over the requested roots, behaviors in attachment
// order, members in descriptor-table order.
type Result struct {
	// PassID correlates the diagnostics of a single pass.
	PassID string

	Outcomes []Outcome
}

// OK reports whether every member resolved.
func (r Result) OK() bool {
	for i := range r.Outcomes {
		if r.Outcomes[i].Status != StatusInjected {
			return false
		}
	}
	return true
}

// Failed returns the outcomes that did not inject a value.
func (r Result) Failed() []Outcome {
	var failed []Outcome
	for i := range r.Outcomes {
		if r.Outcomes[i].Status != StatusInjected {
			failed = append(failed, r.Outcomes[i])
		}
	}
	return failed
}
