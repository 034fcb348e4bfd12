package scenewire

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/scenewire/scenewire/internal/introspect"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These surface misuse of the hierarchy API. Resolution itself never returns
// an error to the caller: every per-member failure becomes an Outcome.

var (
	// ErrInvalidNode indicates a NodeID that does not address a node in the
	// hierarchy.
	ErrInvalidNode = errors.New("invalid node")

	// ErrNilBehavior indicates an attempt to attach a nil behavior.
	ErrNilBehavior = errors.New("behavior cannot be nil")

	// ErrNilContainer indicates a nil dig container passed to FromContainer.
	ErrNilContainer = errors.New("container cannot be nil")
)

var (
	_ error = UnresolvedError{}
	_ error = AmbiguousServiceError{}
	_ error = MemberConfigError{}
	_ error = AssignmentError{}
)

// Typed errors raised by member introspection. They populate Outcome.Err for
// StatusConfigError and StatusAssignError outcomes.
type (
	// MemberConfigError reports a descriptor table entry the injection
	// mechanism cannot reach (missing member, unexported field, malformed
	// setter).
	MemberConfigError = introspect.ConfigError

	// AssignmentError reports a matched value that could not be assigned to
	// its member.
	AssignmentError = introspect.AssignmentError
)

// UnresolvedError reports a member for which neither hierarchy nor service
// resolution produced a value. The member keeps its previous value.
type UnresolvedError struct {
	BehaviorType reflect.Type
	Member       string
	DeclaredType reflect.Type
	Node         NodeID
	NodeName     string
}

func (e UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved dependency: %s.%s (%s) on node %q has no hierarchy or service match",
		formatType(e.BehaviorType), e.Member, formatType(e.DeclaredType), e.NodeName)
}

// AmbiguousServiceError reports a member whose declared type is satisfied by
// two or more global services. The member keeps its previous value; every
// candidate is enumerated so the conflict can be traced.
type AmbiguousServiceError struct {
	BehaviorType reflect.Type
	Member       string
	DeclaredType reflect.Type
	Candidates   []reflect.Type
}

func (e AmbiguousServiceError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("ambiguous service: %d candidates satisfy %s.%s (%s):\n",
		len(e.Candidates), formatType(e.BehaviorType), e.Member, formatType(e.DeclaredType)))
	for _, c := range e.Candidates {
		b.WriteString(fmt.Sprintf("  • %s\n", formatType(c)))
	}
	b.WriteString("Remove the duplicate service or resolve the member from the hierarchy instead.")
	return b.String()
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Interface, reflect.Struct:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
