package scenewire

import (
	"reflect"

	"github.com/google/uuid"

	"github.com/scenewire/scenewire/internal/introspect"
)

// Resolve scans the whole hierarchy and assigns a value to every injectable
// member it finds. The pass is synchronous, run-to-completion and never
// fails as a whole: every per-member failure is recorded as an Outcome and
// the pass moves on. Callers must not read injected dependencies until the
// pass returns, and must not run overlapping passes concurrently.
func Resolve(h *Hierarchy, opts ...ResolveOption) Result {
	if h == nil {
		return Result{PassID: uuid.NewString()}
	}
	return ResolveSubtree(h, h.Roots(), opts...)
}

// ResolveSubtree resolves only the behaviors inside the subtrees rooted at
// roots. Behaviors outside those subtrees are neither scanned nor mutated,
// and services outside them are not considered for service resolution.
// Hierarchy resolution is not clipped, however: ancestor search for a member
// inside a subtree may still climb above the subtree's root.
func ResolveSubtree(h *Hierarchy, roots []NodeID, opts ...ResolveOption) Result {
	res := Result{PassID: uuid.NewString()}
	if h == nil {
		return res
	}

	var options resolveOptions
	for _, opt := range opts {
		opt.apply(&options)
	}

	injectables, services := scan(h, roots)

	candidates := make([]serviceCandidate, 0, len(services))
	for _, ref := range services {
		candidates = append(candidates, serviceCandidate{node: ref.node, value: ref.behavior})
	}
	for _, source := range options.sources {
		for _, value := range source.Services() {
			if value == nil {
				continue
			}
			candidates = append(candidates, serviceCandidate{node: NoNode, value: value})
		}
	}

	emit := func(o Outcome) {
		res.Outcomes = append(res.Outcomes, o)
		if options.observer != nil {
			options.observer(o)
		}
		if options.logger != nil {
			logOutcome(options.logger, res.PassID, o)
		}
	}

	for _, ref := range injectables {
		members, errs := introspect.Members(ref.behavior.(Injectable))

		behaviorType := reflect.TypeOf(ref.behavior)
		for _, err := range errs {
			o := Outcome{
				Node:         ref.node,
				NodeName:     h.Name(ref.node),
				BehaviorType: behaviorType,
				Status:       StatusConfigError,
				SourceNode:   NoNode,
				Err:          err,
			}
			if cfg, ok := err.(MemberConfigError); ok {
				o.Member = cfg.Point.Member
				o.Scope = cfg.Point.Scope
			}
			emit(o)
		}

		for _, m := range members {
			emit(resolveMember(h, ref, m, candidates))
		}
	}

	return res
}

// serviceCandidate is one globally discoverable value: either a
// Service-marked behavior in the scanned scope or a value contributed by a
// ServiceSource (node == NoNode).
type serviceCandidate struct {
	node  NodeID
	value any
}

// resolveMember applies the two-phase policy to a single member: nearest
// matching ancestor first, uniquely matching service second. A hierarchy
// match always beats a service match regardless of the member's scope.
func resolveMember(h *Hierarchy, ref behaviorRef, m introspect.Member, candidates []serviceCandidate) Outcome {
	o := Outcome{
		Node:         ref.node,
		NodeName:     h.Name(ref.node),
		BehaviorType: reflect.TypeOf(ref.behavior),
		Member:       m.Name,
		DeclaredType: m.DeclaredType,
		Category:     m.Category,
		Scope:        m.Scope,
		SourceNode:   NoNode,
	}

	// Phase one: walk ancestors nearest to farthest; within one node,
	// attachment order decides. First match wins outright.
	for anc := h.Parent(ref.node); anc != NoNode; anc = h.Parent(anc) {
		for _, b := range h.nodes[anc].behaviors {
			if !assignable(b, m.DeclaredType) {
				continue
			}
			if err := m.Set(ref.behavior, b); err != nil {
				o.Status = StatusAssignError
				o.Err = err
				return o
			}
			o.Status = StatusInjected
			o.SourceNode = anc
			o.SourceType = reflect.TypeOf(b)
			return o
		}
	}

	// Phase two: the member resolves only if exactly one service satisfies
	// its declared type.
	var matches []serviceCandidate
	for _, c := range candidates {
		if assignable(c.value, m.DeclaredType) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 1:
		if err := m.Set(ref.behavior, matches[0].value); err != nil {
			o.Status = StatusAssignError
			o.Err = err
			return o
		}
		o.Status = StatusInjected
		o.SourceNode = matches[0].node
		o.SourceType = reflect.TypeOf(matches[0].value)
		return o

	case 0:
		o.Status = StatusUnresolved
		o.Err = UnresolvedError{
			BehaviorType: o.BehaviorType,
			Member:       m.Name,
			DeclaredType: m.DeclaredType,
			Node:         ref.node,
			NodeName:     o.NodeName,
		}
		return o

	default:
		types := make([]reflect.Type, len(matches))
		for i, c := range matches {
			types[i] = reflect.TypeOf(c.value)
		}
		o.Status = StatusAmbiguous
		o.Candidates = types
		o.Err = AmbiguousServiceError{
			BehaviorType: o.BehaviorType,
			Member:       m.Name,
			DeclaredType: m.DeclaredType,
			Candidates:   types,
		}
		return o
	}
}

func assignable(value any, declared reflect.Type) bool {
	t := reflect.TypeOf(value)
	return t != nil && t.AssignableTo(declared)
}
