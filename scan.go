package scenewire

// behaviorRef pins a behavior to the node it is attached to.
type behaviorRef struct {
	node     NodeID
	behavior any
}

// scan walks roots and their descendants pre-order and classifies every
// attached behavior. A behavior with a non-empty descriptor table lands in
// injectables; a behavior with the Service marker lands in services; one
// behavior can land in both. Order is deterministic: node visit order, then
// attachment order within a node.
//
// Scanning is proportional to the full subtree size. Callers run it once per
// resolution pass and reuse the slices; nothing is cached across passes.
func scan(h *Hierarchy, roots []NodeID) (injectables, services []behaviorRef) {
	h.walk(roots, func(id NodeID) {
		for _, b := range h.nodes[id].behaviors {
			ref := behaviorRef{node: id, behavior: b}
			if inj, ok := b.(Injectable); ok && len(inj.InjectionPoints()) > 0 {
				injectables = append(injectables, ref)
			}
			if _, ok := b.(Service); ok {
				services = append(services, ref)
			}
		}
	})
	return injectables, services
}
