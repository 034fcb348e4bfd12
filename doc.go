// Package scenewire resolves declared dependencies between behaviors
// attached to a scene-graph hierarchy. It is deliberately not a
// general-purpose IoC container: there is no constructor injection, no
// lifecycle management, no cycle detection and only two scopes, hierarchy
// and global.
//
// # Overview
//
// A Hierarchy is an arena-backed tree of nodes, each carrying attached
// behaviors. A behavior participates in injection by implementing
// Injectable, returning a descriptor table of its injection points:
//
//	type Turret struct {
//		Weapon Weapon
//		clock  Clock
//	}
//
//	func (t *Turret) InjectionPoints() []scenewire.Point {
//		return []scenewire.Point{
//			{Member: "Weapon"},                                    // nearest ancestor
//			{Member: "SetClock", Scope: scenewire.ScopeGlobal},    // unique service
//		}
//	}
//
//	func (t *Turret) SetClock(c Clock) { t.clock = c }
//
// A behavior becomes globally discoverable by carrying the Service marker:
//
//	func (c *GameClock) GlobalService() {}
//
// # Resolution
//
// Resolve runs a single synchronous pass over the tree. Each member is
// resolved in two phases: walk the owning node's ancestors from nearest to
// farthest and take the first behavior assignable to the member's type, or
// failing that, take the one and only service assignable to it. Two or more
// matching services is an ambiguity and the member stays unset, as does a
// member with no match at all. No failure aborts the pass; every outcome is
// returned in a structured Result:
//
//	res := scenewire.Resolve(h)
//	for _, o := range res.Failed() {
//		log.Println(o.Err)
//	}
//
// Report and the WithLogger option translate a Result into leveled slog
// lines for hosts that prefer log diagnostics.
//
// # Contracts
//
// A pass is stateless across members: a member injected early in the pass
// may point at a behavior whose own members resolve later, so consumers must
// not read injected dependencies until the pass returns. Passes over
// overlapping subtrees must be serialized by the caller; the resolver takes
// no locks.
package scenewire
