package scenewire

import (
	"github.com/scenewire/scenewire/internal/introspect"
)

// Declaration surface. Behaviors opt into injection by implementing
// Injectable and listing their injection points; they become globally
// discoverable by implementing the Service marker.

type (
	// Point declares one injection point: an exported field or a
	// single-argument setter method, plus the scope the declaration intends.
	Point = introspect.Point

	// Scope specifies where a member's value may come from.
	Scope = introspect.Scope

	// Category distinguishes field-backed from setter-backed members, for
	// diagnostics only.
	Category = introspect.Category

	// Injectable is implemented by behaviors that participate in injection
	// scanning. The returned slice is the behavior's descriptor table and
	// must be the same for every instance of the type.
	Injectable = introspect.Injectable
)

const (
	// ScopeHierarchy resolves from ancestor components, falling back to a
	// uniquely matching service. The zero value.
	ScopeHierarchy = introspect.ScopeHierarchy

	// ScopeGlobal accepts any uniquely matching global service. Ancestors
	// still win when present.
	ScopeGlobal = introspect.ScopeGlobal

	// CategoryField marks a member backed by an exported struct field.
	CategoryField = introspect.CategoryField

	// CategorySetter marks a member backed by a setter method.
	CategorySetter = introspect.CategorySetter
)

// Service marks a behavior as globally discoverable. Services are matched by
// their runtime type alone; there are no names or keys. GlobalService is
// never called, it only tags the type.
type Service interface {
	GlobalService()
}
