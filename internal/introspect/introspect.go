// Package introspect turns a behavior's declared injection points into a
// uniform member view the resolver can operate on. Analysis is performed once
// per concrete type and cached.
package introspect

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Scope specifies where the resolver is allowed to look for a member's value.
type Scope int

const (
	// ScopeHierarchy restricts a member to ancestor components. It is the
	// zero value and the default for points that do not set a scope.
	// Hierarchy members still fall back to the global service lookup when no
	// ancestor matches; the scope records declaration intent and is carried
	// into diagnostics.
	ScopeHierarchy Scope = iota

	// ScopeGlobal declares that any globally discoverable service is an
	// acceptable value for the member.
	ScopeGlobal
)

// String returns the string representation of the Scope.
func (s Scope) String() string {
	switch s {
	case ScopeHierarchy:
		return "Hierarchy"
	case ScopeGlobal:
		return "Global"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IsValid checks if the scope is a known value.
func (s Scope) IsValid() bool {
	return s >= ScopeHierarchy && s <= ScopeGlobal
}

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scope) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Hierarchy", "hierarchy":
		*s = ScopeHierarchy
	case "Global", "global":
		*s = ScopeGlobal
	default:
		return fmt.Errorf("invalid scope: %q", string(text))
	}
	return nil
}

// Category distinguishes the two member shapes a point can name. It exists
// for diagnostics only and never affects resolution policy.
type Category int

const (
	// CategoryField marks a member backed by an exported struct field.
	CategoryField Category = iota

	// CategorySetter marks a member backed by a single-argument setter
	// method.
	CategorySetter
)

func (c Category) String() string {
	switch c {
	case CategoryField:
		return "field"
	case CategorySetter:
		return "setter"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Point declares a single injection point in a behavior's descriptor table.
// Member names either an exported struct field or a setter method taking
// exactly one argument (and returning nothing, or a single error). The
// member's static type is the capability the resolver must satisfy.
type Point struct {
	Member string
	Scope  Scope
}

// Injectable is implemented by behaviors that participate in injection.
// InjectionPoints is the behavior's hand-written descriptor table; a behavior
// with an empty table is not considered injectable.
type Injectable interface {
	InjectionPoints() []Point
}

// Member is the uniform view over one injection point of a concrete type.
type Member struct {
	Name         string
	DeclaredType reflect.Type
	Scope        Scope
	Category     Category

	// Exactly one of these backs Set.
	fieldIndex  []int
	methodIndex int
}

// ConfigError reports a descriptor table entry that the injection mechanism
// cannot reach: a missing member, an unexported field, or a setter with the
// wrong shape. Scanning continues past these.
type ConfigError struct {
	BehaviorType reflect.Type
	Point        Point
	Reason       string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("injection point %q on %s is misconfigured: %s",
		e.Point.Member, typeName(e.BehaviorType), e.Reason)
}

// AssignmentError reports a value that could not be assigned to a member at
// injection time. This is the defensive failure mode: the assignability
// pre-check passed but the assignment itself did not.
type AssignmentError struct {
	OwnerType    reflect.Type
	Member       string
	DeclaredType reflect.Type
	ValueType    reflect.Type
	Cause        error
}

func (e AssignmentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot assign %s to %s.%s (%s): %v",
			typeName(e.ValueType), typeName(e.OwnerType), e.Member, typeName(e.DeclaredType), e.Cause)
	}
	return fmt.Sprintf("cannot assign %s to %s.%s (%s)",
		typeName(e.ValueType), typeName(e.OwnerType), e.Member, typeName(e.DeclaredType))
}

func (e AssignmentError) Unwrap() error {
	return e.Cause
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// analysis is the cached result for one concrete type.
type analysis struct {
	members []Member
	errs    []error
}

var (
	cacheMu sync.RWMutex
	cache   = map[reflect.Type]*analysis{}
)

// Members analyzes a behavior's descriptor table and returns its members
// alongside any configuration errors. Results are cached per concrete type;
// a behavior whose table is empty yields no members and no errors.
func Members(behavior Injectable) ([]Member, []error) {
	typ := reflect.TypeOf(behavior)
	if typ == nil {
		return nil, nil
	}

	cacheMu.RLock()
	if a, ok := cache[typ]; ok {
		cacheMu.RUnlock()
		return a.members, a.errs
	}
	cacheMu.RUnlock()

	a := analyze(typ, behavior.InjectionPoints())

	cacheMu.Lock()
	cache[typ] = a
	cacheMu.Unlock()

	return a.members, a.errs
}

func analyze(typ reflect.Type, points []Point) *analysis {
	a := &analysis{}

	structType := typ
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}

	for _, p := range points {
		if p.Member == "" {
			a.errs = append(a.errs, ConfigError{BehaviorType: typ, Point: p, Reason: "empty member name"})
			continue
		}
		if !p.Scope.IsValid() {
			a.errs = append(a.errs, ConfigError{BehaviorType: typ, Point: p,
				Reason: fmt.Sprintf("invalid scope %d", int(p.Scope))})
			continue
		}

		// Setter methods take precedence so a behavior can guard a field
		// behind a setter without renaming it.
		if method, ok := typ.MethodByName(p.Member); ok {
			m, err := setterMember(typ, p, method)
			if err != nil {
				a.errs = append(a.errs, err)
				continue
			}
			a.members = append(a.members, m)
			continue
		}

		if structType.Kind() != reflect.Struct {
			a.errs = append(a.errs, ConfigError{BehaviorType: typ, Point: p,
				Reason: fmt.Sprintf("behavior kind %s has no members", typ.Kind())})
			continue
		}

		field, ok := structType.FieldByName(p.Member)
		if !ok {
			// An unexported name will not be found via the method set
			// either, so distinguish the two failure reasons here.
			if f, hidden := hiddenField(structType, p.Member); hidden {
				a.errs = append(a.errs, ConfigError{BehaviorType: typ, Point: p,
					Reason: fmt.Sprintf("field %q is unexported and unreachable by injection", f.Name)})
				continue
			}
			a.errs = append(a.errs, ConfigError{BehaviorType: typ, Point: p, Reason: "no such field or setter method"})
			continue
		}
		if !field.IsExported() {
			a.errs = append(a.errs, ConfigError{BehaviorType: typ, Point: p,
				Reason: fmt.Sprintf("field %q is unexported and unreachable by injection", field.Name)})
			continue
		}
		if typ.Kind() != reflect.Pointer {
			a.errs = append(a.errs, ConfigError{BehaviorType: typ, Point: p,
				Reason: "behavior must be attached as a pointer for field injection"})
			continue
		}

		a.members = append(a.members, Member{
			Name:         field.Name,
			DeclaredType: field.Type,
			Scope:        p.Scope,
			Category:     CategoryField,
			fieldIndex:   field.Index,
			methodIndex:  -1,
		})
	}

	return a
}

// hiddenField reports whether name matches a field only by case-insensitive
// comparison against an unexported field, the common misconfiguration.
func hiddenField(structType reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < structType.NumField(); i++ {
		f := structType.Field(i)
		if !f.IsExported() && strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

func setterMember(typ reflect.Type, p Point, method reflect.Method) (Member, error) {
	mt := method.Type

	// Method receivers count as the first input.
	if mt.NumIn() != 2 {
		return Member{}, ConfigError{BehaviorType: typ, Point: p,
			Reason: fmt.Sprintf("setter %q must take exactly one argument, takes %d", method.Name, mt.NumIn()-1)}
	}
	switch mt.NumOut() {
	case 0:
	case 1:
		if mt.Out(0) != errType {
			return Member{}, ConfigError{BehaviorType: typ, Point: p,
				Reason: fmt.Sprintf("setter %q may only return error, returns %s", method.Name, mt.Out(0))}
		}
	default:
		return Member{}, ConfigError{BehaviorType: typ, Point: p,
			Reason: fmt.Sprintf("setter %q must return nothing or error, returns %d values", method.Name, mt.NumOut())}
	}

	return Member{
		Name:         method.Name,
		DeclaredType: mt.In(1),
		Scope:        p.Scope,
		Category:     CategorySetter,
		methodIndex:  method.Index,
	}, nil
}

// Set assigns value to the member on owner. The assignability re-check is
// defensive: callers are expected to have matched value against DeclaredType
// already, but a failed assignment must never take down a resolution pass.
func (m Member) Set(owner, value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = AssignmentError{
				OwnerType:    reflect.TypeOf(owner),
				Member:       m.Name,
				DeclaredType: m.DeclaredType,
				ValueType:    reflect.TypeOf(value),
				Cause:        fmt.Errorf("panic: %v", r),
			}
		}
	}()

	vv := reflect.ValueOf(value)
	if !vv.IsValid() || !vv.Type().AssignableTo(m.DeclaredType) {
		return AssignmentError{
			OwnerType:    reflect.TypeOf(owner),
			Member:       m.Name,
			DeclaredType: m.DeclaredType,
			ValueType:    reflect.TypeOf(value),
		}
	}

	ov := reflect.ValueOf(owner)

	if m.Category == CategorySetter {
		out := ov.Method(m.methodIndex).Call([]reflect.Value{vv})
		if len(out) == 1 && !out[0].IsNil() {
			return AssignmentError{
				OwnerType:    reflect.TypeOf(owner),
				Member:       m.Name,
				DeclaredType: m.DeclaredType,
				ValueType:    vv.Type(),
				Cause:        out[0].Interface().(error),
			}
		}
		return nil
	}

	ov.Elem().FieldByIndex(m.fieldIndex).Set(vv)
	return nil
}

// typeName formats a reflect.Type for error messages, preferring short names
// over fully qualified ones.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Pointer {
		if elem := t.Elem(); elem.Name() != "" {
			return "*" + elem.Name()
		}
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
