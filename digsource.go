package scenewire

import (
	"fmt"
	"reflect"

	"go.uber.org/dig"
)

// ServiceSource contributes global-service candidates that are not attached
// to the scene, such as application-level singletons owned by a container.
type ServiceSource interface {
	// Services returns the candidate values. Called once per resolution
	// pass; nil entries are ignored.
	Services() []any
}

// Values is the trivial ServiceSource over a fixed set of values.
type Values []any

// Services implements ServiceSource.
func (v Values) Services() []any {
	return v
}

// ExportedType names a type to pull out of a dig container. Build it with
// Export.
type ExportedType struct {
	typ reflect.Type
}

// Export names T as a type to extract from a container. T may be an
// interface or a concrete (typically pointer) type; it must match a provided
// type in the container exactly.
func Export[T any]() ExportedType {
	return ExportedType{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// DigSource exposes values extracted from a dig container as service
// candidates. Extraction happens once, in FromContainer; the source then
// hands out the same instances on every pass.
type DigSource struct {
	values []any
}

var _ ServiceSource = (*DigSource)(nil)

// FromContainer extracts one instance per exported type from the container.
// Every exported type must be resolvable or FromContainer fails; a missing
// provider is a configuration error at wiring time, not something a
// resolution pass should discover later.
func FromContainer(c *dig.Container, exports ...ExportedType) (*DigSource, error) {
	if c == nil {
		return nil, ErrNilContainer
	}

	source := &DigSource{values: make([]any, 0, len(exports))}
	for _, export := range exports {
		value, err := extract(c, export.typ)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", formatType(export.typ), err)
		}
		source.values = append(source.values, value)
	}
	return source, nil
}

// Services implements ServiceSource.
func (s *DigSource) Services() []any {
	out := make([]any, len(s.values))
	copy(out, s.values)
	return out
}

// extract invokes a synthesized func(T) against the container to capture the
// instance dig holds for t.
func extract(c *dig.Container, t reflect.Type) (any, error) {
	var captured any
	fnType := reflect.FuncOf([]reflect.Type{t}, nil, false)
	fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		captured = args[0].Interface()
		return nil
	})
	if err := c.Invoke(fn.Interface()); err != nil {
		return nil, err
	}
	return captured, nil
}
