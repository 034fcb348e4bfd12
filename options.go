package scenewire

import (
	"log/slog"
)

// ResolveOption configures a resolution pass.
type ResolveOption interface {
	apply(*resolveOptions)
}

// resolveOptions holds pass configuration.
type resolveOptions struct {
	logger   *slog.Logger
	observer func(Outcome)
	sources  []ServiceSource
}

// resolveOptionFunc adapts a function to ResolveOption.
type resolveOptionFunc func(*resolveOptions)

func (f resolveOptionFunc) apply(opts *resolveOptions) {
	f(opts)
}

// WithLogger emits a leveled log line for every outcome as the pass runs,
// in addition to recording it in the Result. Equivalent to calling Report on
// the returned Result, but interleaved with resolution.
func WithLogger(logger *slog.Logger) ResolveOption {
	return resolveOptionFunc(func(opts *resolveOptions) {
		opts.logger = logger
	})
}

// WithObserver calls fn for every outcome as it is produced.
func WithObserver(fn func(Outcome)) ResolveOption {
	return resolveOptionFunc(func(opts *resolveOptions) {
		opts.observer = fn
	})
}

// WithServiceSource adds external global-service candidates to the pass.
// Source services participate in service resolution and in ambiguity
// detection exactly like Service-marked behaviors found in the scene.
func WithServiceSource(source ServiceSource) ResolveOption {
	return resolveOptionFunc(func(opts *resolveOptions) {
		if source != nil {
			opts.sources = append(opts.sources, source)
		}
	})
}
