package scenewire

import (
	"log/slog"
)

// Report replays a Result into a logger: one Info line per injected member,
// one Error line per failure. It produces the same lines WithLogger emits
// during the pass, so callers can choose between interleaved and after-the-
// fact logging.
func Report(logger *slog.Logger, res Result) {
	if logger == nil {
		return
	}
	for _, o := range res.Outcomes {
		logOutcome(logger, res.PassID, o)
	}
}

func logOutcome(logger *slog.Logger, passID string, o Outcome) {
	attrs := []any{
		slog.String("pass", passID),
		slog.Int("node", int(o.Node)),
		slog.String("node_name", o.NodeName),
		slog.String("behavior", formatType(o.BehaviorType)),
		slog.String("member", o.Member),
		slog.String("type", formatType(o.DeclaredType)),
	}

	switch o.Status {
	case StatusInjected:
		attrs = append(attrs, slog.String("source", formatType(o.SourceType)))
		if o.SourceNode != NoNode {
			attrs = append(attrs, slog.Int("source_node", int(o.SourceNode)))
		}
		logger.Info("dependency injected", attrs...)

	case StatusAmbiguous:
		names := make([]string, len(o.Candidates))
		for i, c := range o.Candidates {
			names[i] = formatType(c)
		}
		attrs = append(attrs, slog.Any("candidates", names))
		logger.Error("ambiguous service", attrs...)

	default:
		if o.Err != nil {
			attrs = append(attrs, slog.String("error", o.Err.Error()))
		}
		logger.Error("dependency not injected", append(attrs, slog.String("status", o.Status.String()))...)
	}
}
