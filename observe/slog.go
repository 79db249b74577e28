package observe

import (
	"context"
	"log/slog"
)

// SlogObserver logs decisions through log/slog. Matches log at the configured
// level; errors that nothing matched log at debug, since the no-match default
// is expected steady-state behavior.
type SlogObserver struct {
	Logger *slog.Logger
	// Level for matched decisions. Zero value is slog.LevelInfo.
	Level slog.Level
}

func (o SlogObserver) OnDecision(d Decision) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if !d.Matched {
		logger.Debug("no rule matched",
			"error", d.Err,
			"retry", false,
			"elapsed", d.Elapsed)
		return
	}

	logger.Log(context.Background(), o.Level, "classified error",
		"error", d.Err,
		"rule", d.Rule,
		"action", d.Action.String(),
		"depth", d.Depth,
		"retry", d.Retry,
		"elapsed", d.Elapsed)
}
