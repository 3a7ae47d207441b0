package loader

import (
	"context"
	"log/slog"
	"time"

	"github.com/octofit/dashboard/internal/models"
	"github.com/octofit/dashboard/internal/normalize"
)

// Event describes one step of a load attempt
type Event struct {
	LoadID     string
	Resource   string
	Endpoint   string
	Phase      models.Phase
	StatusCode int
	Records    int
	Shape      normalize.Shape
	Detail     string // payload summary for unrecognized shapes
	Duration   time.Duration
	Err        error
	Discarded  bool
}

// Level returns the log level an event should be reported at
func (e Event) Level() slog.Level {
	switch {
	case e.Discarded:
		return slog.LevelInfo
	case e.Phase == models.PhaseError:
		return slog.LevelError
	case e.Phase == models.PhaseSuccess && e.Shape == normalize.ShapeUnrecognized:
		return slog.LevelWarn
	case e.Phase == models.PhaseSuccess:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// Observer receives load events
type Observer interface {
	Observe(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ctx context.Context, ev Event)

// Observe calls f
func (f ObserverFunc) Observe(ctx context.Context, ev Event) { f(ctx, ev) }

// Observers fans events out to every member
type Observers []Observer

// Observe forwards ev to each observer in order
func (o Observers) Observe(ctx context.Context, ev Event) {
	for _, obs := range o {
		if obs != nil {
			obs.Observe(ctx, ev)
		}
	}
}

// LogObserver reports events through slog
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates a log observer; a nil logger uses slog.Default()
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

// Observe logs ev at its level
func (o *LogObserver) Observe(ctx context.Context, ev Event) {
	attrs := []any{
		"load_id", ev.LoadID,
		"resource", ev.Resource,
		"endpoint", ev.Endpoint,
		"phase", string(ev.Phase),
	}
	if ev.StatusCode != 0 {
		attrs = append(attrs, "status", ev.StatusCode)
	}
	if ev.Phase == models.PhaseSuccess {
		attrs = append(attrs, "records", ev.Records, "shape", string(ev.Shape))
	}
	if ev.Detail != "" {
		attrs = append(attrs, "payload", ev.Detail)
	}
	if ev.Duration > 0 {
		attrs = append(attrs, "duration_ms", ev.Duration.Milliseconds())
	}
	if ev.Err != nil {
		attrs = append(attrs, "error", ev.Err, "error_kind", Kind(ev.Err))
	}

	msg := "resource load " + string(ev.Phase)
	switch {
	case ev.Discarded:
		msg = "resource load discarded"
	case ev.Shape == normalize.ShapeUnrecognized && ev.Phase == models.PhaseSuccess:
		msg = "resource load returned unrecognized payload shape"
	}

	o.logger.Log(ctx, ev.Level(), msg, attrs...)
}
