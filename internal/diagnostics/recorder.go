package diagnostics

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/octofit/dashboard/internal/loader"
	"github.com/octofit/dashboard/internal/models"
	"github.com/octofit/dashboard/internal/normalize"
)

const recordTimeout = 5 * time.Second

// Recorder is a loader observer that stores a warning whenever a load
// succeeded only because an unrecognized payload degraded to an empty list.
type Recorder struct {
	store Store
	now   func() time.Time
}

// NewRecorder creates a recorder writing to store
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

// Observe implements loader.Observer
func (r *Recorder) Observe(ctx context.Context, ev loader.Event) {
	if ev.Discarded || ev.Phase != models.PhaseSuccess || ev.Shape != normalize.ShapeUnrecognized {
		return
	}

	w := models.Warning{
		ID:         uuid.New().String(),
		LoadID:     ev.LoadID,
		Resource:   ev.Resource,
		Endpoint:   ev.Endpoint,
		Shape:      string(ev.Shape),
		Detail:     ev.Detail,
		ObservedAt: r.now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	if err := r.store.Record(ctx, w); err != nil {
		slog.Error("failed to record payload warning",
			"resource", ev.Resource,
			"load_id", ev.LoadID,
			"error", err,
		)
	}
}

// Recent proxies to the underlying store
func (r *Recorder) Recent(ctx context.Context, limit int) ([]models.Warning, error) {
	return r.store.Recent(ctx, limit)
}
