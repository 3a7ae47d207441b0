// Package loader drives a single resource fetch through the
// Idle -> Loading -> Success | Error state machine.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/octofit/dashboard/internal/models"
	"github.com/octofit/dashboard/internal/normalize"
	"github.com/octofit/dashboard/pkg/client"
)

// Fetcher issues one GET request. It returns an error only when no response
// was received.
type Fetcher interface {
	Get(ctx context.Context, path string) (*client.Response, error)
}

// Loader runs exactly one load and holds its state
type Loader struct {
	fetcher  Fetcher
	observer Observer
	resource string

	mu        sync.Mutex
	state     models.LoadState
	started   bool
	listeners []func(models.LoadState)
}

// Option configures a Loader
type Option func(*Loader)

// WithObserver sets the observability hook
func WithObserver(o Observer) Option {
	return func(l *Loader) {
		l.observer = o
	}
}

// WithResource sets the resource name reported in events
func WithResource(name string) Option {
	return func(l *Loader) {
		l.resource = name
	}
}

// WithListener registers a callback invoked after every state change
func WithListener(fn func(models.LoadState)) Option {
	return func(l *Loader) {
		l.listeners = append(l.listeners, fn)
	}
}

// New creates an idle loader
func New(fetcher Fetcher, opts ...Option) *Loader {
	l := &Loader{
		fetcher: fetcher,
		state:   models.Idle(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// State returns the current state
func (l *Loader) State() models.LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load fetches endpoint once and returns the terminal state.
// If ctx is done by the time the outcome is known, the outcome is dropped,
// the state stays Loading and ErrDiscarded is returned.
func (l *Loader) Load(ctx context.Context, endpoint string) (models.LoadState, error) {
	l.mu.Lock()
	if l.started {
		state := l.state
		l.mu.Unlock()
		return state, ErrAlreadyStarted
	}
	l.started = true
	l.mu.Unlock()

	ev := Event{
		LoadID:   uuid.NewString(),
		Resource: l.resource,
		Endpoint: endpoint,
	}
	// Observers outlive the view; their writes must not be cut short by teardown.
	obsCtx := context.WithoutCancel(ctx)

	if _, ok := l.apply(ctx, models.Loading()); !ok {
		ev.Phase, ev.Discarded = models.PhaseLoading, true
		l.emit(obsCtx, ev)
		return l.State(), ErrDiscarded
	}
	ev.Phase = models.PhaseLoading
	l.emit(obsCtx, ev)

	start := time.Now()
	resp, err := l.fetcher.Get(ctx, endpoint)
	ev.Duration = time.Since(start)

	next := l.resolve(resp, err, &ev)

	state, ok := l.apply(ctx, next)
	if !ok {
		ev.Discarded = true
		l.emit(obsCtx, ev)
		return state, ErrDiscarded
	}

	l.emit(obsCtx, ev)
	return state, nil
}

// resolve maps a fetch outcome to the next state and fills in ev
func (l *Loader) resolve(resp *client.Response, err error, ev *Event) models.LoadState {
	if err != nil {
		loadErr := &NetworkError{Err: err}
		ev.Phase, ev.Err = models.PhaseError, loadErr
		return models.Failed(loadErr)
	}

	ev.StatusCode = resp.StatusCode
	if !resp.OK() {
		loadErr := &HTTPStatusError{StatusCode: resp.StatusCode, URL: resp.URL}
		ev.Phase, ev.Err = models.PhaseError, loadErr
		return models.Failed(loadErr)
	}

	payload, err := decodeJSON(resp.Body)
	if err != nil {
		loadErr := &ParseError{Err: err}
		ev.Phase, ev.Err = models.PhaseError, loadErr
		return models.Failed(loadErr)
	}

	records, shape := normalize.Inspect(payload)
	ev.Phase, ev.Shape, ev.Records = models.PhaseSuccess, shape, len(records)
	if shape == normalize.ShapeUnrecognized {
		ev.Detail = normalize.Describe(payload)
	}
	return models.Succeeded(records)
}

// apply moves to next unless ctx is done. It reports whether the state changed.
func (l *Loader) apply(ctx context.Context, next models.LoadState) (models.LoadState, bool) {
	l.mu.Lock()
	if ctx.Err() != nil {
		state := l.state
		l.mu.Unlock()
		return state, false
	}

	state, err := l.state.Transition(next)
	if err != nil {
		l.mu.Unlock()
		return state, false
	}
	l.state = state
	listeners := append([]func(models.LoadState){}, l.listeners...)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
	return state, true
}

func (l *Loader) emit(ctx context.Context, ev Event) {
	if l.observer != nil {
		l.observer.Observe(ctx, ev)
	}
}

// decodeJSON parses body as a single JSON value, keeping numbers exact
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty body")
		}
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}

	return payload, nil
}
