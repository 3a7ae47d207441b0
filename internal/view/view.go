// Package view binds a resource presenter to a single-shot loader and renders
// its state as an HTML fragment or a JSON snapshot.
package view

import (
	"context"
	"errors"
	"sync"

	"github.com/octofit/dashboard/internal/loader"
	"github.com/octofit/dashboard/internal/models"
	"github.com/octofit/dashboard/internal/resource"
)

var (
	ErrAlreadyMounted = errors.New("view already mounted")
	ErrUnmounted      = errors.New("view unmounted")
)

// View owns one resource load and its state. Views share nothing.
type View struct {
	presenter resource.Presenter
	loader    *loader.Loader

	mu        sync.Mutex
	mounted   bool
	unmounted bool
	cancel    context.CancelFunc
	done      chan struct{}
	loadErr   error
}

// Option configures a View
type Option func(*options)

type options struct {
	observer  loader.Observer
	listeners []func(Page)
}

// WithObserver forwards load events to o
func WithObserver(o loader.Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// WithListener registers fn to receive the page after every state change
func WithListener(fn func(Page)) Option {
	return func(opts *options) {
		opts.listeners = append(opts.listeners, fn)
	}
}

// New creates an unmounted view for presenter, fetching through fetcher
func New(presenter resource.Presenter, fetcher loader.Fetcher, opts ...Option) *View {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	v := &View{
		presenter: presenter,
		done:      make(chan struct{}),
	}

	loaderOpts := []loader.Option{
		loader.WithResource(string(presenter.Describe().Kind)),
		loader.WithObserver(o.observer),
	}
	for _, fn := range o.listeners {
		loaderOpts = append(loaderOpts, loader.WithListener(func(s models.LoadState) {
			fn(v.pageFor(s))
		}))
	}
	v.loader = loader.New(fetcher, loaderOpts...)

	return v
}

// Meta returns the bound resource metadata
func (v *View) Meta() resource.Meta {
	return v.presenter.Describe()
}

// Mount starts the load in the background. The load runs under a context
// derived from ctx that Unmount cancels.
func (v *View) Mount(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.unmounted {
		return ErrUnmounted
	}
	if v.mounted {
		return ErrAlreadyMounted
	}
	v.mounted = true

	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	endpoint := v.presenter.Describe().Endpoint

	go func() {
		defer close(v.done)
		defer cancel()

		_, err := v.loader.Load(ctx, endpoint)

		v.mu.Lock()
		v.loadErr = err
		v.mu.Unlock()
	}()

	return nil
}

// Unmount tears the view down. A response arriving afterwards is discarded.
// Unmounting before Mount leaves the view Idle for good.
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.unmounted = true
	if v.cancel != nil {
		v.cancel()
	}
}

// Done is closed once a mounted load has finished or been discarded
func (v *View) Done() <-chan struct{} {
	return v.done
}

// Wait blocks until the mounted load finishes or ctx is done
func (v *View) Wait(ctx context.Context) (models.LoadState, error) {
	select {
	case <-v.done:
		v.mu.Lock()
		err := v.loadErr
		v.mu.Unlock()
		return v.loader.State(), err
	case <-ctx.Done():
		return v.loader.State(), ctx.Err()
	}
}

// Load mounts the view and waits for the terminal state
func (v *View) Load(ctx context.Context) (models.LoadState, error) {
	if err := v.Mount(ctx); err != nil {
		return v.loader.State(), err
	}
	return v.Wait(ctx)
}

// State returns the current load state
func (v *View) State() models.LoadState {
	return v.loader.State()
}

// Page returns the render model of the current state
func (v *View) Page() Page {
	return v.pageFor(v.loader.State())
}

func (v *View) pageFor(state models.LoadState) Page {
	meta := v.presenter.Describe()
	p := Page{
		Meta:    meta,
		Phase:   state.Phase,
		Message: state.Message(),
	}
	if state.Err != nil {
		p.ErrorKind = loader.Kind(state.Err)
	}
	if state.Phase == models.PhaseSuccess {
		p.Presentation = v.presenter.Render(state.Records)
		p.Total = len(state.Records)
	}
	return p
}
