package resource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/octofit/dashboard/internal/models"
)

// ErrUnknownResource is returned for a kind outside the registry
var ErrUnknownResource = errors.New("unknown resource")

// Registry is the ordered, read-only set of presenters served by the dashboard
type Registry struct {
	order  []Kind
	byKind map[Kind]Presenter
}

// NewRegistry creates a registry from presenters, keeping their order
func NewRegistry(presenters ...Presenter) *Registry {
	r := &Registry{byKind: make(map[Kind]Presenter, len(presenters))}
	for _, p := range presenters {
		kind := p.Describe().Kind
		if _, dup := r.byKind[kind]; !dup {
			r.order = append(r.order, kind)
		}
		r.byKind[kind] = p
	}
	return r
}

// Builtin returns the five dashboard resources in navigation order
func Builtin() *Registry {
	return NewRegistry(
		UserDescriptor,
		ActivityDescriptor,
		TeamDescriptor,
		LeaderboardDescriptor,
		WorkoutDescriptor,
	)
}

// Get retrieves a presenter by kind
func (r *Registry) Get(kind string) (Presenter, error) {
	p, ok := r.byKind[Kind(kind)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, kind)
	}
	return p, nil
}

// All returns every presenter in navigation order
func (r *Registry) All() []Presenter {
	out := make([]Presenter, 0, len(r.order))
	for _, kind := range r.order {
		out = append(out, r.byKind[kind])
	}
	return out
}

// Apply returns a new registry with display overrides merged in.
// Presenters and derived-field rules are never affected.
func (r *Registry) Apply(overrides []models.ResourceOverride) (*Registry, error) {
	next := &Registry{
		order:  append([]Kind(nil), r.order...),
		byKind: make(map[Kind]Presenter, len(r.byKind)),
	}
	for k, p := range r.byKind {
		next.byKind[k] = p
	}

	for _, o := range overrides {
		p, ok := next.byKind[Kind(o.Resource)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownResource, o.Resource)
		}

		meta := p.Describe()
		if o.DisplayName != "" {
			meta.DisplayName = o.DisplayName
		}
		if o.Tagline != "" {
			meta.Tagline = o.Tagline
		}
		if o.EmptyNotice != "" {
			meta.EmptyNotice = o.EmptyNotice
		}
		if o.TotalLabel != "" {
			meta.TotalLabel = o.TotalLabel
		}
		if o.Endpoint != "" {
			if !strings.HasPrefix(o.Endpoint, "/") {
				return nil, fmt.Errorf("endpoint for %s must start with /: %q", o.Resource, o.Endpoint)
			}
			meta.Endpoint = o.Endpoint
		}
		next.byKind[meta.Kind] = p.WithMeta(meta)
	}

	return next, nil
}
