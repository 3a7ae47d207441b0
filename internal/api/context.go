package api

import (
	"context"

	"github.com/octofit/dashboard/internal/resource"
)

type contextKey string

const presenterContextKey contextKey = "resource_presenter"

// PresenterFromContext extracts the resolved resource presenter from context
func PresenterFromContext(ctx context.Context) resource.Presenter {
	p, ok := ctx.Value(presenterContextKey).(resource.Presenter)
	if !ok {
		return nil
	}
	return p
}

// ContextWithPresenter adds a resource presenter to context
func ContextWithPresenter(ctx context.Context, p resource.Presenter) context.Context {
	return context.WithValue(ctx, presenterContextKey, p)
}
