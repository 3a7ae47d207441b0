package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/octofit/dashboard/internal/resource"
)

// resolveResource looks up the {resource} URL parameter in the registry and
// stores the presenter in the request context. Unknown names get a 404.
func (s *Server) resolveResource(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "resource")

		p, err := s.registry.Get(name)
		if err != nil {
			if errors.Is(err, resource.ErrUnknownResource) {
				slog.Debug("unknown resource requested", "resource", name, "path", r.URL.Path)
				respondError(w, http.StatusNotFound, "not_found", "unknown resource: "+name)
				return
			}
			slog.Error("failed to resolve resource", "resource", name, "error", err)
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to resolve resource")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithPresenter(r.Context(), p)))
	})
}
