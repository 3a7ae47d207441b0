package api

import (
	"net/http"

	"github.com/octofit/dashboard/internal/models"
)

// Catalog handlers

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	presenters := s.registry.All()
	resources := make([]models.ResourceInfo, 0, len(presenters))
	for _, p := range presenters {
		resources = append(resources, p.Describe().Info())
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"resources": resources,
		"total":     len(resources),
	})
}
