package public

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ncd-navigator/resource-mobilization/api/internal/interfaces/http/common"
	resourceapp "github.com/ncd-navigator/resource-mobilization/api/internal/resource/application"
)

func (h *Handler) resourceListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resources, err := h.resources.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			h.logger.Printf("resource listing failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to list resources"})
			return
		}

		responses := make([]resourceResponse, 0, len(resources))
		for _, resource := range resources {
			responses = append(responses, mapResource(resource))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, resourceListResponse{Success: true, Resources: responses})
	}
}

// resourceDetailHandler looks a resource up by id. Unlike draft lookups,
// a missing resource is a genuine 404.
func (h *Handler) resourceDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resource, err := h.resources.Detail(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, resourceapp.ErrNotFound) {
			common.WriteJSON(h.logger, w, http.StatusNotFound, common.Result{Success: false, Message: "Resource not found"})
			return
		}
		if err != nil {
			h.logger.Printf("resource lookup failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to load resource"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"success":  true,
			"resource": mapResource(*resource),
		})
	}
}

// resourceDownloadHandler resolves the public download URL and records the
// download.
func (h *Handler) resourceDownloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := h.resources.DownloadURL(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, resourceapp.ErrNotFound) {
			common.WriteJSON(h.logger, w, http.StatusNotFound, common.Result{Success: false, Message: "Resource not found"})
			return
		}
		if err != nil {
			h.logger.Printf("resource download resolution failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to resolve download"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, resourceDownloadResponse{Success: true, DownloadURL: url})
	}
}
