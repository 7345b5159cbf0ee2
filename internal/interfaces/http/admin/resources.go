package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ncd-navigator/resource-mobilization/api/internal/interfaces/http/common"
	resourceapp "github.com/ncd-navigator/resource-mobilization/api/internal/resource/application"
)

func (h *Handler) resourceCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := common.UserFromContext(r.Context())

		var req upsertResourceRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.Result{Success: false, Message: err.Error()})
			return
		}
		if fieldErrs := common.ValidateStruct(req); fieldErrs != nil {
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, common.Result{Success: false, Errors: fieldErrs})
			return
		}

		resource, err := h.resources.Create(r.Context(), resourceapp.UpsertResourceCommand{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			FileName:    req.FileName,
			StoredPath:  req.StoredPath,
			ContentType: req.ContentType,
			SizeBytes:   req.SizeBytes,
			UploadedBy:  user.ID,
		})
		if err != nil {
			h.logger.Printf("admin resource create failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to create resource"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, mapAdminResource(*resource))
	}
}

func (h *Handler) resourceUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		user, _ := common.UserFromContext(r.Context())

		var req upsertResourceRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.Result{Success: false, Message: err.Error()})
			return
		}
		if fieldErrs := common.ValidateStruct(req); fieldErrs != nil {
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, common.Result{Success: false, Errors: fieldErrs})
			return
		}

		resource, err := h.resources.Update(r.Context(), id, resourceapp.UpsertResourceCommand{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			FileName:    req.FileName,
			StoredPath:  req.StoredPath,
			ContentType: req.ContentType,
			SizeBytes:   req.SizeBytes,
			UploadedBy:  user.ID,
		})
		if errors.Is(err, resourceapp.ErrNotFound) {
			common.WriteJSON(h.logger, w, http.StatusNotFound, common.Result{Success: false, Message: "Resource not found"})
			return
		}
		if err != nil {
			h.logger.Printf("admin resource update failed id=%s err=%v", id, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to update resource"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, mapAdminResource(*resource))
	}
}

func (h *Handler) resourceDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		err := h.resources.Delete(r.Context(), id)
		if errors.Is(err, resourceapp.ErrNotFound) {
			common.WriteJSON(h.logger, w, http.StatusNotFound, common.Result{Success: false, Message: "Resource not found"})
			return
		}
		if err != nil {
			h.logger.Printf("admin resource delete failed id=%s err=%v", id, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to delete resource"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.Result{Success: true, Message: "Resource deleted"})
	}
}
