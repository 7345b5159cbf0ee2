package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ncd-navigator/resource-mobilization/api/internal/interfaces/http/common"
	userapp "github.com/ncd-navigator/resource-mobilization/api/internal/user/application"
)

func (h *Handler) userListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.users.List(r.Context())
		if err != nil {
			h.logger.Printf("admin user list fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to list users"})
			return
		}

		items := make([]userResponse, 0, len(users))
		for _, user := range users {
			items = append(items, mapUserResponse(user))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, userListResponse{Items: items})
	}
}

func (h *Handler) userCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.Result{Success: false, Message: err.Error()})
			return
		}
		if fieldErrs := common.ValidateStruct(req); fieldErrs != nil {
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, common.Result{Success: false, Errors: fieldErrs})
			return
		}

		user, err := h.users.Create(r.Context(), userapp.CreateUserCommand{
			Email:        req.Email,
			DisplayName:  req.DisplayName,
			Organisation: req.Organisation,
			Role:         req.Role,
			Password:     req.Password,
		})
		if err != nil {
			if errors.Is(err, userapp.ErrEmailTaken) {
				common.WriteJSON(h.logger, w, http.StatusConflict, common.Result{Success: false, Message: "Email already registered"})
				return
			}
			h.logger.Printf("admin user create failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to create user"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, mapUserResponse(*user))
	}
}

func (h *Handler) userDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		user, err := h.users.Detail(r.Context(), id)
		if errors.Is(err, userapp.ErrNotFound) {
			common.WriteJSON(h.logger, w, http.StatusNotFound, common.Result{Success: false, Message: "User not found"})
			return
		}
		if err != nil {
			h.logger.Printf("admin user detail fetch failed id=%s err=%v", id, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to load user"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, mapUserResponse(*user))
	}
}

func (h *Handler) userUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		var req updateUserRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.Result{Success: false, Message: err.Error()})
			return
		}
		if fieldErrs := common.ValidateStruct(req); fieldErrs != nil {
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, common.Result{Success: false, Errors: fieldErrs})
			return
		}

		user, err := h.users.Update(r.Context(), id, userapp.UpdateUserCommand{
			DisplayName:  req.DisplayName,
			Organisation: req.Organisation,
			Role:         req.Role,
			Password:     req.Password,
		})
		if errors.Is(err, userapp.ErrNotFound) {
			common.WriteJSON(h.logger, w, http.StatusNotFound, common.Result{Success: false, Message: "User not found"})
			return
		}
		if err != nil {
			h.logger.Printf("admin user update failed id=%s err=%v", id, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to update user"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, mapUserResponse(*user))
	}
}

func (h *Handler) userDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		err := h.users.Delete(r.Context(), id)
		if errors.Is(err, userapp.ErrNotFound) {
			common.WriteJSON(h.logger, w, http.StatusNotFound, common.Result{Success: false, Message: "User not found"})
			return
		}
		if err != nil {
			h.logger.Printf("admin user delete failed id=%s err=%v", id, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to delete user"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.Result{Success: true, Message: "User deleted"})
	}
}
