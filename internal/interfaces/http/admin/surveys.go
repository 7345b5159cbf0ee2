package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	mongodoc "github.com/ncd-navigator/resource-mobilization/api/internal/infrastructure/mongo"
	"github.com/ncd-navigator/resource-mobilization/api/internal/interfaces/http/common"
)

const (
	defaultSurveyPageLimit = 20
	maxSurveyPageLimit     = 100
)

// statsHandler serves the full cached dashboard payload to administrators.
func (h *Handler) statsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := h.stats.Dashboard(r.Context())
		common.WriteJSON(h.logger, w, http.StatusOK, adminStatsResponse{
			Success:   true,
			Message:   result.Message,
			Stats:     mapAdminStats(result.Stats),
			Timestamp: result.ComputedAt,
		})
	}
}

func (h *Handler) surveyListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := mongodoc.AdminFilter{
			Region:  strings.TrimSpace(query.Get("region")),
			Keyword: strings.TrimSpace(query.Get("keyword")),
		}
		paging := mongodoc.AdminPaging{
			Page:  common.QueryInt(r, "page", 1),
			Limit: common.QueryInt(r, "limit", defaultSurveyPageLimit),
		}
		if paging.Limit > maxSurveyPageLimit {
			paging.Limit = maxSurveyPageLimit
		}

		surveys, err := h.surveys.FindSubmitted(r.Context(), filter, paging)
		if err != nil {
			h.logger.Printf("admin survey list fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to list surveys"})
			return
		}

		items := make([]adminSurveyResponse, 0, len(surveys))
		for _, survey := range surveys {
			items = append(items, mapAdminSurvey(survey))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminSurveyListResponse{Items: items, Page: paging.Page, Limit: paging.Limit})
	}
}

func (h *Handler) surveyDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.Result{Success: false, Message: "Survey id is required"})
			return
		}

		survey, err := h.surveys.FindByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, common.Result{Success: false, Message: "Survey not found"})
				return
			}
			h.logger.Printf("admin survey detail fetch failed id=%s err=%v", id, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.Result{Success: false, Message: "Failed to load survey"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, mapAdminSurvey(*survey))
	}
}
