package public

import (
	"net/http"
	"strings"

	"github.com/ncd-navigator/resource-mobilization/api/internal/interfaces/http/common"
)

// quickStatsHandler serves the unauthenticated lightweight counters shown on
// the landing page.
func (h *Handler) quickStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := h.stats.QuickCounts(r.Context())
		common.WriteJSON(h.logger, w, http.StatusOK, quickStatsResponse{
			Success:        true,
			Message:        result.Message,
			TotalSurveys:   result.Counts.TotalSurveys,
			TotalDrafts:    result.Counts.TotalDrafts,
			TotalUsers:     result.Counts.TotalUsers,
			RecentActivity: result.Counts.RecentActivity,
			CompletionRate: result.Counts.CompletionRate,
			Timestamp:      result.ComputedAt,
		})
	}
}

// dashboardHandler serves the cached dashboard statistics. When the client
// passes a userId it must match the session subject.
func (h *Handler) dashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.Result{Success: false, Message: "Authentication required"})
			return
		}
		if requested := strings.TrimSpace(r.URL.Query().Get("userId")); requested != "" && requested != user.ID {
			common.WriteJSON(h.logger, w, http.StatusForbidden, common.Result{Success: false, Message: "Access denied"})
			return
		}

		result := h.stats.Dashboard(r.Context())
		response := dashboardResponse{
			Success:   true,
			Message:   result.Message,
			Stats:     mapDashboardStats(result.Stats),
			Timestamp: result.ComputedAt,
		}
		if includeActivity(r.URL.Query().Get("includeActivity")) {
			response.RecentActivity = mapActivityItems(h.stats.RecentActivity(r.Context(), h.activityLimit))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, response)
	}
}

// dashboardRefreshHandler forces a recomputation by invalidating the cached
// stats entries before reading them back.
func (h *Handler) dashboardRefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.Result{Success: false, Message: err.Error()})
			return
		}
		if req.Action != "refresh" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.Result{Success: false, Message: "Unsupported action"})
			return
		}

		h.stats.Refresh()
		result := h.stats.Dashboard(r.Context())
		common.WriteJSON(h.logger, w, http.StatusOK, dashboardResponse{
			Success:        true,
			Message:        result.Message,
			Stats:          mapDashboardStats(result.Stats),
			RecentActivity: mapActivityItems(h.stats.RecentActivity(r.Context(), h.activityLimit)),
			Timestamp:      result.ComputedAt,
		})
	}
}

func includeActivity(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
