package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ncd-navigator/resource-mobilization/api/internal/drafts"
	partnerapp "github.com/ncd-navigator/resource-mobilization/api/internal/partner/application"
	resourceapp "github.com/ncd-navigator/resource-mobilization/api/internal/resource/application"
	statsapp "github.com/ncd-navigator/resource-mobilization/api/internal/stats/application"
	surveyapp "github.com/ncd-navigator/resource-mobilization/api/internal/survey/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger          *log.Logger
	surveyDrafts    drafts.Service
	partnerDrafts   drafts.Service
	surveyCommands  surveyapp.SurveyCommandService
	mappingCommands partnerapp.MappingCommandService
	stats           *statsapp.CachedService
	resources       resourceapp.Service
	activityLimit   int
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger          *log.Logger
	SurveyDrafts    drafts.Service
	PartnerDrafts   drafts.Service
	SurveyCommands  surveyapp.SurveyCommandService
	MappingCommands partnerapp.MappingCommandService
	Stats           *statsapp.CachedService
	Resources       resourceapp.Service
	// ActivityFeedLimit caps the recent-activity feed on dashboard
	// responses. Zero falls back to the engine default.
	ActivityFeedLimit int
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:          cfg.Logger,
		surveyDrafts:    cfg.SurveyDrafts,
		partnerDrafts:   cfg.PartnerDrafts,
		surveyCommands:  cfg.SurveyCommands,
		mappingCommands: cfg.MappingCommands,
		stats:           cfg.Stats,
		resources:       cfg.Resources,
		activityLimit:   cfg.ActivityFeedLimit,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/stats", h.quickStatsHandler())
	r.With(authMiddleware).Get("/dashboard", h.dashboardHandler())
	r.With(authMiddleware).Post("/dashboard", h.dashboardRefreshHandler())

	r.Route("/surveys", func(sr chi.Router) {
		sr.Use(authMiddleware)
		sr.Get("/draft", h.loadDraftHandler(h.surveyDrafts))
		sr.Put("/draft", h.saveDraftHandler(h.surveyDrafts))
		sr.Delete("/draft", h.discardDraftHandler(h.surveyDrafts))
		sr.Post("/", h.surveySubmitHandler(false))
		sr.Post("/finalize", h.surveySubmitHandler(true))
	})

	r.Route("/partner-mappings", func(pr chi.Router) {
		pr.Use(authMiddleware)
		pr.Get("/draft", h.loadDraftHandler(h.partnerDrafts))
		pr.Put("/draft", h.saveDraftHandler(h.partnerDrafts))
		pr.Delete("/draft", h.discardDraftHandler(h.partnerDrafts))
		pr.Post("/", h.mappingSubmitHandler(false))
		pr.Post("/finalize", h.mappingSubmitHandler(true))
		pr.Get("/submissions", h.mappingListHandler())
	})

	r.Get("/resources", h.resourceListHandler())
	r.Get("/resources/{id}", h.resourceDetailHandler())
	r.Get("/resources/{id}/download", h.resourceDownloadHandler())
}
