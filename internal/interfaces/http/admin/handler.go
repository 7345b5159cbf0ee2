package admin

import (
	"log"

	"github.com/go-chi/chi/v5"

	mongodoc "github.com/ncd-navigator/resource-mobilization/api/internal/infrastructure/mongo"
	resourceapp "github.com/ncd-navigator/resource-mobilization/api/internal/resource/application"
	statsapp "github.com/ncd-navigator/resource-mobilization/api/internal/stats/application"
	userapp "github.com/ncd-navigator/resource-mobilization/api/internal/user/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger    *log.Logger
	users     userapp.Service
	resources resourceapp.Service
	surveys   *mongodoc.SurveyRepository
	stats     *statsapp.CachedService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger    *log.Logger
	Users     userapp.Service
	Resources resourceapp.Service
	Surveys   *mongodoc.SurveyRepository
	Stats     *statsapp.CachedService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:    cfg.Logger,
		users:     cfg.Users,
		resources: cfg.Resources,
		surveys:   cfg.Surveys,
		stats:     cfg.Stats,
	}
}

// Register mounts admin routes onto router. Role checks happen in the
// middleware the server composes around this group.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stats", h.statsHandler())
	r.Get("/surveys", h.surveyListHandler())
	r.Get("/surveys/{id}", h.surveyDetailHandler())
	r.Get("/users", h.userListHandler())
	r.Post("/users", h.userCreateHandler())
	r.Get("/users/{id}", h.userDetailHandler())
	r.Patch("/users/{id}", h.userUpdateHandler())
	r.Delete("/users/{id}", h.userDeleteHandler())
	r.Post("/resources", h.resourceCreateHandler())
	r.Patch("/resources/{id}", h.resourceUpdateHandler())
	r.Delete("/resources/{id}", h.resourceDeleteHandler())
}
