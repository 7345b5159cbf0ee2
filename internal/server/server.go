package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ncd-navigator/resource-mobilization/api/internal/cache"
	"github.com/ncd-navigator/resource-mobilization/api/internal/config"
	"github.com/ncd-navigator/resource-mobilization/api/internal/drafts"
	mongodoc "github.com/ncd-navigator/resource-mobilization/api/internal/infrastructure/mongo"
	adminhttp "github.com/ncd-navigator/resource-mobilization/api/internal/interfaces/http/admin"
	commonhttp "github.com/ncd-navigator/resource-mobilization/api/internal/interfaces/http/common"
	publichttp "github.com/ncd-navigator/resource-mobilization/api/internal/interfaces/http/public"
	partnerapp "github.com/ncd-navigator/resource-mobilization/api/internal/partner/application"
	resourceapp "github.com/ncd-navigator/resource-mobilization/api/internal/resource/application"
	statsapp "github.com/ncd-navigator/resource-mobilization/api/internal/stats/application"
	surveyapp "github.com/ncd-navigator/resource-mobilization/api/internal/survey/application"
	userapp "github.com/ncd-navigator/resource-mobilization/api/internal/user/application"
)

// Server is the composition root: it assembles repositories, application
// services and HTTP handlers, and manages the server lifecycle.
type Server struct {
	logger          *log.Logger
	client          *mongo.Client
	surveyRepo      *mongodoc.SurveyRepository
	surveyDrafts    drafts.Service
	partnerDrafts   drafts.Service
	surveyCommands  surveyapp.SurveyCommandService
	mappingCommands partnerapp.MappingCommandService
	statsService    *statsapp.CachedService
	userService     userapp.Service
	resourceService resourceapp.Service
	jwtConfigs      []config.JWTConfig
	jwtAudience     string
	addr            string
	allowedOrigins  []string
	activityLimit   int
}

type authenticatedUser = commonhttp.AuthenticatedUser

// New wires repositories and application services from cfg and the Mongo
// client, returning a ready-to-run Server.
func New(cfg config.Config, client *mongo.Client) *Server {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
		cfg.ServerLog.Printf("failed to load timezone %s: %v, using UTC", cfg.Timezone, err)
	}

	db := client.Database(cfg.MongoDatabase)

	surveyRepo := mongodoc.NewSurveyRepository(db, cfg.SurveyCollection)
	surveyDraftRepo := mongodoc.NewDraftRepository(db, cfg.SurveyDraftCollection)
	partnerRepo := mongodoc.NewPartnerMappingRepository(db, cfg.PartnerCollection)
	partnerDraftRepo := mongodoc.NewDraftRepository(db, cfg.PartnerDraftCollection)
	userRepo := mongodoc.NewUserRepository(db, cfg.UserCollection)
	resourceRepo := mongodoc.NewResourceRepository(db, cfg.ResourceCollection)
	statsRepo := mongodoc.NewStatsRepository(db, cfg.SurveyCollection, cfg.SurveyDraftCollection, cfg.UserCollection)

	store := cache.New()
	// Month bucketing follows the reporting timezone, not the host clock.
	statsEngine := statsapp.NewServiceWithClock(statsRepo, func() time.Time { return time.Now().In(loc) })
	statsService := statsapp.NewCachedService(statsEngine, store, cfg.StatsCacheTTL, cfg.ServerLog)

	return &Server{
		logger:          cfg.ServerLog,
		client:          client,
		surveyRepo:      surveyRepo,
		surveyDrafts:    drafts.NewService(surveyDraftRepo),
		partnerDrafts:   drafts.NewService(partnerDraftRepo),
		surveyCommands:  surveyapp.NewSurveyCommandService(surveyRepo, surveyDraftRepo, store),
		mappingCommands: partnerapp.NewMappingCommandService(partnerRepo, partnerDraftRepo, store),
		statsService:    statsService,
		userService:     userapp.NewService(userRepo),
		resourceService: resourceapp.NewService(resourceRepo, cfg.MediaBaseURL),
		jwtConfigs:      cfg.JWTConfigs,
		jwtAudience:     cfg.JWTAudience,
		addr:            cfg.Addr,
		allowedOrigins:  cfg.AllowedOrigins,
		activityLimit:   cfg.RecentActivityLimit,
	}
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:            s.logger,
		SurveyDrafts:      s.surveyDrafts,
		PartnerDrafts:     s.partnerDrafts,
		SurveyCommands:    s.surveyCommands,
		MappingCommands:   s.mappingCommands,
		Stats:             s.statsService,
		Resources:         s.resourceService,
		ActivityFeedLimit: s.activityLimit,
	})
	router.Route("/api", func(r chi.Router) {
		publicHandler.Register(r, s.authMiddleware)
	})

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:    s.logger,
		Users:     s.userService,
		Resources: s.resourceService,
		Surveys:   s.surveyRepo,
		Stats:     s.statsService,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Use(s.requireAdmin)
		adminHandler.Register(r)
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP server listening on http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS builds a middleware applying the allowed-origin policy.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler reports Mongo connectivity for monitoring checks.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// authMiddleware validates the Authorization bearer token and stores the
// authenticated principal into the request context. Shared by the public
// and admin route groups.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "Bearer token required"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": "Access token is empty"})
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		user := authenticatedUser{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		}

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates a route group to the admin role. Must run after
// authMiddleware.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := commonhttp.UserFromContext(r.Context())
		if !ok || !user.IsAdmin() {
			commonhttp.WriteJSON(s.logger, w, http.StatusForbidden, map[string]string{"error": "Admin role required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// parseAuthToken tries each configured JWT secret in order, checking the
// signature and issuer/audience consistency.
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	if len(s.jwtConfigs) == 0 {
		return nil, fmt.Errorf("authentication is not configured")
	}

	for _, cfg := range s.jwtConfigs {
		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return cfg.Secret, nil
		}, jwt.WithLeeway(30*time.Second))

		if err != nil || !token.Valid {
			continue
		}

		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			continue
		}

		now := time.Now()
		if claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time) {
			continue
		}
		if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if s.jwtAudience != "" && !contains(claims.Audience, s.jwtAudience) {
			continue
		}

		return claims, nil
	}

	return nil, fmt.Errorf("access token is invalid")
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

type authClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// shutdown disconnects the Mongo client with a bounded timeout.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("error while disconnecting MongoDB: %v", err)
	}
}

// waitForShutdown watches ListenAndServe and OS signals, draining in-flight
// requests before the process exits.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("server terminated unexpectedly: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("error during server shutdown: %v", err)
		}
	}

	srv.shutdown(context.Background())
}
