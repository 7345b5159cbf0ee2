package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                   string
	MongoURI               string
	MongoDatabase          string
	SurveyCollection       string
	SurveyDraftCollection  string
	UserCollection         string
	PartnerCollection      string
	PartnerDraftCollection string
	ResourceCollection     string
	Timeout                time.Duration
	Timezone               string
	ServerLog              *log.Logger
	JWTConfigs             []JWTConfig
	JWTAudience            string
	AllowedOrigins         []string
	MediaBaseURL           string
	StatsCacheTTL          time.Duration
	RecentActivityLimit    int
	AdminBootstrapEmail    string
	AdminBootstrapPassword string
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	statsTTL := 5 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("STATS_CACHE_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			statsTTL = parsed
		}
	}

	recentLimit := 10
	if raw := strings.TrimSpace(os.Getenv("RECENT_ACTIVITY_LIMIT")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			recentLimit = parsed
		}
	}

	allowedOrigins := parseList("API_ALLOWED_ORIGINS", []string{"*"})

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "ncd-navigator-auth"),
			Secret: []byte(secret),
		})
	}
	if secret := strings.TrimSpace(os.Getenv("AUTH_LEGACY_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_LEGACY_JWT_ISSUER", "resource-mobilization-auth"),
			Secret: []byte(secret),
		})
	}

	if len(jwtConfigs) == 0 {
		log.Fatal("JWT secrets not configured. Set AUTH_JWT_SECRET or AUTH_LEGACY_JWT_SECRET.")
	}

	jwtAudience := strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE"))

	cfg := Config{
		Addr:                   envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:               envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:          envOrDefault("MONGO_DB", "resource-mobilization"),
		SurveyCollection:       envOrDefault("SURVEY_COLLECTION", "surveys"),
		SurveyDraftCollection:  envOrDefault("SURVEY_DRAFT_COLLECTION", "survey_drafts"),
		UserCollection:         envOrDefault("USER_COLLECTION", "users"),
		PartnerCollection:      envOrDefault("PARTNER_MAPPING_COLLECTION", "partner_mappings"),
		PartnerDraftCollection: envOrDefault("PARTNER_MAPPING_DRAFT_COLLECTION", "partner_mapping_drafts"),
		ResourceCollection:     envOrDefault("RESOURCE_COLLECTION", "resources"),
		Timeout:                timeout,
		Timezone:               envOrDefault("TIMEZONE", "Africa/Accra"),
		ServerLog:              log.New(os.Stdout, "[resource-mobilization-api] ", log.LstdFlags|log.Lshortfile),
		JWTConfigs:             jwtConfigs,
		JWTAudience:            jwtAudience,
		AllowedOrigins:         allowedOrigins,
		MediaBaseURL:           strings.TrimSpace(os.Getenv("MEDIA_BASE_URL")),
		StatsCacheTTL:          statsTTL,
		RecentActivityLimit:    recentLimit,
		AdminBootstrapEmail:    strings.TrimSpace(os.Getenv("ADMIN_BOOTSTRAP_EMAIL")),
		AdminBootstrapPassword: os.Getenv("ADMIN_BOOTSTRAP_PASSWORD"),
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
