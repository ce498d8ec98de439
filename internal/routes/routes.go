package routes

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-kit/log"

	"campaignhub/internal/config"
	"campaignhub/internal/handlers"
	"campaignhub/internal/metrics"
	"campaignhub/internal/middleware"
)

// Dependencies is everything the router needs, built once in main.
type Dependencies struct {
	Config       *config.Config
	DB           *sql.DB
	Logger       log.Logger
	Metrics      *metrics.Metrics
	Users        handlers.UserService
	Advertisers  handlers.AdvertiserService
	Influencers  handlers.InfluencerService
	Campaigns    handlers.CampaignService
	Applications handlers.ApplicationService
	// Checks are extra health probes such as the redis ping, keyed by name.
	Checks map[string]func(context.Context) error
}

func SetupRoutes(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(deps.Config),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "campaignhub api", "version": deps.Config.ServiceVersion})
	})
	r.Get("/health", healthHandler(deps))
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}
	RegisterSwaggerRoutes(r)

	v := handlers.NewValidator()
	auth := middleware.JWTAuth(deps.Config.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		RegisterUserRoutes(r, deps, v, auth)
		RegisterAdvertiserRoutes(r, deps, v, auth)
		RegisterInfluencerRoutes(r, deps, v, auth)
		RegisterCampaignRoutes(r, deps, v, auth)
		RegisterApplicationRoutes(r, deps, v, auth)
	})

	return r
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

type checkResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func healthHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]any{"status": "ok"}

		run := func(name string, check func(context.Context) error) {
			res := checkResult{Status: "ok"}
			if err := check(ctx); err != nil {
				res = checkResult{Status: "down", Error: err.Error()}
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
			}
			deps.Metrics.SetHealthCheckStatus(name, res.Status == "ok")
			body[name] = res
		}

		run("db", deps.DB.PingContext)
		for name, check := range deps.Checks {
			run(name, check)
		}
		writeJSON(w, status, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type authMiddleware = func(http.Handler) http.Handler
