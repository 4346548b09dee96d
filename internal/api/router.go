package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/danielrhuynh/cs-446-ece-452/internal/api/handler"
	apimiddleware "github.com/danielrhuynh/cs-446-ece-452/internal/api/middleware"
	"github.com/danielrhuynh/cs-446-ece-452/internal/metrics"
	"github.com/danielrhuynh/cs-446-ece-452/internal/middleware"
	"github.com/danielrhuynh/cs-446-ece-452/internal/services/matchmaking"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Matchmaking *matchmaking.Controller
	// Metrics provides the /metrics handler; nil disables the endpoint
	Metrics *metrics.Collector
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(cfg.Matchmaking)

	var recorder metrics.Recorder = metrics.Nop{}
	if cfg.Metrics != nil {
		recorder = cfg.Metrics
	}

	r.Use(apimiddleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger, recorder))
	r.Use(middleware.CORS())

	// Session matchmaking routes
	sessions := r.PathPrefix("/sessions").Subrouter()
	sessions.HandleFunc("/create", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("/join", sessionHandler.Join).Methods(http.MethodPost)
	sessions.HandleFunc("/{code}", sessionHandler.Get).Methods(http.MethodGet)

	// Operational endpoints
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	// CORS preflight: match OPTIONS on every path so the CORS middleware
	// in the chain above can answer it
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
