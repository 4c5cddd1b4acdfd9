package httpserver

import (
	"net/http"
	"time"

	"github.com/yndnr/memkv/internal/infra/buildinfo"
	"github.com/yndnr/memkv/internal/telemetry/logger"
	"github.com/yndnr/memkv/internal/telemetry/metric"
)

// RouterConfig holds configuration for the admin router.
type RouterConfig struct {
	// RunID identifies this server process.
	RunID string

	// Metrics backs /metrics. Nil serves 404 on that path.
	Metrics *metric.Registry

	// Logger for request logging.
	Logger logger.Logger
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	RunID   string `json:"run_id"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// NewRouter creates the admin router.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:  "healthy",
			RunID:   cfg.RunID,
			Version: buildinfo.Version,
			Time:    time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	return Chain(mux, RequestID(), Recover(log), AccessLog(log))
}
