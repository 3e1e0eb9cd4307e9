package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glint-vision/chromafind/internal/active"
	"github.com/glint-vision/chromafind/internal/detector"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	store          *active.Store
	corsOrigin     string
	maxUploadMB    int64
	timeoutSec     int
	overlayEnabled bool
}

// Config holds server configuration.
type Config struct {
	Host           string
	Port           int
	CORSOrigin     string
	MaxUploadMB    int64
	TimeoutSec     int
	OverlayEnabled bool
	Detection      detector.Config
}

// Response types for API endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

type DetectResponse struct {
	Success bool                    `json:"success"`
	Result  *detector.RunResultJSON `json:"result,omitempty"`
	Overlay string                  `json:"overlay,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

type ConfigUpdateResponse struct {
	Success bool   `json:"success"`
	Rule    string `json:"rule,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewServer creates a new detection server instance. The detection
// configuration is validated before the server is handed out.
func NewServer(config Config) (*Server, error) {
	if err := detector.ValidateConfig(config.Detection); err != nil {
		return nil, err
	}
	return &Server{
		store:          active.NewStore(config.Detection),
		corsOrigin:     config.CORSOrigin,
		maxUploadMB:    config.MaxUploadMB,
		timeoutSec:     config.TimeoutSec,
		overlayEnabled: config.OverlayEnabled,
	}, nil
}

// Store exposes the live configuration store, mainly for tests.
func (s *Server) Store() *active.Store { return s.store }

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/detect", s.corsMiddleware(s.detectHandler))
	mux.HandleFunc("/config", s.corsMiddleware(s.configHandler))
	mux.HandleFunc("/ws", s.detectWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
