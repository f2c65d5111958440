package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/skillsnap.net/internal/core/ports/primary"
	"gitlab.com/skillsnap.net/internal/core/services/pipeline"
	"gitlab.com/skillsnap.net/internal/handlers/response"
)

const (
	ServiceName    = "SkillSnap API"
	ServiceVersion = "1.0.0"
	serviceTagline = "Defying the gravity of traditional gatekeeping with AI-verified skill proof"
)

// SystemHandler serves the service info and health endpoints
type SystemHandler struct {
	pipeline pipeline.IPipelineService
	logger   primary.Logger
	now      func() time.Time
}

func NewSystemHandler(pipeline pipeline.IPipelineService, logger primary.Logger) *SystemHandler {
	return &SystemHandler{
		pipeline: pipeline,
		logger:   logger,
		now:      time.Now,
	}
}

func (h *SystemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.Root).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/health", h.Health).Methods(http.MethodGet, http.MethodOptions)
}

type InfoResponse struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
	Version string `json:"version"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, InfoResponse{
		Name:    ServiceName,
		Tagline: serviceTagline,
		Version: ServiceVersion,
	})
}

// Health always answers 200; reachability is reported per dependency
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.pipeline.HealthCheck(r.Context())

	resp := HealthResponse{
		Status:    "healthy",
		Database:  "disconnected",
		Cache:     "disabled",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	}
	if status.StoreReachable {
		resp.Database = "connected"
	}
	if status.CacheEnabled {
		resp.Cache = "disconnected"
		if status.CacheReachable {
			resp.Cache = "connected"
		}
	}

	response.WriteSuccess(w, resp)
}
