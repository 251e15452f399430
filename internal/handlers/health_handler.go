package handlers

import (
	"net/http"

	"assetboard/internal/database"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	db *database.Database
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse is the health probe body
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// GetHealth godoc
// @Summary Health check
// @Description Reports service and database health
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(); err != nil {
		respondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Database: "unreachable"})
		return
	}
	respondWithJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Database: "ok"})
}
