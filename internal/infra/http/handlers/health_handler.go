package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

type HealthHandler struct {
	DB      *sql.DB
	Version string
}

func NewHealthHandler(db *sql.DB, version string) *HealthHandler {
	return &HealthHandler{DB: db, Version: version}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, overall, dbStatus := http.StatusOK, "ok", "up"
	if err := h.DB.PingContext(ctx); err != nil {
		status, overall, dbStatus = http.StatusServiceUnavailable, "degraded", "down"
	}

	writeJSON(w, status, map[string]string{
		"status":   overall,
		"version":  h.Version,
		"database": dbStatus,
	})
}
