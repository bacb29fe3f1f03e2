package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/junglore/chat-engine/internal/cache"
	"github.com/junglore/chat-engine/internal/observability"
	"github.com/junglore/chat-engine/internal/storage"
)

// HealthHandler reports service and dependency health.
type HealthHandler struct {
	logger   *observability.Logger
	db       *sql.DB
	packages *storage.PackageStore
	cache    cache.Client
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger *observability.Logger, db *sql.DB, packages *storage.PackageStore, cacheClient cache.Client) *HealthHandler {
	return &HealthHandler{logger: logger, db: db, packages: packages, cache: cacheClient}
}

// DependencyReportDTO reports per-dependency connectivity.
type DependencyReportDTO struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Packages int64             `json:"package_count,omitempty"`
}

// Live handles GET /health.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "chat-engine",
	})
}

// Dependencies handles GET /health/db: pings every backing store and
// reports each one separately so a single failing dependency is visible.
func (h *HealthHandler) Dependencies(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report := DependencyReportDTO{
		Status: "healthy",
		Checks: make(map[string]string),
	}

	if err := h.db.PingContext(ctx); err != nil {
		report.Checks["postgres"] = err.Error()
		report.Status = "degraded"
	} else {
		report.Checks["postgres"] = "ok"
	}

	if err := h.packages.Ping(ctx); err != nil {
		report.Checks["mongo"] = err.Error()
		report.Status = "degraded"
	} else {
		report.Checks["mongo"] = "ok"
		if count, err := h.packages.Count(ctx); err == nil {
			report.Packages = count
		}
	}

	if err := h.cache.Ping(ctx); err != nil {
		report.Checks["cache"] = err.Error()
		report.Status = "degraded"
	} else {
		report.Checks["cache"] = "ok"
	}

	status := http.StatusOK
	if report.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}
