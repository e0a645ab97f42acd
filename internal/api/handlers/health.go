package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Heap thresholds for the memory check, in MB.
const (
	memoryWarnMB  = 500
	memoryErrorMB = 1000
)

// HealthHandler reports process health derived from uptime and heap
// usage.
type HealthHandler struct {
	startedAt   time.Time
	version     string
	environment string
}

func NewHealthHandler(version, environment string) *HealthHandler {
	return &HealthHandler{
		startedAt:   time.Now(),
		version:     version,
		environment: environment,
	}
}

// HealthStatus is the health endpoint response body.
type HealthStatus struct {
	Status      string       `json:"status"` // healthy | degraded | unhealthy
	Timestamp   string       `json:"timestamp"`
	Uptime      int64        `json:"uptime"` // seconds
	Version     string       `json:"version"`
	Environment string       `json:"environment"`
	Checks      HealthChecks `json:"checks"`
}

type HealthChecks struct {
	API    string `json:"api"`    // ok | error
	Memory string `json:"memory"` // ok | warning | error
}

// Check handles GET /api/health. Heap above 500 MB degrades the
// status; above 1 GB the process reports unhealthy with a 503.
func (h *HealthHandler) Check(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	heapUsedMB := mem.HeapAlloc / 1024 / 1024

	memoryStatus := "ok"
	status := "healthy"
	switch {
	case heapUsedMB > memoryErrorMB:
		memoryStatus = "error"
		status = "unhealthy"
	case heapUsedMB > memoryWarnMB:
		memoryStatus = "warning"
		status = "degraded"
	}

	health := HealthStatus{
		Status:      status,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      int64(time.Since(h.startedAt).Seconds()),
		Version:     h.version,
		Environment: h.environment,
		Checks: HealthChecks{
			API:    "ok",
			Memory: memoryStatus,
		},
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.Header("Cache-Control", "no-store, no-cache, must-revalidate")
	c.JSON(statusCode, health)
}
