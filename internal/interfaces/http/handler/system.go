package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/infrastructure/persistence"
	"github.com/acaipos/backend/internal/interfaces/http/dto"
)

// SystemHandler serves liveness and readiness probes. These routes live
// outside the API group and outside session auth.
type SystemHandler struct {
	db        *persistence.Database
	startedAt time.Time
	logger    *zap.Logger
}

// NewSystemHandler creates a system handler
func NewSystemHandler(db *persistence.Database, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{db: db, startedAt: time.Now(), logger: logger}
}

// Register registers the probe routes on the engine root
func (h *SystemHandler) Register(engine *gin.Engine) {
	engine.GET("/health", h.Health)
	engine.GET("/ping", h.Ping)
}

// Ping responds without touching any dependency
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Health reports the database's reachability and pool stats
func (h *SystemHandler) Health(c *gin.Context) {
	status := "healthy"
	httpStatus := http.StatusOK

	dbHealth := gin.H{"status": "up"}
	if err := h.db.Ping(); err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
		dbHealth = gin.H{"status": "down", "error": "connection failed"}
	} else if stats, err := h.db.Stats(); err == nil {
		dbHealth["open_connections"] = stats.OpenConnections
		dbHealth["in_use"] = stats.InUse
		dbHealth["idle"] = stats.Idle
	}

	c.JSON(httpStatus, dto.NewSuccessResponse(gin.H{
		"status":   status,
		"uptime":   time.Since(h.startedAt).Round(time.Second).String(),
		"database": dbHealth,
	}))
}
