package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/application/identity"
	"github.com/acaipos/backend/internal/interfaces/http/dto"
)

// UserHandler handles account administration. All routes are admin-only.
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
	adminOnly   gin.HandlerFunc
	logger      *zap.Logger
}

// NewUserHandler creates a user handler
func NewUserHandler(userService *identity.UserService, adminOnly gin.HandlerFunc, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, adminOnly: adminOnly, logger: logger}
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users", h.adminOnly)
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.PUT("/:id/pin", h.ChangePin)
		users.PUT("/:id/active", h.SetActive)
	}
}

// CreateUser creates a staff or admin account
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Name, PIN and role are required")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), identity.CreateUserInput{
		Name: req.Name,
		Pin:  req.Pin,
		Role: req.Role,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// ListUsers lists all accounts, active and inactive
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// ChangePin replaces a user's PIN. Existing sessions for the user are
// invalidated by the service.
func (h *UserHandler) ChangePin(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req dto.ChangePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "New PIN is required")
		return
	}

	if err := h.userService.ChangePin(c.Request.Context(), identity.ChangePinInput{
		UserID: userID,
		NewPin: req.NewPin,
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"changed": true})
}

// SetActive activates or deactivates an account
func (h *UserHandler) SetActive(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		h.BadRequest(c, "Active flag is required")
		return
	}

	if err := h.userService.SetActive(c.Request.Context(), userID, *req.Active); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"active": *req.Active})
}
