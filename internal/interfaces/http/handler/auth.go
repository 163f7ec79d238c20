package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/application/identity"
	"github.com/acaipos/backend/internal/infrastructure/config"
	"github.com/acaipos/backend/internal/interfaces/http/dto"
)

// AuthHandler handles PIN login and logout. The session rides in an
// HTTP-only cookie; the token never appears in a response body.
type AuthHandler struct {
	BaseHandler
	authService  *identity.AuthService
	cookieName   string
	cookie       config.CookieConfig
	loginLimiter gin.HandlerFunc
	logger       *zap.Logger
}

// NewAuthHandler creates an auth handler. loginLimiter guards the login
// endpoint only and may be nil.
func NewAuthHandler(
	authService *identity.AuthService,
	cookieName string,
	cookie config.CookieConfig,
	loginLimiter gin.HandlerFunc,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieName:   cookieName,
		cookie:       cookie,
		loginLimiter: loginLimiter,
		logger:       logger,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		if h.loginLimiter != nil {
			auth.POST("/login", h.loginLimiter, h.Login)
		} else {
			auth.POST("/login", h.Login)
		}
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
	}
}

type loginResponse struct {
	User      identity.UserInfo `json:"user"`
	ShiftID   *string           `json:"shift_id,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// Login authenticates by name and PIN and sets the session cookie.
// Staff logins open (or rejoin) today's shift; the shift ID rides in the
// session and comes back in the response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Name and PIN are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Name: req.Name,
		Pin:  req.Pin,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetSameSite(h.cookie.SameSiteMode())
	c.SetCookie(h.cookieName, result.Token, maxAge, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)

	resp := loginResponse{User: result.User, ExpiresAt: result.ExpiresAt}
	if result.ShiftID != nil {
		id := result.ShiftID.String()
		resp.ShiftID = &id
	}
	h.Success(c, resp)
}

// Logout revokes the current session and clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		h.Unauthorized(c, "Invalid session")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		UserID:   userID,
		TokenJTI: claims.ID,
		TokenTTL: claims.GetRemainingTTL(),
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	c.SetSameSite(h.cookie.SameSiteMode())
	c.SetCookie(h.cookieName, "", -1, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
	h.Success(c, gin.H{"logged_out": true})
}

// Me returns the authenticated session's identity
func (h *AuthHandler) Me(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp := gin.H{
		"user_id": claims.UserID,
		"name":    claims.Name,
		"role":    claims.Role,
	}
	if claims.ShiftID != "" {
		resp["shift_id"] = claims.ShiftID
	}
	h.Success(c, resp)
}
