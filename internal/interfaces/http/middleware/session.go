package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/infrastructure/auth"
	"github.com/acaipos/backend/internal/infrastructure/config"
	"github.com/acaipos/backend/internal/interfaces/http/dto"
)

// Session context keys
const (
	SessionClaimsKey = "session_claims"
)

// SessionConfig holds configuration for the session middleware
type SessionConfig struct {
	// Sessions validates and re-mints tokens
	Sessions *auth.SessionService
	// Revoker is checked on every request; logout and shift closing kill
	// tokens before their hard expiry
	Revoker auth.SessionRevoker
	// CookieName is the session cookie's name
	CookieName string
	// Cookie carries the cookie attributes used when re-minting
	Cookie config.CookieConfig
	// SkipPaths are paths that don't require a session
	SkipPaths []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// SessionAuth authenticates requests from the session cookie. Valid sessions
// get their last-active mark refreshed on a sliding window: the re-minted
// token rides back on the response as a new cookie.
func SessionAuth(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			abortUnauthorized(c, cfg, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		now := time.Now()
		claims, err := cfg.Sessions.Validate(token, now)
		if err != nil {
			code := dto.ErrCodeUnauthorized
			message := "Invalid session"
			switch err {
			case auth.ErrExpiredToken:
				code = dto.ErrCodeTokenExpired
				message = "Session has expired"
			case auth.ErrSessionIdle:
				code = dto.ErrCodeSessionIdle
				message = "Session timed out, log in again"
			}
			abortUnauthorized(c, cfg, code, message)
			return
		}

		ctx := c.Request.Context()
		if revoked, err := cfg.Revoker.IsRevoked(ctx, claims.ID); err != nil {
			// Fail open: a dead Redis must not lock the till
			if cfg.Logger != nil {
				cfg.Logger.Error("Failed to check session revocation",
					zap.String("jti", claims.ID), zap.Error(err))
			}
		} else if revoked {
			abortUnauthorized(c, cfg, dto.ErrCodeTokenRevoked, "Session has been revoked")
			return
		}

		if invalidated, err := cfg.Revoker.IsUserSessionInvalidated(ctx, claims.UserID, claims.IssuedAt.Time); err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("Failed to check user session invalidation",
					zap.String("user_id", claims.UserID), zap.Error(err))
			}
		} else if invalidated {
			abortUnauthorized(c, cfg, dto.ErrCodeTokenRevoked, "Session has been invalidated")
			return
		}

		if cfg.Sessions.NeedsRefresh(claims, now) {
			refreshedToken, refreshed, err := cfg.Sessions.Refresh(claims, now)
			if err == nil {
				claims = refreshed
				setSessionCookie(c, cfg, refreshedToken, claims)
			} else if cfg.Logger != nil {
				cfg.Logger.Warn("Failed to refresh session", zap.Error(err))
			}
		}

		c.Set(SessionClaimsKey, claims)
		c.Next()
	}
}

// setSessionCookie writes the session cookie with the remaining hard TTL
func setSessionCookie(c *gin.Context, cfg SessionConfig, token string, claims *auth.SessionClaims) {
	maxAge := int(claims.GetRemainingTTL().Seconds())
	c.SetSameSite(cfg.Cookie.SameSiteMode())
	c.SetCookie(cfg.CookieName, token, maxAge, cfg.Cookie.Path, cfg.Cookie.Domain, cfg.Cookie.Secure, true)
}

func abortUnauthorized(c *gin.Context, cfg SessionConfig, code, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Session authentication failed",
			zap.String("code", code),
			zap.String("path", c.Request.URL.Path),
		)
	}
	status := dto.GetHTTPStatus(code)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, message))
}

// RequireAdmin rejects requests whose session does not carry the ADMIN role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetSessionClaims(c)
		if claims == nil || !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin access required"))
			return
		}
		c.Next()
	}
}

// RequireShift rejects requests whose session carries no shift claim.
// Staff sessions always carry one; admin sessions never do, so register
// operations are staff-only by construction.
func RequireShift() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetSessionClaims(c)
		if claims == nil || claims.ShiftID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "An open shift is required"))
			return
		}
		c.Next()
	}
}

// GetSessionClaims retrieves session claims from gin.Context, nil when absent
func GetSessionClaims(c *gin.Context) *auth.SessionClaims {
	if claims, exists := c.Get(SessionClaimsKey); exists {
		if sessionClaims, ok := claims.(*auth.SessionClaims); ok {
			return sessionClaims
		}
	}
	return nil
}
