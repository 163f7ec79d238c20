package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acaipos/backend/internal/infrastructure/auth"
	"github.com/acaipos/backend/internal/infrastructure/config"
)

const testCookieName = "acaipos_session"

func newSessionService() *auth.SessionService {
	return auth.NewSessionService(config.SessionConfig{
		Secret:          "test-secret-key-for-session-tests",
		MaxAge:          30 * 24 * time.Hour,
		IdleTimeout:     12 * time.Hour,
		RefreshInterval: 15 * time.Minute,
		Issuer:          "acaipos-test",
	})
}

func newTestEngine(cfg SessionConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(SessionAuth(cfg))
	engine.GET("/protected", func(c *gin.Context) {
		claims := GetSessionClaims(c)
		if claims == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	engine.GET("/public", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine
}

func sessionConfig(sessions *auth.SessionService, revoker auth.SessionRevoker) SessionConfig {
	return SessionConfig{
		Sessions:   sessions,
		Revoker:    revoker,
		CookieName: testCookieName,
		Cookie:     config.CookieConfig{Path: "/", SameSite: "lax"},
		SkipPaths:  []string{"/public"},
		Logger:     zap.NewNop(),
	}
}

func issueToken(t *testing.T, sessions *auth.SessionService, now time.Time) (string, *auth.SessionClaims) {
	t.Helper()
	shiftID := uuid.New()
	token, claims, err := sessions.Issue(auth.IssueSessionInput{
		UserID:  uuid.New(),
		Name:    "Maria",
		Role:    "STAFF",
		ShiftID: &shiftID,
	}, now)
	require.NoError(t, err)
	return token, claims
}

func doRequest(engine *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSessionAuth(t *testing.T) {
	t.Run("valid cookie passes", func(t *testing.T) {
		sessions := newSessionService()
		engine := newTestEngine(sessionConfig(sessions, auth.NewInMemorySessionRevoker()))
		token, _ := issueToken(t, sessions, time.Now())

		w := doRequest(engine, "/protected", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing cookie is rejected", func(t *testing.T) {
		sessions := newSessionService()
		engine := newTestEngine(sessionConfig(sessions, auth.NewInMemorySessionRevoker()))

		w := doRequest(engine, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("skip paths bypass auth", func(t *testing.T) {
		sessions := newSessionService()
		engine := newTestEngine(sessionConfig(sessions, auth.NewInMemorySessionRevoker()))

		w := doRequest(engine, "/public", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("idle session is rejected", func(t *testing.T) {
		sessions := newSessionService()
		engine := newTestEngine(sessionConfig(sessions, auth.NewInMemorySessionRevoker()))
		// issued 13 hours ago with a 12 hour idle timeout
		token, _ := issueToken(t, sessions, time.Now().Add(-13*time.Hour))

		w := doRequest(engine, "/protected", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "SESSION_IDLE")
	})

	t.Run("revoked session is rejected", func(t *testing.T) {
		sessions := newSessionService()
		revoker := auth.NewInMemorySessionRevoker()
		engine := newTestEngine(sessionConfig(sessions, revoker))
		token, claims := issueToken(t, sessions, time.Now())

		require.NoError(t, revoker.Revoke(context.Background(), claims.ID, time.Hour))

		w := doRequest(engine, "/protected", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})

	t.Run("user-wide invalidation rejects earlier tokens", func(t *testing.T) {
		sessions := newSessionService()
		revoker := auth.NewInMemorySessionRevoker()
		engine := newTestEngine(sessionConfig(sessions, revoker))
		token, claims := issueToken(t, sessions, time.Now().Add(-time.Minute))

		require.NoError(t, revoker.RevokeUserSessions(context.Background(), claims.UserID, time.Hour))

		w := doRequest(engine, "/protected", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})

	t.Run("stale session gets a refreshed cookie", func(t *testing.T) {
		sessions := newSessionService()
		engine := newTestEngine(sessionConfig(sessions, auth.NewInMemorySessionRevoker()))
		// 30 minutes since last activity, refresh interval is 15
		token, _ := issueToken(t, sessions, time.Now().Add(-30*time.Minute))

		w := doRequest(engine, "/protected", token)
		assert.Equal(t, http.StatusOK, w.Code)

		var refreshed *http.Cookie
		for _, cookie := range w.Result().Cookies() {
			if cookie.Name == testCookieName {
				refreshed = cookie
			}
		}
		require.NotNil(t, refreshed, "expected a re-minted session cookie")
		assert.NotEqual(t, token, refreshed.Value)
		assert.True(t, refreshed.HttpOnly)
	})

	t.Run("fresh session leaves the cookie alone", func(t *testing.T) {
		sessions := newSessionService()
		engine := newTestEngine(sessionConfig(sessions, auth.NewInMemorySessionRevoker()))
		token, _ := issueToken(t, sessions, time.Now())

		w := doRequest(engine, "/protected", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("revoker failure fails open", func(t *testing.T) {
		sessions := newSessionService()
		engine := newTestEngine(sessionConfig(sessions, &failingRevoker{}))
		token, _ := issueToken(t, sessions, time.Now())

		w := doRequest(engine, "/protected", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

// failingRevoker simulates an unreachable Redis
type failingRevoker struct{}

func (f *failingRevoker) Revoke(context.Context, string, time.Duration) error {
	return errors.New("redis down")
}

func (f *failingRevoker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func (f *failingRevoker) RevokeUserSessions(context.Context, string, time.Duration) error {
	return errors.New("redis down")
}

func (f *failingRevoker) IsUserSessionInvalidated(context.Context, string, time.Time) (bool, error) {
	return false, errors.New("redis down")
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("admin passes", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/admin", func(c *gin.Context) {
			c.Set(SessionClaimsKey, &auth.SessionClaims{UserID: uuid.NewString(), Role: "ADMIN"})
		}, RequireAdmin(), handler)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("staff is rejected", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/admin", func(c *gin.Context) {
			c.Set(SessionClaimsKey, &auth.SessionClaims{UserID: uuid.NewString(), Role: "STAFF"})
		}, RequireAdmin(), handler)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRequireShift(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("session with shift passes", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/register", func(c *gin.Context) {
			c.Set(SessionClaimsKey, &auth.SessionClaims{UserID: uuid.NewString(), Role: "STAFF", ShiftID: uuid.NewString()})
		}, RequireShift(), handler)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/register", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin session without shift is rejected", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/register", func(c *gin.Context) {
			c.Set(SessionClaimsKey, &auth.SessionClaims{UserID: uuid.NewString(), Role: "ADMIN"})
		}, RequireShift(), handler)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/register", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
