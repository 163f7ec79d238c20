package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRevoker invalidates session tokens before their hard expiry:
// logout, and the forced re-login after a shift closes.
type SessionRevoker interface {
	// Revoke blacklists a session token by its JTI
	// ttl should be set to the remaining time until token expiration
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked checks if a session token's JTI has been revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeUserSessions invalidates every session of a user (PIN reset,
	// deactivation). Tokens issued before the invalidation mark are rejected.
	RevokeUserSessions(ctx context.Context, userID string, ttl time.Duration) error

	// IsUserSessionInvalidated checks if a token was issued before the
	// user's invalidation mark
	IsUserSessionInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

// RedisSessionRevoker implements SessionRevoker using Redis
type RedisSessionRevoker struct {
	client    *redis.Client
	keyPrefix string
}

// RedisSessionRevokerConfig holds Redis connection settings for the revoker
type RedisSessionRevokerConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisSessionRevoker creates a Redis-backed session revoker
func NewRedisSessionRevoker(cfg RedisSessionRevokerConfig) (*RedisSessionRevoker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis for session revoker: %w", err)
	}

	return &RedisSessionRevoker{
		client:    client,
		keyPrefix: "session:revoked:",
	}, nil
}

// NewRedisSessionRevokerWithClient creates a revoker with an existing Redis client
func NewRedisSessionRevokerWithClient(client *redis.Client) *RedisSessionRevoker {
	return &RedisSessionRevoker{
		client:    client,
		keyPrefix: "session:revoked:",
	}
}

func (r *RedisSessionRevoker) jtiKey(jti string) string {
	return r.keyPrefix + "jti:" + jti
}

func (r *RedisSessionRevoker) userKey(userID string) string {
	return r.keyPrefix + "user:" + userID
}

// Revoke blacklists a session token by its JTI
func (r *RedisSessionRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// IsRevoked checks if a session token's JTI has been revoked
func (r *RedisSessionRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return exists > 0, nil
}

// RevokeUserSessions stores the current timestamp as an invalidation mark;
// any token issued at or before it is rejected
func (r *RedisSessionRevoker) RevokeUserSessions(ctx context.Context, userID string, ttl time.Duration) error {
	invalidationTime := time.Now().Unix()
	if err := r.client.Set(ctx, r.userKey(userID), invalidationTime, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke user sessions: %w", err)
	}
	return nil
}

// IsUserSessionInvalidated checks if a token was issued before the user's invalidation mark
func (r *RedisSessionRevoker) IsUserSessionInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	invalidationTimeStr, err := r.client.Get(ctx, r.userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user session invalidation: %w", err)
	}

	var invalidationTime int64
	if _, err := fmt.Sscanf(invalidationTimeStr, "%d", &invalidationTime); err != nil {
		return false, fmt.Errorf("failed to parse invalidation timestamp: %w", err)
	}

	return tokenIssuedAt.Unix() <= invalidationTime, nil
}

// Close closes the Redis client
func (r *RedisSessionRevoker) Close() error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (r *RedisSessionRevoker) GetClient() *redis.Client {
	return r.client
}

var _ SessionRevoker = (*RedisSessionRevoker)(nil)

// InMemorySessionRevoker provides an in-memory implementation for testing
// WARNING: This should not be used in production with multiple instances
type InMemorySessionRevoker struct {
	mu                    sync.RWMutex
	revokedJTIs           map[string]time.Time // JTI -> expiration time
	userInvalidationTimes map[string]time.Time // userID -> invalidation time
}

// NewInMemorySessionRevoker creates a new in-memory session revoker
func NewInMemorySessionRevoker() *InMemorySessionRevoker {
	return &InMemorySessionRevoker{
		revokedJTIs:           make(map[string]time.Time),
		userInvalidationTimes: make(map[string]time.Time),
	}
}

// Revoke adds a session token's JTI to the in-memory set
func (r *InMemorySessionRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revokedJTIs[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked checks if a JTI is revoked (and not expired)
func (r *InMemorySessionRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiration, exists := r.revokedJTIs[jti]
	if !exists {
		return false, nil
	}
	if time.Now().After(expiration) {
		delete(r.revokedJTIs, jti)
		return false, nil
	}
	return true, nil
}

// RevokeUserSessions invalidates all sessions of a user
func (r *InMemorySessionRevoker) RevokeUserSessions(_ context.Context, userID string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userInvalidationTimes[userID] = time.Now()
	return nil
}

// IsUserSessionInvalidated checks if a token predates the user's invalidation mark
func (r *InMemorySessionRevoker) IsUserSessionInvalidated(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invalidationTime, exists := r.userInvalidationTimes[userID]
	if !exists {
		return false, nil
	}

	// UnixNano for sub-second precision in tests
	return tokenIssuedAt.UnixNano() <= invalidationTime.UnixNano(), nil
}

var _ SessionRevoker = (*InMemorySessionRevoker)(nil)
