// Package redis implements Redis-backed session storage.
//
// Session tokens are opaque random strings stored as keys with a TTL; the
// value is the user ID. Token resolution is a single GET, revocation a DEL,
// and sliding expiration an EXPIRE. Nothing here survives a Redis flush,
// which is exactly the durability sessions need.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lingua-hub/lingua-backend/internal/application/auth"
	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// PoolSize is the maximum number of socket connections.
	PoolSize int

	// MinIdleConns is the minimum number of idle connections.
	MinIdleConns int

	// MaxRetries is the maximum number of retries before giving up.
	MaxRetries int

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         6379,
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrConnection is returned when the Redis connection fails.
	ErrConnection = errors.New("redis: connection failed")

	// ErrInvalidTTL is returned when a non-positive TTL is provided.
	ErrInvalidTTL = errors.New("redis: invalid TTL")
)

// PrefixSession namespaces the session token keys.
const PrefixSession = "session:"

// ══════════════════════════════════════════════════════════════════════════════
// TOKEN STORE
// ══════════════════════════════════════════════════════════════════════════════

// TokenStore implements auth.TokenStore on Redis.
type TokenStore struct {
	client *redis.Client
	config Config
}

var _ auth.TokenStore = (*TokenStore)(nil)

// NewTokenStore creates a new TokenStore and verifies the connection.
func NewTokenStore(cfg Config) (*TokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	return &TokenStore{client: client, config: cfg}, nil
}

// Client returns the underlying Redis client.
func (s *TokenStore) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection.
func (s *TokenStore) Close() error {
	return s.client.Close()
}

// Ping checks the Redis connection.
func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Issue creates a new opaque token for the user with the given TTL.
func (s *TokenStore) Issue(ctx context.Context, userID user.ID, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, PrefixSession+token, userID.String(), ttl).Err(); err != nil {
		return "", fmt.Errorf("redis: failed to store token: %w", err)
	}

	return token, nil
}

// Resolve returns the user ID the token belongs to.
func (s *TokenStore) Resolve(ctx context.Context, token string) (user.ID, error) {
	val, err := s.client.Get(ctx, PrefixSession+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shared.ErrTokenNotFound
		}
		return "", fmt.Errorf("redis: failed to resolve token: %w", err)
	}

	return user.ID(val), nil
}

// Refresh extends the token's TTL (sliding expiration).
func (s *TokenStore) Refresh(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	ok, err := s.client.Expire(ctx, PrefixSession+token, ttl).Result()
	if err != nil {
		return fmt.Errorf("redis: failed to refresh token: %w", err)
	}
	if !ok {
		return shared.ErrTokenNotFound
	}

	return nil
}

// Revoke deletes the token.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	deleted, err := s.client.Del(ctx, PrefixSession+token).Result()
	if err != nil {
		return fmt.Errorf("redis: failed to revoke token: %w", err)
	}
	if deleted == 0 {
		return shared.ErrTokenNotFound
	}

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ID GENERATOR
// ══════════════════════════════════════════════════════════════════════════════

// UUIDGenerator implements auth.IDGenerator with random UUIDs.
type UUIDGenerator struct{}

var _ auth.IDGenerator = UUIDGenerator{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
