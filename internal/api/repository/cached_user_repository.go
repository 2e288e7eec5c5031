package repository

import (
	"context"
	"ctchen222/Exercise-Tracker/internal/api/models"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

type cachedUserRepository struct {
	next UserRepository
	rdb  *redis.Client
	ttl  time.Duration
}

// NewCachedUserRepository wraps next with a Redis read-through cache for
// lookups by id. Users are immutable, so entries only ever expire. Cache
// failures are logged and fall through to next.
func NewCachedUserRepository(next UserRepository, rdb *redis.Client, ttl time.Duration) UserRepository {
	return &cachedUserRepository{next: next, rdb: rdb, ttl: ttl}
}

const fieldUsername = "username"

func userKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

// CreateUser stores the user and primes the cache.
func (r *cachedUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.next.CreateUser(ctx, user); err != nil {
		return err
	}
	r.store(ctx, user)
	return nil
}

// GetUserByID serves from Redis when possible.
func (r *cachedUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "CachedUserRepository.GetUserByID")
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, userKey(id)).Result()
	switch {
	case err != nil:
		slog.WarnContext(ctx, "user cache lookup failed", "user.id", id, "error", err)
	case data[fieldUsername] != "":
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return &models.User{ID: id, Username: data[fieldUsername]}, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	user, err := r.next.GetUserByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}
	r.store(ctx, user)
	return user, nil
}

// ListUsers always reads through to the store.
func (r *cachedUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	return r.next.ListUsers(ctx)
}

func (r *cachedUserRepository) store(ctx context.Context, user *models.User) {
	key := userKey(user.ID)
	pipe := r.rdb.Pipeline()
	pipe.HSet(ctx, key, fieldUsername, user.Username)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.WarnContext(ctx, "failed to cache user", "user.id", user.ID, "error", err)
	}
}
