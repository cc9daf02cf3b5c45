// Package cache provides caching implementations for store interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taskflow_backend/internal/feature/users/domain/entity"
	"taskflow_backend/internal/feature/users/usecase"
)

// userRecord is the cache encoding of a user. It mirrors the database
// row, hash included; it is a persistence encoding, not the entity's
// serialized view (ToMap stays hash-free).
type userRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// CachingUserStore decorates a UserStore with Redis caching.
// It implements the decorator pattern, transparently adding caching
// without modifying the underlying store.
type CachingUserStore struct {
	inner     usecase.UserStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that CachingUserStore implements usecase.UserStore.
var _ usecase.UserStore = (*CachingUserStore)(nil)

// NewCachingUserStore decorates a UserStore with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
func NewCachingUserStore(rdb *redis.Client, ttl time.Duration, inner usecase.UserStore, namespace string) *CachingUserStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserStore{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Get retrieves a user, checking the cache first then falling back to
// the underlying store. Absent users are not cached.
func (c *CachingUserStore) Get(ctx context.Context, id string) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Get(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var rec userRecord
		if err := json.Unmarshal(b, &rec); err == nil {
			if user, err := entity.Restore(rec.ID, rec.CreatedAt, rec.UpdatedAt, rec.Name, rec.Email, rec.PasswordHash); err == nil {
				return user, nil
			}
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the underlying store
	user, err := c.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	c.set(ctx, user)

	return user, nil
}

// Save writes the user through to the underlying store and refreshes the
// cache entry. The store keeps all correctness guarantees (uniqueness,
// atomic check-then-write); the cache refresh is best effort.
func (c *CachingUserStore) Save(ctx context.Context, user *entity.User) error {
	if err := c.inner.Save(ctx, user); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	c.set(ctx, user)
	return nil
}

// Delete removes the user from the underlying store and invalidates the
// cache entry.
func (c *CachingUserStore) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.rdb.Del(ctx, c.cacheKey(id)).Err() // Best effort: don't fail if cache deletion fails
	return nil
}

// set stores the cache encoding of user under its key (best effort).
func (c *CachingUserStore) set(ctx context.Context, user *entity.User) {
	rec := userRecord{
		ID:           user.ID(),
		Name:         user.Name(),
		Email:        user.Email(),
		PasswordHash: user.PasswordHash(),
		CreatedAt:    user.CreatedAt(),
		UpdatedAt:    user.UpdatedAt(),
	}
	if b, err := json.Marshal(rec); err == nil {
		_ = c.rdb.Set(ctx, c.cacheKey(user.ID()), b, c.ttl).Err()
	}
}

// cacheKey builds the cache key for a user id.
func (c *CachingUserStore) cacheKey(id string) string {
	return fmt.Sprintf("%s:%s", c.namespace, id)
}
