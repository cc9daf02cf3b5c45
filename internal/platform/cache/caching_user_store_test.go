package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"taskflow_backend/internal/feature/users/domain"
	"taskflow_backend/internal/feature/users/domain/entity"
)

// mockUserStore is a mock UserStore implementation for testing.
type mockUserStore struct {
	getFn    func(ctx context.Context, id string) (*entity.User, error)
	saveFn   func(ctx context.Context, user *entity.User) error
	deleteFn func(ctx context.Context, id string) error
}

// Get calls the mock's get function.
func (m *mockUserStore) Get(ctx context.Context, id string) (*entity.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// Save calls the mock's save function.
func (m *mockUserStore) Save(ctx context.Context, user *entity.User) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, user)
	}
	return nil
}

// Delete calls the mock's delete function.
func (m *mockUserStore) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// testUser builds the entity used across cache tests.
func testUser(t *testing.T) *entity.User {
	t.Helper()

	u, err := entity.Restore("id-1", "2025-05-01 22:00:00", "2025-05-02 18:12:00",
		"testuser", "testemail@example.com", "$2a$10$testhashtesthashtesthashte")
	if err != nil {
		t.Fatalf("failed to build test user: %v", err)
	}
	return u
}

// testRecordJSON returns the cache encoding of the test user.
func testRecordJSON(t *testing.T) []byte {
	t.Helper()

	u := testUser(t)
	b, err := json.Marshal(userRecord{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	})
	if err != nil {
		t.Fatalf("failed to marshal record: %v", err)
	}
	return b
}

// TestNewCachingUserStore_Defaults verifies the TTL and namespace defaults.
func TestNewCachingUserStore_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "users",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "users",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := NewCachingUserStore(nil, tt.ttl, &mockUserStore{}, tt.namespace)

			if store.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, store.ttl)
			}
			if store.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, store.namespace)
			}
		})
	}
}

// TestCachingUserStore_Get_NilRedis verifies the cache is bypassed when
// Redis is not configured.
func TestCachingUserStore_Get_NilRedis(t *testing.T) {
	t.Parallel()

	expected := testUser(t)
	inner := &mockUserStore{
		getFn: func(ctx context.Context, id string) (*entity.User, error) {
			return expected, nil
		},
	}

	store := NewCachingUserStore(nil, 5*time.Minute, inner, "users")

	user, err := store.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != expected {
		t.Error("expected the inner store's user")
	}
}

// TestCachingUserStore_Get_CacheHit verifies a hit returns the cached
// user without calling the inner store.
func TestCachingUserStore_Get_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("users:id-1").SetVal(string(testRecordJSON(t)))

	innerCalled := false
	inner := &mockUserStore{
		getFn: func(ctx context.Context, id string) (*entity.User, error) {
			innerCalled = true
			return nil, nil
		},
	}

	store := NewCachingUserStore(rdb, 5*time.Minute, inner, "users")
	user, err := store.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner store should not be called on cache hit")
	}
	if user.Email() != "testemail@example.com" {
		t.Errorf("unexpected email: %q", user.Email())
	}
	if user.PasswordHash() == "" {
		t.Error("cached user must keep its hash")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingUserStore_Get_CacheMiss verifies a miss falls back to the
// inner store and populates the cache.
func TestCachingUserStore_Get_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := testUser(t)

	// Cache miss
	mock.ExpectGet("users:id-1").RedisNil()
	// Set cache after fetching from inner
	mock.ExpectSet("users:id-1", testRecordJSON(t), 5*time.Minute).SetVal("OK")

	inner := &mockUserStore{
		getFn: func(ctx context.Context, id string) (*entity.User, error) {
			return expected, nil
		},
	}

	store := NewCachingUserStore(rdb, 5*time.Minute, inner, "users")
	user, err := store.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != expected {
		t.Error("expected the inner store's user")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingUserStore_Get_CorruptedEntry verifies a corrupted cache
// entry is deleted and the lookup falls through to the inner store.
func TestCachingUserStore_Get_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := testUser(t)

	mock.ExpectGet("users:id-1").SetVal("not-json")
	mock.ExpectDel("users:id-1").SetVal(1)
	mock.ExpectSet("users:id-1", testRecordJSON(t), 5*time.Minute).SetVal("OK")

	inner := &mockUserStore{
		getFn: func(ctx context.Context, id string) (*entity.User, error) {
			return expected, nil
		},
	}

	store := NewCachingUserStore(rdb, 5*time.Minute, inner, "users")
	user, err := store.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != expected {
		t.Error("expected the inner store's user")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingUserStore_Get_InnerError verifies inner store errors
// propagate and absent users are not cached.
func TestCachingUserStore_Get_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("users:id-1").RedisNil()

	inner := &mockUserStore{
		getFn: func(ctx context.Context, id string) (*entity.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	store := NewCachingUserStore(rdb, 5*time.Minute, inner, "users")
	_, err := store.Get(context.Background(), "id-1")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingUserStore_Save verifies a successful save refreshes the
// cache entry and a failed save leaves the cache alone.
func TestCachingUserStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("write-through on success", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		mock.ExpectSet("users:id-1", testRecordJSON(t), 5*time.Minute).SetVal("OK")

		saved := false
		inner := &mockUserStore{
			saveFn: func(ctx context.Context, user *entity.User) error {
				saved = true
				return nil
			},
		}

		store := NewCachingUserStore(rdb, 5*time.Minute, inner, "users")
		if err := store.Save(context.Background(), testUser(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !saved {
			t.Error("inner store was not called")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled mock expectations: %v", err)
		}
	})

	t.Run("conflict skips the cache", func(t *testing.T) {
		t.Parallel()

		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		conflict := domain.NewValidationError("'email' value 'testemail@example.com' already exists. Must provide a unique value.")
		inner := &mockUserStore{
			saveFn: func(ctx context.Context, user *entity.User) error {
				return conflict
			},
		}

		store := NewCachingUserStore(rdb, 5*time.Minute, inner, "users")
		err := store.Save(context.Background(), testUser(t))

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled mock expectations: %v", err)
		}
	})
}

// TestCachingUserStore_Delete verifies the cache entry is invalidated
// after the inner delete.
func TestCachingUserStore_Delete(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("users:id-1").SetVal(1)

	deleted := false
	inner := &mockUserStore{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}

	store := NewCachingUserStore(rdb, 5*time.Minute, inner, "users")
	if err := store.Delete(context.Background(), "id-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("inner store was not called")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
