package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"procurement-system/internal/entities"
	"procurement-system/internal/services"
	"procurement-system/internal/workflow"
	apperrors "procurement-system/pkg/errors"
)

type fakeUserRepo struct {
	users    map[uint64]*entities.User
	statuses map[uint64][]string
	findByID int
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	f.findByID++
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Login == login {
			return user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) GetAllowedStatuses(ctx context.Context, userID uint64) ([]string, error) {
	return f.statuses[userID], nil
}

type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{store: make(map[string]string)} }

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return f.store[key], nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.store[key] = string(v)
	case string:
		f.store[key] = v
	}
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.store, key)
	}
	return nil
}

func TestPermissionService_ResolveActor(t *testing.T) {
	logger := zap.NewNop()

	t.Run("loads from repository and caches the result", func(t *testing.T) {
		repo := &fakeUserRepo{
			users:    map[uint64]*entities.User{7: {ID: 7, Login: "reviewer"}},
			statuses: map[uint64][]string{7: {"in_review", "pending"}},
		}
		cache := newFakeCache()
		svc := services.NewPermissionService(repo, cache, logger, time.Minute)

		actor, err := svc.ResolveActor(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), actor.UserID)
		assert.False(t, actor.IsPrimaryAdmin)
		assert.True(t, actor.AllowedStatuses[workflow.StatusInReview])
		assert.True(t, actor.AllowedStatuses[workflow.StatusPending])
		assert.Equal(t, 1, repo.findByID)

		// second resolve is served from cache
		_, err = svc.ResolveActor(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.findByID)
	})

	t.Run("admin flag survives the cache round trip", func(t *testing.T) {
		repo := &fakeUserRepo{
			users: map[uint64]*entities.User{1: {ID: 1, Login: "admin", IsPrimaryAdmin: true}},
		}
		cache := newFakeCache()
		svc := services.NewPermissionService(repo, cache, logger, time.Minute)

		for i := 0; i < 2; i++ {
			actor, err := svc.ResolveActor(context.Background(), 1)
			require.NoError(t, err)
			assert.True(t, actor.IsPrimaryAdmin)
		}
		assert.Equal(t, 1, repo.findByID)
	})

	t.Run("unknown statuses in the allow-list are dropped", func(t *testing.T) {
		repo := &fakeUserRepo{
			users:    map[uint64]*entities.User{2: {ID: 2, Login: "buyer"}},
			statuses: map[uint64][]string{2: {"in_progress", "shipped"}},
		}
		svc := services.NewPermissionService(repo, newFakeCache(), logger, time.Minute)

		actor, err := svc.ResolveActor(context.Background(), 2)
		require.NoError(t, err)
		assert.True(t, actor.AllowedStatuses[workflow.StatusInProgress])
		assert.Len(t, actor.AllowedStatuses, 1)
	})

	t.Run("unknown user propagates not found", func(t *testing.T) {
		svc := services.NewPermissionService(&fakeUserRepo{users: map[uint64]*entities.User{}}, newFakeCache(), logger, time.Minute)

		_, err := svc.ResolveActor(context.Background(), 42)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("invalidate clears the cached entry", func(t *testing.T) {
		repo := &fakeUserRepo{
			users: map[uint64]*entities.User{3: {ID: 3, Login: "ops"}},
		}
		cache := newFakeCache()
		svc := services.NewPermissionService(repo, cache, logger, time.Minute)

		_, err := svc.ResolveActor(context.Background(), 3)
		require.NoError(t, err)
		require.NoError(t, svc.InvalidateActor(context.Background(), 3))

		_, err = svc.ResolveActor(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, 2, repo.findByID)
	})
}
