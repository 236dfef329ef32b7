package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"procurement-system/internal/repositories"
	"procurement-system/internal/workflow"

	"go.uber.org/zap"
)

// PermissionServiceInterface is the identity/permission source for the
// workflow engine: it resolves a user id into an already-parsed Actor.
type PermissionServiceInterface interface {
	ResolveActor(ctx context.Context, userID uint64) (workflow.Actor, error)
	InvalidateActor(ctx context.Context, userID uint64) error
}

type cachedActor struct {
	IsPrimaryAdmin  bool     `json:"is_primary_admin"`
	AllowedStatuses []string `json:"allowed_statuses"`
}

type PermissionService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cacheTTL  time.Duration
}

func NewPermissionService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) PermissionServiceInterface {
	return &PermissionService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

func actorCacheKey(userID uint64) string {
	return fmt.Sprintf("actor:permissions:%d", userID)
}

// ResolveActor loads the user's admin flag and status allow-list,
// preferring the redis cache. Unknown status rows in the DB are dropped
// with a warning instead of poisoning the actor.
func (s *PermissionService) ResolveActor(ctx context.Context, userID uint64) (workflow.Actor, error) {
	if cached, err := s.cacheRepo.Get(ctx, actorCacheKey(userID)); err == nil && cached != "" {
		var c cachedActor
		if err := json.Unmarshal([]byte(cached), &c); err == nil {
			return s.buildActor(userID, c), nil
		}
		s.logger.Warn("corrupt actor cache entry, falling back to DB", zap.Uint64("userID", userID))
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return workflow.Actor{}, err
	}
	rawStatuses, err := s.userRepo.GetAllowedStatuses(ctx, userID)
	if err != nil {
		return workflow.Actor{}, err
	}

	c := cachedActor{IsPrimaryAdmin: user.IsPrimaryAdmin, AllowedStatuses: rawStatuses}
	if payload, err := json.Marshal(c); err == nil {
		if err := s.cacheRepo.Set(ctx, actorCacheKey(userID), payload, s.cacheTTL); err != nil {
			s.logger.Warn("could not cache actor permissions", zap.Error(err))
		}
	}

	return s.buildActor(userID, c), nil
}

func (s *PermissionService) buildActor(userID uint64, c cachedActor) workflow.Actor {
	statuses := make([]workflow.Status, 0, len(c.AllowedStatuses))
	for _, raw := range c.AllowedStatuses {
		status, err := workflow.ParseStatus(raw)
		if err != nil {
			s.logger.Warn("unknown status in allow-list, skipping",
				zap.Uint64("userID", userID), zap.String("status", raw))
			continue
		}
		statuses = append(statuses, status)
	}
	return workflow.NewActor(userID, c.IsPrimaryAdmin, statuses...)
}

func (s *PermissionService) InvalidateActor(ctx context.Context, userID uint64) error {
	return s.cacheRepo.Del(ctx, actorCacheKey(userID))
}
