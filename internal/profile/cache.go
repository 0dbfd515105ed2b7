package profile

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	platformredis "veripass/internal/platform/redis"
)

const (
	cacheKey = "veripass:profiles:all"
	cacheTTL = 5 * time.Minute
)

// CachedStore is a Redis read-through decorator over a Store. ListAll is the
// hot path of every verification run; a short TTL keeps dashboard edits
// visible without hammering the database. Cache errors degrade to the
// underlying store, never fail the caller.
type CachedStore struct {
	Store
	redis  *platformredis.Client
	logger *slog.Logger
}

func NewCachedStore(store Store, redis *platformredis.Client, logger *slog.Logger) *CachedStore {
	return &CachedStore{Store: store, redis: redis, logger: logger}
}

func (s *CachedStore) ListAll(ctx context.Context) ([]Profile, error) {
	if cached, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
		var profiles []Profile
		if err := json.Unmarshal(cached, &profiles); err == nil {
			return profiles, nil
		}
		// Corrupt entry: fall through and let the refresh overwrite it.
	}

	profiles, err := s.Store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(profiles); err == nil {
		if err := s.redis.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
			s.logger.WarnContext(ctx, "profile cache write failed", "error", err)
		}
	}
	return profiles, nil
}

func (s *CachedStore) Create(ctx context.Context, p Profile) error {
	if err := s.Store.Create(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedStore) invalidate(ctx context.Context) {
	if err := s.redis.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.WarnContext(ctx, "profile cache invalidation failed", "error", err)
	}
}
