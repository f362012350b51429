package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoavn/devfolio/internal/domain/profile"
	"github.com/khoavn/devfolio/pkg/logger"
)

const profileCacheKeyPrefix = "profile:"

// ProfileCacheKey is the Redis key a profile is cached under. The worker
// uses it for event-driven invalidation.
func ProfileCacheKey(id uuid.UUID) string {
	return profileCacheKeyPrefix + id.String()
}

// cachedProfileRepo is a read-through cache over any Repository. Only
// GetByID is cached; writes invalidate. Cache failures are logged, never
// surfaced: the inner store stays the source of truth.
type cachedProfileRepo struct {
	inner  profile.Repository
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedProfileRepo(inner profile.Repository, rdb *redis.Client, ttl time.Duration, logger logger.Logger) profile.Repository {
	return &cachedProfileRepo{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func (r *cachedProfileRepo) Create(ctx context.Context, p *profile.DeveloperProfile) (*profile.DeveloperProfile, error) {
	created, err := r.inner.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, p.ID())
	return created, nil
}

func (r *cachedProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*profile.DeveloperProfile, error) {
	key := ProfileCacheKey(id)

	payload, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var rec profileRecord
		if jsonErr := json.Unmarshal(payload, &rec); jsonErr == nil {
			if p, mapErr := rec.toDomain(); mapErr == nil {
				return p, nil
			}
		}
		// Unreadable entry: drop it and fall through to the store.
		r.invalidate(ctx, id)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("profile cache read failed", zap.String("key", key), zap.Error(err))
	}

	p, err := r.inner.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	if payload, jsonErr := json.Marshal(newProfileRecord(p)); jsonErr == nil {
		if setErr := r.rdb.Set(ctx, key, payload, r.ttl).Err(); setErr != nil {
			r.logger.Warn("profile cache write failed", zap.String("key", key), zap.Error(setErr))
		}
	}
	return p, nil
}

func (r *cachedProfileRepo) GetAll(ctx context.Context) ([]*profile.DeveloperProfile, error) {
	return r.inner.GetAll(ctx)
}

func (r *cachedProfileRepo) Update(ctx context.Context, p *profile.DeveloperProfile) (*profile.DeveloperProfile, error) {
	updated, err := r.inner.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, p.ID())
	return updated, nil
}

func (r *cachedProfileRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := r.inner.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx, id)
	return deleted, nil
}

func (r *cachedProfileRepo) SearchCatalog(ctx context.Context, q profile.CatalogQuery) (*profile.CatalogResult, error) {
	// Catalog listings tolerate staleness but page shapes vary too much to
	// cache usefully here.
	return r.inner.SearchCatalog(ctx, q)
}

func (r *cachedProfileRepo) invalidate(ctx context.Context, id uuid.UUID) {
	key := ProfileCacheKey(id)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("profile cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
