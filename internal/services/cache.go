package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const cacheKeyPrefix = "analysis:"

// ResultCache stores validated results by prompt. Implementations never
// fail an analysis: a miss and an unreachable backend look the same.
type ResultCache interface {
	Get(ctx context.Context, key string) (*models.AnalysisResult, bool)
	Set(ctx context.Context, key string, result *models.AnalysisResult) error
}

// CacheKey identifies a result by the provider, model and exact prompt that
// produced it.
func CacheKey(provider, model, prompt string) string {
	sum := sha256.Sum256([]byte(provider + "|" + model + "|" + prompt))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger

	warnedUnavailable atomic.Bool
}

type RedisCacheOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisCache connects to Redis and falls back to a bypassed cache when the
// server does not answer a ping.
func NewRedisCache(opts RedisCacheOptions, logger *slog.Logger) ResultCache {
	if logger == nil {
		logger = slog.Default()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, bypassing result cache", "addr", opts.Addr, "error", err)
		_ = client.Close()
		return &redisCache{logger: logger, ttl: opts.TTL}
	}

	return &redisCache{client: client, ttl: opts.TTL, logger: logger}
}

func (r *redisCache) isUnavailable() bool {
	return r.client == nil
}

func (r *redisCache) warnUnavailableOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis unavailable, bypassing result cache", "error", err)
	}
}

func (r *redisCache) Get(ctx context.Context, key string) (*models.AnalysisResult, bool) {
	if r.isUnavailable() {
		return nil, false
	}

	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.warnUnavailableOnce(err)
		}
		return nil, false
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(b, &result); err != nil {
		r.logger.Warn("discarding unreadable cache entry", "key", key, "error", err)
		return nil, false
	}

	return &result, true
}

func (r *redisCache) Set(ctx context.Context, key string, result *models.AnalysisResult) error {
	if r.isUnavailable() {
		return nil
	}

	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

type nopCache struct{}

// NewNopCache returns a cache that never hits.
func NewNopCache() ResultCache {
	return nopCache{}
}

func (nopCache) Get(context.Context, string) (*models.AnalysisResult, bool) { return nil, false }

func (nopCache) Set(context.Context, string, *models.AnalysisResult) error { return nil }
