package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RateLimitService throttles requests per client key.
type RateLimitService interface {
	// Allow increments the counter for key and reports whether the request
	// is within the configured limit for the window.
	Allow(ctx context.Context, key string) (bool, error)
}

// Config holds rate limiting settings. The defaults mirror the global
// throttle of the dashboard API: 100 requests per 60 seconds.
type Config struct {
	Enabled  bool
	RedisURL string
	Limit    int
	Window   time.Duration
}

type redisRateLimitService struct {
	client *redis.Client
	logger *logrus.Logger
	limit  int
	window time.Duration
}

// NewRateLimitService creates a Redis-backed rate limiter, or a noop one
// when disabled by config.
func NewRateLimitService(cfg Config, logger *logrus.Logger) (RateLimitService, error) {
	if !cfg.Enabled {
		logger.Info("Rate limiting disabled")
		return &noopRateLimitService{}, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = 60 * time.Second
	}

	logger.WithFields(logrus.Fields{
		"limit":  cfg.Limit,
		"window": cfg.Window,
	}).Info("Rate limiting service initialized")

	return &redisRateLimitService{
		client: client,
		logger: logger,
		limit:  cfg.Limit,
		window: cfg.Window,
	}, nil
}

func (s *redisRateLimitService) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "ratelimit:" + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, s.window).Err(); err != nil {
			s.logger.WithError(err).Warn("failed to set rate limit window")
		}
	}

	return count <= int64(s.limit), nil
}

// noopRateLimitService allows everything. Used when throttling is off.
type noopRateLimitService struct{}

func (s *noopRateLimitService) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}
