package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/carebridge/portal-api/pkg/circuitbreaker"
	"github.com/carebridge/portal-api/pkg/metrics"
)

// Config holds redis connection settings for the notifier.
type Config struct {
	URL          string        `mapstructure:"url" envconfig:"REDIS_URL"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

// RedisNotifier publishes notifications to a per-user pub/sub channel.
type RedisNotifier struct {
	client  *redis.Client
	cb      *circuitbreaker.CircuitBreaker
	logger  *zerolog.Logger
	metrics *metrics.Metrics
}

// NewRedisNotifier connects to redis and verifies the connection.
func NewRedisNotifier(config Config, logger *zerolog.Logger, m *metrics.Metrics) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.MaxRetries = config.MaxRetries
	opts.MinRetryBackoff = config.RetryBackoff
	opts.PoolSize = config.PoolSize
	opts.MinIdleConns = config.MinIdleConns

	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
		Name:        "redis-notifier",
		MaxFailures: 5,
		Timeout:     10 * time.Second,
	})

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisNotifier{
		client:  client,
		cb:      cb,
		logger:  logger,
		metrics: m,
	}, nil
}

// Channel returns the pub/sub channel for a user.
func Channel(userID string) string {
	return "portal:notifications:" + userID
}

func (n *RedisNotifier) Notify(ctx context.Context, userID string, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = n.cb.Execute(func() error {
		return n.client.Publish(ctx, Channel(userID), payload).Err()
	})
	if err != nil {
		if n.metrics != nil {
			n.metrics.NotificationsFailed.Inc()
		}
		n.logger.Warn().Err(err).Str("user_id", userID).Str("resource", notification.Resource).Msg("notification publish failed")
		return err
	}
	if n.metrics != nil {
		n.metrics.NotificationsPublished.Inc()
	}
	return nil
}

// Close releases the redis connection.
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
