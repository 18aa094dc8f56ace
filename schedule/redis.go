package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultKeyPrefix    = "agentwire:schedule"
	defaultPollInterval = time.Second
	claimBatchSize      = 64
)

// RedisScheduler stores deferred invocations in a Redis sorted set scored by
// due time, so entries survive process restarts. A poll loop claims due
// entries with ZREM before dispatching; a claimed entry is delivered by
// exactly one process, delivery itself stays at-most-once.
type RedisScheduler struct {
	client     *redis.Client
	dispatcher Dispatcher
	logger     *zap.Logger

	keyPrefix    string
	pollInterval time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// RedisOption configures a RedisScheduler.
type RedisOption func(*RedisScheduler)

// WithKeyPrefix overrides the key prefix the scheduler stores entries under.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisScheduler) { s.keyPrefix = prefix }
}

// WithPollInterval overrides how often the scheduler polls for due entries.
func WithPollInterval(interval time.Duration) RedisOption {
	return func(s *RedisScheduler) { s.pollInterval = interval }
}

// NewRedisScheduler creates a scheduler on an existing Redis client and
// starts its poll loop. The caller keeps ownership of the client.
func NewRedisScheduler(client *redis.Client, dispatcher Dispatcher, logger *zap.Logger, opts ...RedisOption) *RedisScheduler {
	s := &RedisScheduler{
		client:       client,
		dispatcher:   dispatcher,
		logger:       logger.With(zap.String("component", "redis-scheduler")),
		keyPrefix:    defaultKeyPrefix,
		pollInterval: defaultPollInterval,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.pollLoop()

	s.logger.Info("redis scheduler started",
		zap.String("key_prefix", s.keyPrefix),
		zap.Duration("poll_interval", s.pollInterval),
	)
	return s
}

// Backend names this scheduler for logs and metrics labels.
func (s *RedisScheduler) Backend() string { return "redis" }

func (s *RedisScheduler) dueKey() string     { return s.keyPrefix + ":due" }
func (s *RedisScheduler) entriesKey() string { return s.keyPrefix + ":entries" }

// Schedule stores one deferred invocation and returns its entry id.
func (s *RedisScheduler) Schedule(ctx context.Context, inv Invocation) (string, error) {
	entryID := uuid.NewString()

	payload, err := json.Marshal(inv)
	if err != nil {
		return "", fmt.Errorf("encoding invocation: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.entriesKey(), entryID, payload)
	pipe.ZAdd(ctx, s.dueKey(), redis.Z{
		Score:  float64(inv.At.UnixMilli()),
		Member: entryID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("storing schedule entry: %w", err)
	}

	s.logger.Debug("invocation scheduled",
		zap.String("entry_id", entryID),
		zap.String("agent_id", inv.AgentID),
		zap.String("method", inv.Method),
		zap.Time("at", inv.At),
	)
	return entryID, nil
}

// Cancel removes a pending entry. Cancelling an already-claimed or unknown
// entry is a no-op.
func (s *RedisScheduler) Cancel(ctx context.Context, entryID string) error {
	pipe := s.client.TxPipeline()
	pipe.ZRem(ctx, s.dueKey(), entryID)
	pipe.HDel(ctx, s.entriesKey(), entryID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cancelling schedule entry: %w", err)
	}
	return nil
}

// Close stops the poll loop. Entries left in Redis are picked up after the
// next start.
func (s *RedisScheduler) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *RedisScheduler) pollLoop() {
	defer close(s.done)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.dispatchDue()
		}
	}
}

// dispatchDue claims and delivers every entry whose due time has passed.
func (s *RedisScheduler) dispatchDue() {
	ctx, cancel := context.WithTimeout(context.Background(), s.pollInterval)
	defer cancel()

	now := time.Now().UnixMilli()
	entryIDs, err := s.client.ZRangeByScore(ctx, s.dueKey(), &redis.ZRangeBy{
		Min:   "-inf",
		Max:   fmt.Sprintf("%d", now),
		Count: claimBatchSize,
	}).Result()
	if err != nil {
		s.logger.Warn("polling due entries failed", zap.Error(err))
		return
	}

	for _, entryID := range entryIDs {
		// ZREM is the claim: whoever removes the member owns the entry.
		removed, err := s.client.ZRem(ctx, s.dueKey(), entryID).Result()
		if err != nil || removed == 0 {
			continue
		}

		payload, err := s.client.HGet(ctx, s.entriesKey(), entryID).Result()
		s.client.HDel(ctx, s.entriesKey(), entryID)
		if err != nil {
			s.logger.Warn("claimed entry has no payload", zap.String("entry_id", entryID), zap.Error(err))
			continue
		}

		var inv Invocation
		if err := json.Unmarshal([]byte(payload), &inv); err != nil {
			s.logger.Warn("decoding schedule entry failed", zap.String("entry_id", entryID), zap.Error(err))
			continue
		}
		s.deliver(entryID, inv)
	}
}

func (s *RedisScheduler) deliver(entryID string, inv Invocation) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, agentErr := s.dispatcher.Invoke(ctx, inv.AgentID, inv.Method, inv.Args); agentErr != nil {
		s.logger.Warn("scheduled invocation failed",
			zap.String("entry_id", entryID),
			zap.String("agent_id", inv.AgentID),
			zap.String("method", inv.Method),
			zap.String("code", string(agentErr.Code)),
		)
	}
}
