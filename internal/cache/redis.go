// Package cache provides the Redis-backed vote count cache.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/observability"
)

const (
	voteCountKeyPrefix   = "votes:count:%s:%d"
	voteVersionKeyPrefix = "votes:version:%s:%d"
)

// versionTTL outlives any read that fills the cache, so a version never
// resets while a stale write is still pending.
const versionTTL = 24 * time.Hour

var errStaleCount = errors.New("vote count changed while it was read")

// DefaultVoteCountTTL bounds how stale a cached count may be if an
// invalidation is lost.
const DefaultVoteCountTTL = 30 * time.Second

func VoteCountKey(targetType models.TargetType, targetID int) string {
	return fmt.Sprintf(voteCountKeyPrefix, targetType, targetID)
}

func voteVersionKey(targetType models.TargetType, targetID int) string {
	return fmt.Sprintf(voteVersionKeyPrefix, targetType, targetID)
}

// Connect parses addr (either a redis:// URL or host:port) and pings the server.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// VoteCounts caches aggregated vote counts per target. A VoteCounts with a nil
// client is valid and caches nothing; every lookup is a miss.
type VoteCounts struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVoteCounts(client *redis.Client, ttl time.Duration) *VoteCounts {
	if ttl <= 0 {
		ttl = DefaultVoteCountTTL
	}
	return &VoteCounts{client: client, ttl: ttl}
}

// Enabled reports whether a Redis client backs the cache.
func (c *VoteCounts) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns the cached count. Redis failures are logged and reported as a miss.
func (c *VoteCounts) Get(ctx context.Context, targetType models.TargetType, targetID int) (models.VoteCount, bool) {
	if !c.Enabled() {
		return models.VoteCount{}, false
	}

	fields, err := c.client.HGetAll(ctx, VoteCountKey(targetType, targetID)).Result()
	if err != nil {
		observability.VoteCountCache.WithLabelValues("error").Inc()
		slog.WarnContext(ctx, "vote count cache read failed", "error", err, "target_type", targetType, "target_id", targetID)
		return models.VoteCount{}, false
	}
	if len(fields) == 0 {
		observability.VoteCountCache.WithLabelValues("miss").Inc()
		return models.VoteCount{}, false
	}

	up, errUp := strconv.ParseInt(fields["up"], 10, 64)
	down, errDown := strconv.ParseInt(fields["down"], 10, 64)
	if errUp != nil || errDown != nil {
		observability.VoteCountCache.WithLabelValues("miss").Inc()
		c.Invalidate(ctx, targetType, targetID)
		return models.VoteCount{}, false
	}

	observability.VoteCountCache.WithLabelValues("hit").Inc()
	return models.NewVoteCount(up, down), true
}

// Version returns the target's invalidation counter. Read it before loading a
// count from the database and pass it to Set. It returns -1 when Redis fails,
// which makes the following Set a no-op.
func (c *VoteCounts) Version(ctx context.Context, targetType models.TargetType, targetID int) int64 {
	if !c.Enabled() {
		return 0
	}
	v, err := c.client.Get(ctx, voteVersionKey(targetType, targetID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "vote count version read failed", "error", err, "target_type", targetType, "target_id", targetID)
		return -1
	}
	return v
}

// Set stores count with the configured TTL unless the target was invalidated
// after version was read. The check and the write run under WATCH, so an
// Invalidate racing the write aborts it.
func (c *VoteCounts) Set(ctx context.Context, targetType models.TargetType, targetID int, count models.VoteCount, version int64) {
	if !c.Enabled() || version < 0 {
		return
	}

	key := VoteCountKey(targetType, targetID)
	verKey := voteVersionKey(targetType, targetID)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleCount
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, "up", count.Upvotes, "down", count.Downvotes)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, verKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleCount), errors.Is(err, redis.TxFailedErr):
		slog.DebugContext(ctx, "stale vote count not cached", "key", key)
	default:
		slog.WarnContext(ctx, "vote count cache write failed", "error", err, "key", key)
	}
}

// Invalidate drops the cached count and bumps the target's version so that a
// count read before this call is never written back.
func (c *VoteCounts) Invalidate(ctx context.Context, targetType models.TargetType, targetID int) {
	if !c.Enabled() {
		return
	}
	verKey := voteVersionKey(targetType, targetID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, VoteCountKey(targetType, targetID))
		pipe.Incr(ctx, verKey)
		pipe.Expire(ctx, verKey, versionTTL)
		return nil
	})
	if err != nil {
		slog.WarnContext(ctx, "vote count cache invalidation failed", "error", err, "target_type", targetType, "target_id", targetID)
	}
}

// Health pings Redis. It reports "disabled" when no client is configured.
func (c *VoteCounts) Health(ctx context.Context) string {
	if !c.Enabled() {
		return "disabled"
	}
	if err := c.client.Ping(ctx).Err(); err != nil {
		return "down"
	}
	return "up"
}
