package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
)

func newTestCache(t *testing.T) (*VoteCounts, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewVoteCounts(client, time.Minute), mr
}

func TestVoteCountKey(t *testing.T) {
	assert.Equal(t, "votes:count:post:42", VoteCountKey(models.TargetPost, 42))
	assert.Equal(t, "votes:count:comment:7", VoteCountKey(models.TargetComment, 7))
}

func TestVoteCounts_SetGetInvalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, models.TargetPost, 1)
	assert.False(t, ok)

	c.Set(ctx, models.TargetPost, 1, models.NewVoteCount(3, 1), c.Version(ctx, models.TargetPost, 1))
	got, ok := c.Get(ctx, models.TargetPost, 1)
	require.True(t, ok)
	assert.Equal(t, models.NewVoteCount(3, 1), got)
	assert.EqualValues(t, 2, got.Total)
	assert.EqualValues(t, 4, got.Count)

	// Comment 1 is a different target.
	_, ok = c.Get(ctx, models.TargetComment, 1)
	assert.False(t, ok)

	c.Invalidate(ctx, models.TargetPost, 1)
	_, ok = c.Get(ctx, models.TargetPost, 1)
	assert.False(t, ok)
	assert.False(t, mr.Exists(VoteCountKey(models.TargetPost, 1)))
}

func TestVoteCounts_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, models.TargetComment, 9, models.NewVoteCount(0, 2), 0)
	assert.Equal(t, time.Minute, mr.TTL(VoteCountKey(models.TargetComment, 9)))

	mr.FastForward(2 * time.Minute)
	_, ok := c.Get(ctx, models.TargetComment, 9)
	assert.False(t, ok)
}

func TestVoteCounts_StaleWriteIsSkipped(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	// A reader loads the count, then a toggle invalidates before the reader writes.
	version := c.Version(ctx, models.TargetPost, 3)
	c.Invalidate(ctx, models.TargetPost, 3)
	c.Set(ctx, models.TargetPost, 3, models.NewVoteCount(1, 0), version)

	_, ok := c.Get(ctx, models.TargetPost, 3)
	assert.False(t, ok)
	assert.False(t, mr.Exists(VoteCountKey(models.TargetPost, 3)))

	// A reader that starts after the invalidation may fill the cache.
	version = c.Version(ctx, models.TargetPost, 3)
	assert.EqualValues(t, 1, version)
	c.Set(ctx, models.TargetPost, 3, models.NewVoteCount(2, 0), version)
	got, ok := c.Get(ctx, models.TargetPost, 3)
	require.True(t, ok)
	assert.EqualValues(t, 2, got.Upvotes)
}

func TestVoteCounts_FailedVersionReadSkipsWrite(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	mr.Set(voteVersionKey(models.TargetComment, 4), "not-a-number")
	version := c.Version(ctx, models.TargetComment, 4)
	assert.EqualValues(t, -1, version)

	c.Set(ctx, models.TargetComment, 4, models.NewVoteCount(1, 1), version)
	assert.False(t, mr.Exists(VoteCountKey(models.TargetComment, 4)))
}

func TestVoteCounts_CorruptEntryIsDropped(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	mr.HSet(VoteCountKey(models.TargetPost, 5), "up", "x", "down", "1")
	_, ok := c.Get(ctx, models.TargetPost, 5)
	assert.False(t, ok)
	assert.False(t, mr.Exists(VoteCountKey(models.TargetPost, 5)))
}

func TestVoteCounts_Disabled(t *testing.T) {
	ctx := context.Background()
	for _, c := range []*VoteCounts{nil, NewVoteCounts(nil, 0)} {
		assert.False(t, c.Enabled())
		c.Set(ctx, models.TargetPost, 1, models.NewVoteCount(1, 0), 0)
		_, ok := c.Get(ctx, models.TargetPost, 1)
		assert.False(t, ok)
		c.Invalidate(ctx, models.TargetPost, 1)
		assert.Equal(t, "disabled", c.Health(ctx))
	}
}

func TestVoteCounts_Health(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	assert.Equal(t, "up", c.Health(ctx))

	mr.Close()
	assert.Equal(t, "down", c.Health(ctx))
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := Connect(ctx, mr.Addr())
	require.NoError(t, err)
	_ = client.Close()

	client, err = Connect(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	_ = client.Close()

	_, err = Connect(ctx, "redis://:bad url")
	assert.Error(t, err)
}
