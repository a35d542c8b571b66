package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/testutil"
)

func TestVoteService_CountScenario(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	u1 := testutil.SeedUser(t, db)
	u2 := testutil.SeedUser(t, db)
	post := testutil.SeedPost(t, db, u1)

	steps := []struct {
		direction models.Direction
		action    models.VoteAction
		want      models.VoteCount
	}{
		{models.DirectionUp, models.VoteCreated, models.VoteCount{Upvotes: 1, Downvotes: 0, Total: 1, Count: 1}},
		{models.DirectionUp, models.VoteRemoved, models.VoteCount{Upvotes: 0, Downvotes: 0, Total: 0, Count: 0}},
		{models.DirectionDown, models.VoteCreated, models.VoteCount{Upvotes: 0, Downvotes: 1, Total: -1, Count: 1}},
	}
	for _, step := range steps {
		res, err := svcs.Votes.ToggleVote(ctx, u2.ID, models.TargetPost, post.ID, step.direction)
		require.NoError(t, err)
		assert.Equal(t, step.action, res.Action)

		// Read twice so the second read is served from the cache.
		for i := 0; i < 2; i++ {
			count, err := svcs.Votes.GetVoteCount(ctx, models.TargetPost, post.ID)
			require.NoError(t, err)
			assert.Equal(t, step.want, count)
		}
	}
}

func TestVoteService_DirectionFlip(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	voter := testutil.SeedUser(t, db)
	post := testutil.SeedPost(t, db, voter)
	comment := testutil.SeedComment(t, db, post, voter, nil)

	_, err := svcs.Votes.ToggleVote(ctx, voter.ID, models.TargetComment, comment.ID, models.DirectionUp)
	require.NoError(t, err)
	before, err := svcs.Votes.GetVoteCount(ctx, models.TargetComment, comment.ID)
	require.NoError(t, err)

	res, err := svcs.Votes.ToggleVote(ctx, voter.ID, models.TargetComment, comment.ID, models.DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, models.VoteUpdated, res.Action)
	require.NotNil(t, res.Vote)
	assert.Equal(t, models.DirectionDown, res.Vote.Direction)

	after, err := svcs.Votes.GetVoteCount(ctx, models.TargetComment, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Upvotes-1, after.Upvotes)
	assert.Equal(t, before.Downvotes+1, after.Downvotes)

	var rows int64
	require.NoError(t, db.Model(&models.Vote{}).Where("voter_id = ?", voter.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestVoteService_ValidationBeforeStore(t *testing.T) {
	// No repositories: any store access would panic.
	svc := NewVoteService(nil, nil, nil, nil)
	ctx := context.Background()

	_, err := svc.ToggleVote(ctx, 1, models.TargetType("user"), 1, models.DirectionUp)
	assertCode(t, err, models.CodeValidation)

	_, err = svc.ToggleVote(ctx, 1, models.TargetPost, 1, models.Direction("sideways"))
	assertCode(t, err, models.CodeValidation)

	_, err = svc.GetVoteCount(ctx, models.TargetType(""), 1)
	assertCode(t, err, models.CodeValidation)

	_, err = svc.ListVotesByVoter(ctx, 1, models.TargetType("post "))
	assertCode(t, err, models.CodeValidation)
}

func TestVoteService_TargetMustExist(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	voter := testutil.SeedUser(t, db)
	post := testutil.SeedPost(t, db, voter)
	comment := testutil.SeedComment(t, db, post, voter, nil)

	_, err := svcs.Votes.ToggleVote(ctx, voter.ID, models.TargetPost, 9999, models.DirectionUp)
	assertCode(t, err, models.CodeNotFound)

	_, err = svcs.Votes.GetVoteCount(ctx, models.TargetComment, 9999)
	assertCode(t, err, models.CodeNotFound)

	_, err = svcs.Comments.DeleteCommentSubtree(ctx, comment.ID, voter.ID)
	require.NoError(t, err)
	_, err = svcs.Votes.ToggleVote(ctx, voter.ID, models.TargetComment, comment.ID, models.DirectionUp)
	assertCode(t, err, models.CodeNotFound)

	require.NoError(t, svcs.Posts.DeletePost(ctx, post.ID, voter.ID))
	_, err = svcs.Votes.ToggleVote(ctx, voter.ID, models.TargetPost, post.ID, models.DirectionUp)
	assertCode(t, err, models.CodeNotFound)

	var rows int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestVoteService_CountsAndListing(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	voter := testutil.SeedUser(t, db)
	p1 := testutil.SeedPost(t, db, voter)
	p2 := testutil.SeedPost(t, db, voter)

	_, err := svcs.Votes.ToggleVote(ctx, voter.ID, models.TargetPost, p1.ID, models.DirectionUp)
	require.NoError(t, err)
	_, err = svcs.Votes.ToggleVote(ctx, voter.ID, models.TargetPost, p2.ID, models.DirectionDown)
	require.NoError(t, err)

	counts, err := svcs.Votes.CountsForTargets(ctx, models.TargetPost, []int{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[p1.ID].Total)
	assert.EqualValues(t, -1, counts[p2.ID].Total)

	voted, err := svcs.Votes.ListVotesByVoter(ctx, voter.ID, models.TargetPost)
	require.NoError(t, err)
	require.Len(t, voted, 2)

	none, err := svcs.Votes.ListVotesByVoter(ctx, voter.ID, models.TargetComment)
	require.NoError(t, err)
	assert.Empty(t, none)
}
