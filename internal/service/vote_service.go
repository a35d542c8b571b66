package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/emilythestrangee/investor-hub/backend/internal/cache"
	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/observability"
	"github.com/emilythestrangee/investor-hub/backend/internal/repository"
)

type VoteService struct {
	votes    repository.VoteRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	counts   *cache.VoteCounts
}

// ToggleResult reports the ledger change. Vote is nil when the vote was removed.
type ToggleResult struct {
	Action models.VoteAction `json:"action"`
	Vote   *models.Vote      `json:"vote"`
}

func NewVoteService(
	votes repository.VoteRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
	counts *cache.VoteCounts,
) *VoteService {
	return &VoteService{votes: votes, posts: posts, comments: comments, counts: counts}
}

// ensureTarget fails with NotFound unless the target exists and is not deleted.
func (s *VoteService) ensureTarget(ctx context.Context, targetType models.TargetType, targetID int) error {
	switch targetType {
	case models.TargetPost:
		post, err := s.posts.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if post.Status == models.PostDeleted {
			return models.NewNotFoundError("post", targetID)
		}
	case models.TargetComment:
		comment, err := s.comments.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if comment.Status == models.CommentDeleted {
			return models.NewNotFoundError("comment", targetID)
		}
	default:
		return models.NewValidationError("target type must be 'post' or 'comment'")
	}
	return nil
}

// ToggleVote creates, flips or removes the voter's vote on the target.
func (s *VoteService) ToggleVote(
	ctx context.Context,
	voterID int,
	targetType models.TargetType,
	targetID int,
	direction models.Direction,
) (_ *ToggleResult, err error) {
	ctx, span := observability.StartSpan(ctx, "VoteService.ToggleVote",
		attribute.String("target.type", string(targetType)),
		attribute.Int("target.id", targetID))
	defer func() { observability.EndSpan(span, err) }()

	if _, err := models.ParseTargetType(string(targetType)); err != nil {
		return nil, err
	}
	if _, err := models.ParseDirection(string(direction)); err != nil {
		return nil, err
	}
	if err := s.ensureTarget(ctx, targetType, targetID); err != nil {
		return nil, err
	}

	vote, action, err := s.votes.Toggle(ctx, voterID, targetType, targetID, direction)
	if err != nil {
		return nil, err
	}
	s.counts.Invalidate(ctx, targetType, targetID)
	observability.VoteToggles.WithLabelValues(string(targetType), string(action)).Inc()
	slog.DebugContext(ctx, "vote toggled",
		"target_type", targetType, "target_id", targetID, "action", action)

	return &ToggleResult{Action: action, Vote: vote}, nil
}

func (s *VoteService) GetVoteCount(ctx context.Context, targetType models.TargetType, targetID int) (models.VoteCount, error) {
	if _, err := models.ParseTargetType(string(targetType)); err != nil {
		return models.VoteCount{}, err
	}
	if err := s.ensureTarget(ctx, targetType, targetID); err != nil {
		return models.VoteCount{}, err
	}

	if count, ok := s.counts.Get(ctx, targetType, targetID); ok {
		return count, nil
	}
	version := s.counts.Version(ctx, targetType, targetID)
	count, err := s.votes.Count(ctx, targetType, targetID)
	if err != nil {
		return models.VoteCount{}, err
	}
	s.counts.Set(ctx, targetType, targetID, count, version)
	return count, nil
}

// CountsForTargets aggregates counts for a page of targets in one query.
func (s *VoteService) CountsForTargets(ctx context.Context, targetType models.TargetType, ids []int) (map[int]models.VoteCount, error) {
	if _, err := models.ParseTargetType(string(targetType)); err != nil {
		return nil, err
	}
	return s.votes.CountMany(ctx, targetType, ids)
}

func (s *VoteService) ListVotesByVoter(ctx context.Context, voterID int, targetType models.TargetType) ([]models.VotedTarget, error) {
	if _, err := models.ParseTargetType(string(targetType)); err != nil {
		return nil, err
	}
	return s.votes.ListByVoter(ctx, voterID, targetType)
}
