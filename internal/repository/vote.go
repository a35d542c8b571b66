package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
)

// VoteRepository defines interface for the vote ledger
type VoteRepository interface {
	Toggle(ctx context.Context, voterID int, targetType models.TargetType, targetID int, direction models.Direction) (*models.Vote, models.VoteAction, error)
	Count(ctx context.Context, targetType models.TargetType, targetID int) (models.VoteCount, error)
	CountMany(ctx context.Context, targetType models.TargetType, targetIDs []int) (map[int]models.VoteCount, error)
	ListByVoter(ctx context.Context, voterID int, targetType models.TargetType) ([]models.VotedTarget, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Toggle creates, flips or removes the voter's vote on the target. The
// existing row is locked for the length of the transaction; two first votes
// racing on the same key collide on the unique index and the loser gets a
// ConflictError.
func (r *voteRepository) Toggle(
	ctx context.Context,
	voterID int,
	targetType models.TargetType,
	targetID int,
	direction models.Direction,
) (*models.Vote, models.VoteAction, error) {
	var (
		vote   *models.Vote
		action models.VoteAction
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("voter_id = ? AND target_type = ? AND target_id = ?", voterID, targetType, targetID).
			Take(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := models.Vote{
				VoterID:    voterID,
				TargetType: targetType,
				TargetID:   targetID,
				Direction:  direction,
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			vote, action = &created, models.VoteCreated
		case err != nil:
			return err
		case existing.Direction == direction:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			action = models.VoteRemoved
		default:
			if err := tx.Model(&existing).Update("direction", direction).Error; err != nil {
				return err
			}
			vote, action = &existing, models.VoteUpdated
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", models.NewConflictError("a concurrent vote on this target was recorded first", err)
		}
		return nil, "", translateError(err, "vote", targetID)
	}
	return vote, action, nil
}

type directionCount struct {
	TargetID  int
	Direction models.Direction
	N         int64
}

func (r *voteRepository) Count(ctx context.Context, targetType models.TargetType, targetID int) (models.VoteCount, error) {
	counts, err := r.CountMany(ctx, targetType, []int{targetID})
	if err != nil {
		return models.VoteCount{}, err
	}
	return counts[targetID], nil
}

// CountMany aggregates the ledger for several targets in one grouped query.
// Every requested id is present in the result.
func (r *voteRepository) CountMany(ctx context.Context, targetType models.TargetType, targetIDs []int) (map[int]models.VoteCount, error) {
	out := make(map[int]models.VoteCount, len(targetIDs))
	if len(targetIDs) == 0 {
		return out, nil
	}

	var rows []directionCount
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Select("target_id, direction, COUNT(*) AS n").
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Group("target_id, direction").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "vote", targetType)
	}

	up := make(map[int]int64, len(targetIDs))
	down := make(map[int]int64, len(targetIDs))
	for _, row := range rows {
		switch row.Direction {
		case models.DirectionUp:
			up[row.TargetID] += row.N
		case models.DirectionDown:
			down[row.TargetID] += row.N
		}
	}
	for _, id := range targetIDs {
		out[id] = models.NewVoteCount(up[id], down[id])
	}
	return out, nil
}

// ListByVoter joins each of the voter's votes on targetType with a summary of its target.
func (r *voteRepository) ListByVoter(ctx context.Context, voterID int, targetType models.TargetType) ([]models.VotedTarget, error) {
	const voteColumns = "votes.id, votes.voter_id, votes.target_type, votes.target_id, votes.direction, votes.created_at, votes.updated_at"

	q := r.db.WithContext(ctx).Table("votes")
	switch targetType {
	case models.TargetPost:
		q = q.Select(voteColumns + ", posts.title AS target_summary, posts.id AS target_post_id, posts.status AS target_status").
			Joins("JOIN posts ON posts.id = votes.target_id")
	case models.TargetComment:
		q = q.Select(voteColumns + ", comments.content AS target_summary, comments.post_id AS target_post_id, comments.status AS target_status").
			Joins("JOIN comments ON comments.id = votes.target_id")
	default:
		return nil, models.NewValidationError("target type must be 'post' or 'comment'")
	}

	out := make([]models.VotedTarget, 0)
	err := q.Where("votes.voter_id = ? AND votes.target_type = ?", voterID, targetType).
		Order("votes.created_at desc").Order("votes.id desc").
		Scan(&out).Error
	if err != nil {
		return nil, translateError(err, "vote", voterID)
	}
	return out, nil
}
