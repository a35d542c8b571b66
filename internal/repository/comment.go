package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/investor-hub/backend/internal/commenttree"
	"github.com/emilythestrangee/investor-hub/backend/internal/models"
)

// updateBatchSize bounds the IN list of one cascade UPDATE statement.
const updateBatchSize = 1000

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	GetDetail(ctx context.Context, id int) (*models.Comment, error)
	ListActiveByPost(ctx context.Context, postID int) ([]*models.Comment, error)
	UpdateContent(ctx context.Context, comment *models.Comment) error
	SoftDeleteSubtree(ctx context.Context, root *models.Comment) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
	return translateError(err, "comment", comment.PostID)
}

func (r *commentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, translateError(err, "comment", id)
	}
	return &comment, nil
}

// GetDetail loads the comment with its author, post and parent.
func (r *commentRepository) GetDetail(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Post").
		Preload("Parent").
		First(&comment, id).Error
	if err != nil {
		return nil, translateError(err, "comment", id)
	}
	return &comment, nil
}

// ListActiveByPost returns the post's active comments, newest first. A comment
// beneath a deleted one is left out even if it is still active, so the listing
// never holds a reply whose parent it does not show.
func (r *commentRepository) ListActiveByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	var all []*models.Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at desc").Order("id desc").
		Find(&all).Error
	if err != nil {
		return nil, translateError(err, "comment", postID)
	}

	edges := make([]commenttree.Edge, 0, len(all))
	var deleted []int
	for _, c := range all {
		edges = append(edges, commenttree.Edge{ID: c.ID, ParentID: c.ParentCommentID})
		if c.Status != models.CommentActive {
			deleted = append(deleted, c.ID)
		}
	}
	hidden := commenttree.Covered(deleted, edges)

	comments := make([]*models.Comment, 0, len(all)-len(hidden))
	for _, c := range all {
		if _, ok := hidden[c.ID]; !ok {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

// UpdateContent writes the new content of an active comment.
func (r *commentRepository) UpdateContent(ctx context.Context, comment *models.Comment) error {
	res := r.db.WithContext(ctx).Model(comment).Omit(clause.Associations).
		Where("status = ?", models.CommentActive).
		Update("content", comment.Content)
	if res.Error != nil {
		return translateError(res.Error, "comment", comment.ID)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("comment", comment.ID)
	}
	return nil
}

// SoftDeleteSubtree marks root and all of its transitive replies deleted in one
// transaction and returns how many comments moved from active to deleted.
// The post's edge list is read once and walked in memory; a reply inserted
// after that read is not part of the cascade.
func (r *commentRepository) SoftDeleteSubtree(ctx context.Context, root *models.Comment) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var edges []commenttree.Edge
		err := tx.Model(&models.Comment{}).
			Select("id, parent_comment_id AS parent_id").
			Where("post_id = ?", root.PostID).
			Scan(&edges).Error
		if err != nil {
			return err
		}

		ids := commenttree.Subtree(root.ID, edges)
		for start := 0; start < len(ids); start += updateBatchSize {
			end := min(start+updateBatchSize, len(ids))
			res := tx.Model(&models.Comment{}).
				Where("id IN ? AND status = ?", ids[start:end], models.CommentActive).
				Update("status", models.CommentDeleted)
			if res.Error != nil {
				return res.Error
			}
			affected += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, translateError(err, "comment", root.ID)
	}
	return affected, nil
}
