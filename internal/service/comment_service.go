package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/observability"
	"github.com/emilythestrangee/investor-hub/backend/internal/repository"
)

type CommentService struct {
	comments  repository.CommentRepository
	posts     repository.PostRepository
	sanitizer *Sanitizer
}

type CreateCommentInput struct {
	AuthorID        int
	PostID          int
	Content         string
	ParentCommentID *int
}

// UpdateCommentInput carries a content edit, a status change, or both.
type UpdateCommentInput struct {
	CommentID int
	AuthorID  int
	Content   *string
	Status    *models.CommentStatus
}

func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	sanitizer *Sanitizer,
) *CommentService {
	return &CommentService{comments: comments, posts: posts, sanitizer: sanitizer}
}

// activePost loads a post that has not been deleted.
func (s *CommentService) activePost(ctx context.Context, postID int) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Status == models.PostDeleted {
		return nil, models.NewNotFoundError("post", postID)
	}
	return post, nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (_ *models.Comment, err error) {
	ctx, span := observability.StartSpan(ctx, "CommentService.CreateComment",
		attribute.Int("post.id", in.PostID))
	defer func() { observability.EndSpan(span, err) }()

	if in.PostID <= 0 {
		return nil, models.NewValidationError("post_id is required")
	}
	content := s.sanitizer.Rich(in.Content)
	if err := requireText("content", content, maxCommentLen); err != nil {
		return nil, err
	}

	if _, err := s.activePost(ctx, in.PostID); err != nil {
		return nil, err
	}

	if in.ParentCommentID != nil {
		parent, err := s.comments.GetByID(ctx, *in.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("parent comment belongs to a different post")
		}
		if parent.Status != models.CommentActive {
			return nil, models.NewValidationError("cannot reply to a deleted comment")
		}
	}

	comment := &models.Comment{
		PostID:          in.PostID,
		AuthorID:        in.AuthorID,
		ParentCommentID: in.ParentCommentID,
		Content:         content,
		Status:          models.CommentActive,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, comment.ID)
}

// GetCommentByID returns the comment in any status with its post and parent.
func (s *CommentService) GetCommentByID(ctx context.Context, id int) (*models.Comment, error) {
	return s.comments.GetDetail(ctx, id)
}

// GetCommentTree returns the active comments of a post, newest first. Deleted
// comments and everything beneath them are left out.
func (s *CommentService) GetCommentTree(ctx context.Context, postID int) (_ []*models.Comment, err error) {
	ctx, span := observability.StartSpan(ctx, "CommentService.GetCommentTree",
		attribute.Int("post.id", postID))
	defer func() { observability.EndSpan(span, err) }()

	if _, err := s.activePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListActiveByPost(ctx, postID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if in.Content == nil && in.Status == nil {
		return nil, models.NewValidationError("content or status is required")
	}

	comment, err := s.comments.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != in.AuthorID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if comment.Status == models.CommentDeleted {
		return nil, models.NewValidationError("deleted comments cannot be modified")
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, models.NewValidationError("status must be 'active' or 'deleted'")
	}
	// Each request performs at most one write: an edit or a cascade.
	if in.Content != nil && in.Status != nil && *in.Status == models.CommentDeleted {
		return nil, models.NewValidationError("content cannot be changed in the same request that deletes the comment")
	}

	if in.Content != nil {
		comment.Content = s.sanitizer.Rich(*in.Content)
		if err := requireText("content", comment.Content, maxCommentLen); err != nil {
			return nil, err
		}
		if err := s.comments.UpdateContent(ctx, comment); err != nil {
			return nil, err
		}
	}

	if in.Status != nil && *in.Status == models.CommentDeleted {
		if _, err := s.cascade(ctx, comment); err != nil {
			return nil, err
		}
	}

	return s.comments.GetByID(ctx, comment.ID)
}

// DeleteCommentSubtree soft-deletes the comment and every reply beneath it and
// returns how many comments changed state.
func (s *CommentService) DeleteCommentSubtree(ctx context.Context, commentID, requesterID int) (_ int64, err error) {
	ctx, span := observability.StartSpan(ctx, "CommentService.DeleteCommentSubtree",
		attribute.Int("comment.id", commentID))
	defer func() { observability.EndSpan(span, err) }()

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return 0, err
	}
	if comment.AuthorID != requesterID {
		return 0, models.NewForbiddenError("You can only delete your own comments")
	}
	return s.cascade(ctx, comment)
}

func (s *CommentService) cascade(ctx context.Context, root *models.Comment) (int64, error) {
	n, err := s.comments.SoftDeleteSubtree(ctx, root)
	if err != nil {
		return 0, err
	}
	observability.CommentsCascaded.Add(float64(n))
	slog.InfoContext(ctx, "comment subtree deleted",
		"comment_id", root.ID, "post_id", root.PostID, "deleted_count", n)
	return n, nil
}
