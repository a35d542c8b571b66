package service

import (
	"context"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/repository"
)

const (
	defaultPostLimit = 20
	maxPostLimit     = 100
)

type PostService struct {
	posts     repository.PostRepository
	sanitizer *Sanitizer
}

type CreatePostInput struct {
	AuthorID    int
	Title       string
	Body        string
	IndustryTag string
	Status      models.PostStatus
}

type UpdatePostInput struct {
	PostID      int
	AuthorID    int
	Title       *string
	Body        *string
	IndustryTag *string
	Status      *models.PostStatus
}

type ListPostsInput struct {
	IndustryTag string
	AuthorID    int
	Limit       int
	Offset      int
}

func NewPostService(posts repository.PostRepository, sanitizer *Sanitizer) *PostService {
	return &PostService{posts: posts, sanitizer: sanitizer}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		AuthorID:    in.AuthorID,
		Title:       s.sanitizer.Plain(in.Title),
		Body:        s.sanitizer.Rich(in.Body),
		IndustryTag: s.sanitizer.Plain(in.IndustryTag),
		Status:      in.Status,
	}
	if post.Status == "" {
		post.Status = models.PostActive
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

// GetPost returns a post that has not been deleted.
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Status == models.PostDeleted {
		return nil, models.NewNotFoundError("post", id)
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	if in.Limit < 0 || in.Offset < 0 {
		return nil, models.NewValidationError("limit and offset must not be negative")
	}
	if in.Limit == 0 {
		in.Limit = defaultPostLimit
	}
	in.Limit = min(in.Limit, maxPostLimit)

	return s.posts.List(ctx, repository.PostFilter{
		IndustryTag: s.sanitizer.Plain(in.IndustryTag),
		AuthorID:    in.AuthorID,
		Limit:       in.Limit,
		Offset:      in.Offset,
	})
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.AuthorID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if in.Title != nil {
		post.Title = s.sanitizer.Plain(*in.Title)
	}
	if in.Body != nil {
		post.Body = s.sanitizer.Rich(*in.Body)
	}
	if in.IndustryTag != nil {
		post.IndustryTag = s.sanitizer.Plain(*in.IndustryTag)
	}
	if in.Status != nil {
		post.Status = *in.Status
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

// DeletePost soft-deletes the post. Its comments stay in place and become
// unreachable through the post.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID int) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	post.Status = models.PostDeleted
	return s.posts.Update(ctx, post)
}

func validatePost(post *models.Post) error {
	if err := requireText("title", post.Title, maxTitleLen); err != nil {
		return err
	}
	if post.Body == "" {
		return models.NewValidationError("body is required")
	}
	if len(post.IndustryTag) > 64 {
		return models.NewValidationError("industry tag is too long")
	}
	switch post.Status {
	case models.PostActive, models.PostInactive:
		return nil
	case models.PostDeleted:
		return models.NewValidationError("posts are deleted with DELETE, not by status")
	default:
		return models.NewValidationError("status must be 'active' or 'inactive'")
	}
}
