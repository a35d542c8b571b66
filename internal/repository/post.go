package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
)

// PostFilter narrows ListPosts. Zero values mean "any".
type PostFilter struct {
	IndustryTag string
	AuthorID    int
	Limit       int
	Offset      int
}

// PostRepository defines interface for post operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
	return translateError(err, "post", post.Title)
}

func (r *postRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, translateError(err, "post", id)
	}
	return &post, nil
}

// List returns non-deleted posts, newest first.
func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]*models.Post, error) {
	q := r.db.WithContext(ctx).Preload("Author").
		Where("status <> ?", models.PostDeleted)
	if filter.IndustryTag != "" {
		q = q.Where("industry_tag = ?", filter.IndustryTag)
	}
	if filter.AuthorID > 0 {
		q = q.Where("author_id = ?", filter.AuthorID)
	}

	posts := make([]*models.Post, 0)
	err := q.Order("created_at desc").Order("id desc").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, translateError(err, "post", "list")
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(post).Omit(clause.Associations).
		Select("title", "body", "industry_tag", "status", "updated_at").
		Updates(post)
	if res.Error != nil {
		return translateError(res.Error, "post", post.ID)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("post", post.ID)
	}
	return nil
}
