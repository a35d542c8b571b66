// Package repository provides the gorm-backed data access layer.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
)

// Repositories bundles every repository built over one connection.
type Repositories struct {
	Users    UserRepository
	Posts    PostRepository
	Comments CommentRepository
	Votes    VoteRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Posts:    NewPostRepository(db),
		Comments: NewCommentRepository(db),
		Votes:    NewVoteRepository(db),
	}
}

// translateError maps store errors onto the application error taxonomy.
func translateError(err error, resource string, id interface{}) error {
	var appErr *models.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(resource, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.NewConflictError(resource+" already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return models.NewValidationError(resource + " references a record that does not exist")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return models.NewTimeoutError(err)
	default:
		return models.NewInternalError(err)
	}
}
