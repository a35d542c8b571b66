package handlers

import (
	"github.com/emilythestrangee/investor-hub/backend/internal/cache"
	"github.com/emilythestrangee/investor-hub/backend/internal/database"
	"github.com/emilythestrangee/investor-hub/backend/internal/middleware"
	"github.com/emilythestrangee/investor-hub/backend/internal/repository"
	"github.com/emilythestrangee/investor-hub/backend/internal/service"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Post    *PostHandler
	Comment *CommentHandler
	Vote    *VoteHandler
	User    *UserHandler
	Health  *HealthHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(
	db database.Service,
	counts *cache.VoteCounts,
	auth *middleware.Authenticator,
) *Handler {
	repos := repository.New(db.GetDB())
	svcs := service.New(repos, counts)

	return &Handler{
		Auth:    NewAuthHandler(repos.Users, auth),
		Post:    NewPostHandler(svcs.Posts, svcs.Votes),
		Comment: NewCommentHandler(svcs.Comments, svcs.Votes),
		Vote:    NewVoteHandler(svcs.Votes),
		User:    NewUserHandler(repos.Users, svcs.Posts),
		Health:  NewHealthHandler(db, counts),
	}
}
