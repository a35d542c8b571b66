// Package service implements the forum's business rules on top of the repositories.
package service

import (
	"github.com/emilythestrangee/investor-hub/backend/internal/cache"
	"github.com/emilythestrangee/investor-hub/backend/internal/repository"
)

// Services bundles the domain services used by the HTTP handlers.
type Services struct {
	Posts    *PostService
	Comments *CommentService
	Votes    *VoteService
}

func New(repos *repository.Repositories, counts *cache.VoteCounts) *Services {
	sanitizer := NewSanitizer()
	return &Services{
		Posts:    NewPostService(repos.Posts, sanitizer),
		Comments: NewCommentService(repos.Comments, repos.Posts, sanitizer),
		Votes:    NewVoteService(repos.Votes, repos.Posts, repos.Comments, counts),
	}
}
