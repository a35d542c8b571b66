package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/repository"
	"github.com/emilythestrangee/investor-hub/backend/internal/service"
)

type UserHandler struct {
	users repository.UserRepository
	posts *service.PostService
}

func NewUserHandler(users repository.UserRepository, posts *service.PostService) *UserHandler {
	return &UserHandler{users: users, posts: posts}
}

// GetUserProfile returns a user's public profile and latest posts
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	posts, err := h.posts.ListPosts(ctx, service.ListPostsInput{AuthorID: user.ID})
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]models.PostSummary, 0, len(posts))
	for _, post := range posts {
		summaries = append(summaries, post.Summary())
	}
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"bio":        user.Bio,
			"avatar":     user.Avatar,
			"created_at": user.CreatedAt,
		},
		"posts": summaries,
	})
}

// UpdateUserProfile edits the caller's bio and avatar
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	authUserID, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if authUserID != userID {
		respondError(c, models.NewForbiddenError("You can only update your own profile"))
		return
	}

	var input struct {
		Bio    *string `json:"bio" binding:"omitempty,max=500"`
		Avatar *string `json:"avatar" binding:"omitempty,max=255"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if err := h.users.UpdateProfile(ctx, user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
