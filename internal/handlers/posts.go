package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/service"
)

type PostHandler struct {
	posts *service.PostService
	votes *service.VoteService
}

func NewPostHandler(posts *service.PostService, votes *service.VoteService) *PostHandler {
	return &PostHandler{posts: posts, votes: votes}
}

// GetPosts lists posts, newest first, with their vote counts.
func (h *PostHandler) GetPosts(c *gin.Context) {
	authorID, ok := queryInt(c, "author_id")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	posts, err := h.posts.ListPosts(ctx, service.ListPostsInput{
		IndustryTag: c.Query("industry"),
		AuthorID:    authorID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	ids := make([]int, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}
	counts, err := h.votes.CountsForTargets(ctx, models.TargetPost, ids)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, postResponse(post, counts[post.ID]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	post, err := h.posts.GetPost(ctx, postID)
	if err != nil {
		respondError(c, err)
		return
	}
	votes, err := h.votes.GetVoteCount(ctx, models.TargetPost, post.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postResponse(post, votes))
}

// CreatePost creates a new post (PROTECTED - requires authentication)
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), service.CreatePostInput{
		AuthorID:    userID,
		Title:       input.Title,
		Body:        input.Body,
		IndustryTag: input.IndustryTag,
		Status:      input.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, postResponse(post, models.VoteCount{}))
}

// UpdatePost updates an existing post (PROTECTED - requires ownership)
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	post, err := h.posts.UpdatePost(ctx, service.UpdatePostInput{
		PostID:      postID,
		AuthorID:    userID,
		Title:       input.Title,
		Body:        input.Body,
		IndustryTag: input.IndustryTag,
		Status:      input.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	votes, err := h.votes.CountsForTargets(ctx, models.TargetPost, []int{post.ID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postResponse(post, votes[post.ID]))
}

// DeletePost soft-deletes a post (PROTECTED - requires ownership)
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.posts.DeletePost(c.Request.Context(), postID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
