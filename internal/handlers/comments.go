package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/investor-hub/backend/internal/commenttree"
	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/service"
)

type CommentHandler struct {
	comments *service.CommentService
	votes    *service.VoteService
}

func NewCommentHandler(comments *service.CommentService, votes *service.VoteService) *CommentHandler {
	return &CommentHandler{comments: comments, votes: votes}
}

// GetComments returns the active comments of a post with their vote counts.
// With ?nested=true the comments are rendered as a reply forest.
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	comments, err := h.comments.GetCommentTree(ctx, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	ids := make([]int, len(comments))
	for i, comment := range comments {
		ids[i] = comment.ID
	}
	counts, err := h.votes.CountsForTargets(ctx, models.TargetComment, ids)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("nested") == "true" {
		c.JSON(http.StatusOK, nestedResponse(commenttree.Nest(comments), counts))
		return
	}

	responses := make([]gin.H, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, commentResponse(comment, counts[comment.ID]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetComment returns one comment in any status.
func (h *CommentHandler) GetComment(c *gin.Context) {
	commentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	comment, err := h.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	counts, err := h.votes.CountsForTargets(ctx, models.TargetComment, []int{comment.ID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentDetailResponse(comment, counts[comment.ID]))
}

// CreateComment creates a comment. The post comes from the path when the
// route carries one and from the body otherwise.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if c.Param("id") != "" {
		postID, ok := paramID(c, "id")
		if !ok {
			return
		}
		input.PostID = postID
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), service.CreateCommentInput{
		AuthorID:        userID,
		PostID:          input.PostID,
		Content:         input.Content,
		ParentCommentID: input.ParentCommentID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentResponse(comment, models.VoteCount{}))
}

// UpdateComment edits content or changes status (PROTECTED - requires ownership)
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	comment, err := h.comments.UpdateComment(ctx, service.UpdateCommentInput{
		CommentID: commentID,
		AuthorID:  userID,
		Content:   input.Content,
		Status:    input.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	counts, err := h.votes.CountsForTargets(ctx, models.TargetComment, []int{comment.ID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentResponse(comment, counts[comment.ID]))
}

// DeleteComment soft-deletes the comment and its replies (PROTECTED - requires ownership)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	n, err := h.comments.DeleteCommentSubtree(c.Request.Context(), commentID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted_count": n})
}
