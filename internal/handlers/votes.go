package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/service"
)

type VoteHandler struct {
	votes *service.VoteService
}

func NewVoteHandler(votes *service.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

func targetFromPath(c *gin.Context) (models.TargetType, int, bool) {
	targetType, err := models.ParseTargetType(c.Param("targetType"))
	if err != nil {
		respondError(c, err)
		return "", 0, false
	}
	targetID, ok := paramID(c, "targetId")
	if !ok {
		return "", 0, false
	}
	return targetType, targetID, true
}

// ToggleVote creates, flips or removes the caller's vote on a post or comment.
func (h *VoteHandler) ToggleVote(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	targetType, targetID, ok := targetFromPath(c)
	if !ok {
		return
	}

	var input models.VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "direction is required")
		return
	}
	direction, err := models.ParseDirection(input.Direction)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.votes.ToggleVote(c.Request.Context(), userID, targetType, targetID, direction)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if result.Action == models.VoteCreated {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

// GetVoteCount returns the aggregated votes of a post or comment.
func (h *VoteHandler) GetVoteCount(c *gin.Context) {
	targetType, targetID, ok := targetFromPath(c)
	if !ok {
		return
	}

	count, err := h.votes.GetVoteCount(c.Request.Context(), targetType, targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

// GetMyVotes lists the caller's votes on one target type.
func (h *VoteHandler) GetMyVotes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	targetType, err := models.ParseTargetType(c.Query("target_type"))
	if err != nil {
		respondError(c, err)
		return
	}

	votes, err := h.votes.ListVotesByVoter(c.Request.Context(), userID, targetType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, votes)
}
