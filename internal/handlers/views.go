package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/investor-hub/backend/internal/commenttree"
	"github.com/emilythestrangee/investor-hub/backend/internal/models"
)

func postResponse(post *models.Post, votes models.VoteCount) gin.H {
	return gin.H{
		"id":           post.ID,
		"title":        post.Title,
		"body":         post.Body,
		"industry_tag": post.IndustryTag,
		"status":       post.Status,
		"author_id":    post.AuthorID,
		"author":       post.Author.Summary(),
		"votes":        votes,
		"created_at":   post.CreatedAt,
		"updated_at":   post.UpdatedAt,
	}
}

func commentResponse(comment *models.Comment, votes models.VoteCount) gin.H {
	return gin.H{
		"id":                comment.ID,
		"post_id":           comment.PostID,
		"parent_comment_id": comment.ParentCommentID,
		"content":           comment.Content,
		"status":            comment.Status,
		"author_id":         comment.AuthorID,
		"author":            comment.Author.Summary(),
		"votes":             votes,
		"created_at":        comment.CreatedAt,
		"updated_at":        comment.UpdatedAt,
	}
}

func commentDetailResponse(comment *models.Comment, votes models.VoteCount) gin.H {
	resp := commentResponse(comment, votes)
	if comment.Post != nil {
		resp["post"] = comment.Post.Summary()
	}
	if comment.Parent != nil {
		resp["parent"] = comment.Parent.Summary()
	}
	return resp
}

func nestedResponse(nodes []*commenttree.Node, counts map[int]models.VoteCount) []gin.H {
	out := make([]gin.H, 0, len(nodes))
	for _, node := range nodes {
		resp := commentResponse(node.Comment, counts[node.Comment.ID])
		resp["replies"] = nestedResponse(node.Replies, counts)
		out = append(out, resp)
	}
	return out
}
