package models

import "time"

type CommentStatus string

const (
	CommentActive  CommentStatus = "active"
	CommentDeleted CommentStatus = "deleted"
)

func (s CommentStatus) Valid() bool {
	return s == CommentActive || s == CommentDeleted
}

// Comment is a node in the per-post reply forest. Roots have a nil ParentCommentID.
type Comment struct {
	ID              int           `gorm:"primaryKey" json:"id"`
	PostID          int           `gorm:"not null;index" json:"post_id"`
	Post            *Post         `gorm:"foreignKey:PostID" json:"-"`
	AuthorID        int           `gorm:"not null;index" json:"author_id"`
	Author          User          `gorm:"foreignKey:AuthorID" json:"-"`
	ParentCommentID *int          `gorm:"index" json:"parent_comment_id"`
	Parent          *Comment      `gorm:"foreignKey:ParentCommentID" json:"-"`
	Content         string        `gorm:"type:text;not null" json:"content"`
	Status          CommentStatus `gorm:"size:16;not null;default:active;index" json:"status"`
	CreatedAt       time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// CommentSummary is the projection of a parent comment embedded in comment responses.
type CommentSummary struct {
	ID      int           `json:"id"`
	Content string        `json:"content"`
	Status  CommentStatus `json:"status"`
}

func (c Comment) Summary() CommentSummary {
	return CommentSummary{ID: c.ID, Content: c.Content, Status: c.Status}
}

type CreateCommentRequest struct {
	Content         string `json:"content" binding:"required"`
	PostID          int    `json:"post_id"`
	ParentCommentID *int   `json:"parent_comment_id,omitempty"`
}

type UpdateCommentRequest struct {
	Content *string        `json:"content"`
	Status  *CommentStatus `json:"status"`
}
