package models

import "time"

type PostStatus string

const (
	PostActive   PostStatus = "active"
	PostInactive PostStatus = "inactive"
	PostDeleted  PostStatus = "deleted"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostActive, PostInactive, PostDeleted:
		return true
	}
	return false
}

type Post struct {
	ID          int        `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:300;not null" json:"title"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	AuthorID    int        `gorm:"not null;index" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID" json:"-"`
	IndustryTag string     `gorm:"size:64;index" json:"industry_tag"`
	Status      PostStatus `gorm:"size:16;not null;default:active;index" json:"status"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PostSummary is the projection of a post embedded in comment and vote responses.
type PostSummary struct {
	ID     int        `json:"id"`
	Title  string     `json:"title"`
	Status PostStatus `json:"status"`
}

func (p Post) Summary() PostSummary {
	return PostSummary{ID: p.ID, Title: p.Title, Status: p.Status}
}

type CreatePostRequest struct {
	Title       string     `json:"title" binding:"required,max=300"`
	Body        string     `json:"body" binding:"required"`
	IndustryTag string     `json:"industry_tag" binding:"max=64"`
	Status      PostStatus `json:"status"`
}

type UpdatePostRequest struct {
	Title       *string     `json:"title" binding:"omitempty,max=300"`
	Body        *string     `json:"body"`
	IndustryTag *string     `json:"industry_tag" binding:"omitempty,max=64"`
	Status      *PostStatus `json:"status"`
}
