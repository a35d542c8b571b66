package forumclient

import "time"

type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type VoteCount struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
	Total     int64 `json:"total"`
	Count     int64 `json:"count"`
}

type Post struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	IndustryTag string    `json:"industry_tag"`
	Status      string    `json:"status"`
	AuthorID    int       `json:"author_id"`
	Author      Author    `json:"author"`
	Votes       VoteCount `json:"votes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Comment struct {
	ID              int        `json:"id"`
	PostID          int        `json:"post_id"`
	ParentCommentID *int       `json:"parent_comment_id"`
	Content         string     `json:"content"`
	Status          string     `json:"status"`
	AuthorID        int        `json:"author_id"`
	Author          Author     `json:"author"`
	Votes           VoteCount  `json:"votes"`
	Replies         []*Comment `json:"replies,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Session struct {
	Token string `json:"token"`
	User  Author `json:"user"`
}

type NewPost struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	IndustryTag string `json:"industry_tag,omitempty"`
}

type NewComment struct {
	Content         string `json:"content"`
	ParentCommentID *int   `json:"parent_comment_id,omitempty"`
}

type ToggleResult struct {
	Action string `json:"action"`
	Vote   *struct {
		ID         int    `json:"id"`
		VoterID    int    `json:"voter_id"`
		TargetType string `json:"target_type"`
		TargetID   int    `json:"target_id"`
		Direction  string `json:"direction"`
	} `json:"vote"`
}

type ListPostsOptions struct {
	Industry string
	AuthorID int
	Limit    int
	Offset   int
}
