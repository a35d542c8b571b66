package forumclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	var s Session
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/register", nil, body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) ListPosts(ctx context.Context, opts ListPostsOptions) ([]*Post, error) {
	q := url.Values{}
	if opts.Industry != "" {
		q.Set("industry", opts.Industry)
	}
	if opts.AuthorID > 0 {
		q.Set("author_id", strconv.Itoa(opts.AuthorID))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	var posts []*Post
	if err := c.do(ctx, http.MethodGet, "/posts", q, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, id int) (*Post, error) {
	var p Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+itoa(id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreatePost(ctx context.Context, in NewPost) (*Post, error) {
	var p Post
	if err := c.do(ctx, http.MethodPost, "/posts", nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+itoa(id), nil, nil, nil)
}

// Comments lists the visible comments of a post, flat or nested into reply trees.
func (c *Client) Comments(ctx context.Context, postID int, nested bool) ([]*Comment, error) {
	var q url.Values
	if nested {
		q = url.Values{"nested": {"true"}}
	}
	var comments []*Comment
	if err := c.do(ctx, http.MethodGet, "/posts/"+itoa(postID)+"/comments", q, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, postID int, in NewComment) (*Comment, error) {
	var cm Comment
	if err := c.do(ctx, http.MethodPost, "/posts/"+itoa(postID)+"/comments", nil, in, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *Client) EditComment(ctx context.Context, id int, content string) (*Comment, error) {
	var cm Comment
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPut, "/comments/"+itoa(id), nil, body, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// DeleteComment soft-deletes a comment and all of its replies and returns how
// many comments changed state.
func (c *Client) DeleteComment(ctx context.Context, id int) (int64, error) {
	var out struct {
		DeletedCount int64 `json:"deleted_count"`
	}
	if err := c.do(ctx, http.MethodDelete, "/comments/"+itoa(id), nil, nil, &out); err != nil {
		return 0, err
	}
	return out.DeletedCount, nil
}

// Vote toggles the caller's vote; targetType is "post" or "comment" and
// direction is "up" or "down".
func (c *Client) Vote(ctx context.Context, targetType string, targetID int, direction string) (*ToggleResult, error) {
	var res ToggleResult
	path := "/votes/" + url.PathEscape(targetType) + "/" + itoa(targetID)
	if err := c.do(ctx, http.MethodPost, path, nil, map[string]string{"direction": direction}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) VoteCount(ctx context.Context, targetType string, targetID int) (*VoteCount, error) {
	var vc VoteCount
	path := "/votes/" + url.PathEscape(targetType) + "/" + itoa(targetID) + "/count"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &vc); err != nil {
		return nil, err
	}
	return &vc, nil
}
