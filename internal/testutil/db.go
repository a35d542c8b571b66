// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/investor-hub/backend/internal/database"
	"github.com/emilythestrangee/investor-hub/backend/internal/models"
)

var seq atomic.Int64

// NewDB opens a migrated in-memory SQLite database. The pool is pinned to one
// connection because every new :memory: connection is a separate database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// SeedUser inserts a user with a unique username.
func SeedUser(t testing.TB, db *gorm.DB) *models.User {
	t.Helper()
	n := seq.Add(1)
	user := &models.User{
		Username: fmt.Sprintf("investor%d", n),
		Email:    fmt.Sprintf("investor%d@example.com", n),
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// SeedPost inserts an active post by author.
func SeedPost(t testing.TB, db *gorm.DB, author *models.User) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       fmt.Sprintf("Quarterly outlook %d", seq.Add(1)),
		Body:        "Thoughts on the upcoming earnings season.",
		AuthorID:    author.ID,
		IndustryTag: "fintech",
		Status:      models.PostActive,
	}
	require.NoError(t, db.Omit("Author").Create(post).Error)
	return post
}

// SeedComment inserts an active comment on post, replying to parent when non-nil.
func SeedComment(t testing.TB, db *gorm.DB, post *models.Post, author *models.User, parent *models.Comment) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Content:  fmt.Sprintf("comment %d", seq.Add(1)),
		Status:   models.CommentActive,
	}
	if parent != nil {
		comment.ParentCommentID = &parent.ID
	}
	require.NoError(t, db.Omit("Author", "Post", "Parent").Create(comment).Error)
	return comment
}

// CommentStatus reads the stored status of a comment.
func CommentStatus(t testing.TB, db *gorm.DB, id int) models.CommentStatus {
	t.Helper()
	var c models.Comment
	require.NoError(t, db.First(&c, id).Error)
	return c.Status
}
