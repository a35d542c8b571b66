package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestCommentService_DeleteScenario(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	u1 := testutil.SeedUser(t, db)
	u2 := testutil.SeedUser(t, db)
	post := testutil.SeedPost(t, db, u1)

	c1, err := svcs.Comments.CreateComment(ctx, CreateCommentInput{AuthorID: u1.ID, PostID: post.ID, Content: "Solid thesis"})
	require.NoError(t, err)
	c2, err := svcs.Comments.CreateComment(ctx, CreateCommentInput{
		AuthorID: u2.ID, PostID: post.ID, Content: "What about churn?", ParentCommentID: &c1.ID,
	})
	require.NoError(t, err)

	tree, err := svcs.Comments.GetCommentTree(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	n, err := svcs.Comments.DeleteCommentSubtree(ctx, c1.ID, u1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, models.CommentDeleted, testutil.CommentStatus(t, db, c1.ID))
	assert.Equal(t, models.CommentDeleted, testutil.CommentStatus(t, db, c2.ID))

	tree, err = svcs.Comments.GetCommentTree(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, tree)

	// Deleted comments stay readable by id.
	got, err := svcs.Comments.GetCommentByID(ctx, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CommentDeleted, got.Status)
	assert.Equal(t, "What about churn?", got.Content)
}

func TestCommentService_CascadeCompleteness(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	author := testutil.SeedUser(t, db)
	post := testutil.SeedPost(t, db, author)
	a := testutil.SeedComment(t, db, post, author, nil)
	b := testutil.SeedComment(t, db, post, author, a)
	c := testutil.SeedComment(t, db, post, author, b)
	d := testutil.SeedComment(t, db, post, author, nil)

	n, err := svcs.Comments.DeleteCommentSubtree(ctx, a.ID, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	for _, id := range []int{a.ID, b.ID, c.ID} {
		assert.Equal(t, models.CommentDeleted, testutil.CommentStatus(t, db, id))
	}
	assert.Equal(t, models.CommentActive, testutil.CommentStatus(t, db, d.ID))

	tree, err := svcs.Comments.GetCommentTree(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, d.ID, tree[0].ID)
}

func TestCommentService_Ownership(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db)
	other := testutil.SeedUser(t, db)
	post := testutil.SeedPost(t, db, owner)
	comment := testutil.SeedComment(t, db, post, owner, nil)

	_, err := svcs.Comments.UpdateComment(ctx, UpdateCommentInput{
		CommentID: comment.ID, AuthorID: other.ID, Content: ptr("hijacked"),
	})
	assertCode(t, err, models.CodeForbidden)

	_, err = svcs.Comments.DeleteCommentSubtree(ctx, comment.ID, other.ID)
	assertCode(t, err, models.CodeForbidden)

	got, err := svcs.Comments.GetCommentByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.Content, got.Content)
	assert.Equal(t, models.CommentActive, got.Status)
}

func TestCommentService_CreateValidation(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	author := testutil.SeedUser(t, db)
	post := testutil.SeedPost(t, db, author)
	otherPost := testutil.SeedPost(t, db, author)
	foreign := testutil.SeedComment(t, db, otherPost, author, nil)
	deleted := testutil.SeedComment(t, db, post, author, nil)
	require.NoError(t, db.Model(deleted).Update("status", models.CommentDeleted).Error)

	tests := []struct {
		name string
		in   CreateCommentInput
		code string
	}{
		{"missing post id", CreateCommentInput{AuthorID: author.ID, Content: "hi"}, models.CodeValidation},
		{"empty content", CreateCommentInput{AuthorID: author.ID, PostID: post.ID, Content: "   "}, models.CodeValidation},
		{"markup only", CreateCommentInput{AuthorID: author.ID, PostID: post.ID, Content: "<script>alert(1)</script>"}, models.CodeValidation},
		{"too long", CreateCommentInput{AuthorID: author.ID, PostID: post.ID, Content: strings.Repeat("x", 10001)}, models.CodeValidation},
		{"post not found", CreateCommentInput{AuthorID: author.ID, PostID: 9999, Content: "hi"}, models.CodeNotFound},
		{"parent not found", CreateCommentInput{AuthorID: author.ID, PostID: post.ID, Content: "hi", ParentCommentID: ptr(9999)}, models.CodeNotFound},
		{"parent on other post", CreateCommentInput{AuthorID: author.ID, PostID: post.ID, Content: "hi", ParentCommentID: &foreign.ID}, models.CodeValidation},
		{"parent deleted", CreateCommentInput{AuthorID: author.ID, PostID: post.ID, Content: "hi", ParentCommentID: &deleted.ID}, models.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svcs.Comments.CreateComment(ctx, tt.in)
			assertCode(t, err, tt.code)
		})
	}

	var rows int64
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", 9999).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestCommentService_CreateSanitizes(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	author := testutil.SeedUser(t, db)
	post := testutil.SeedPost(t, db, author)

	comment, err := svcs.Comments.CreateComment(ctx, CreateCommentInput{
		AuthorID: author.ID, PostID: post.ID,
		Content: `<strong>Buy</strong> the dip<script>alert("x")</script>`,
	})
	require.NoError(t, err)
	assert.Equal(t, "<strong>Buy</strong> the dip", comment.Content)
	assert.Equal(t, models.CommentActive, comment.Status)
	assert.Equal(t, author.Username, comment.Author.Username)
}

func TestCommentService_Update(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	author := testutil.SeedUser(t, db)
	post := testutil.SeedPost(t, db, author)
	root := testutil.SeedComment(t, db, post, author, nil)
	reply := testutil.SeedComment(t, db, post, author, root)

	_, err := svcs.Comments.UpdateComment(ctx, UpdateCommentInput{CommentID: root.ID, AuthorID: author.ID})
	assertCode(t, err, models.CodeValidation)

	_, err = svcs.Comments.UpdateComment(ctx, UpdateCommentInput{
		CommentID: root.ID, AuthorID: author.ID, Status: ptr(models.CommentStatus("hidden")),
	})
	assertCode(t, err, models.CodeValidation)

	updated, err := svcs.Comments.UpdateComment(ctx, UpdateCommentInput{
		CommentID: root.ID, AuthorID: author.ID, Content: ptr("revised numbers"),
	})
	require.NoError(t, err)
	assert.Equal(t, "revised numbers", updated.Content)

	// Editing and deleting together is rejected before either write.
	_, err = svcs.Comments.UpdateComment(ctx, UpdateCommentInput{
		CommentID: root.ID, AuthorID: author.ID, Content: ptr("last words"), Status: ptr(models.CommentDeleted),
	})
	assertCode(t, err, models.CodeValidation)
	assert.Equal(t, models.CommentActive, testutil.CommentStatus(t, db, root.ID))
	var stored models.Comment
	require.NoError(t, db.First(&stored, root.ID).Error)
	assert.Equal(t, "revised numbers", stored.Content)

	// A status change to deleted cascades like a delete.
	updated, err = svcs.Comments.UpdateComment(ctx, UpdateCommentInput{
		CommentID: root.ID, AuthorID: author.ID, Status: ptr(models.CommentDeleted),
	})
	require.NoError(t, err)
	assert.Equal(t, models.CommentDeleted, updated.Status)
	assert.Equal(t, models.CommentDeleted, testutil.CommentStatus(t, db, reply.ID))

	_, err = svcs.Comments.UpdateComment(ctx, UpdateCommentInput{
		CommentID: root.ID, AuthorID: author.ID, Content: ptr("resurrect"),
	})
	assertCode(t, err, models.CodeValidation)
}

func TestCommentService_TreeOfDeletedPost(t *testing.T) {
	svcs, db := newTestServices(t)
	ctx := context.Background()

	author := testutil.SeedUser(t, db)
	post := testutil.SeedPost(t, db, author)
	testutil.SeedComment(t, db, post, author, nil)

	require.NoError(t, svcs.Posts.DeletePost(ctx, post.ID, author.ID))

	_, err := svcs.Comments.GetCommentTree(ctx, post.ID)
	assertCode(t, err, models.CodeNotFound)

	_, err = svcs.Comments.CreateComment(ctx, CreateCommentInput{AuthorID: author.ID, PostID: post.ID, Content: "late"})
	assertCode(t, err, models.CodeNotFound)
}
