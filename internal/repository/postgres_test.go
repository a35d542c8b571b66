package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/investor-hub/backend/internal/database"
	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/testutil"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("investor_hub_test"),
		postgres.WithUsername("forum"),
		postgres.WithPassword("forum"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	svc, err := database.Open(dsn, "investor_hub_test", logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	health := svc.Health(ctx)
	require.Equal(t, "up", health["status"])
	return svc.GetDB()
}

func TestPostgres_ConcurrentToggles(t *testing.T) {
	db := startPostgres(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	voter := testutil.SeedUser(t, db)
	post := testutil.SeedPost(t, db, voter)

	const n = 32
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _, err := repo.Toggle(ctx, voter.ID, models.TargetPost, post.ID, models.DirectionUp)
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			assert.True(t, models.HasCode(err, models.CodeConflict), "unexpected error: %v", err)
		}
	}

	var rows int64
	require.NoError(t, db.Model(&models.Vote{}).
		Where("voter_id = ? AND target_type = ? AND target_id = ?", voter.ID, models.TargetPost, post.ID).
		Count(&rows).Error)
	assert.LessOrEqual(t, rows, int64(1))

	count, err := repo.Count(ctx, models.TargetPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, rows, count.Count)
}

func TestPostgres_SoftDeleteSubtree(t *testing.T) {
	db := startPostgres(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := testutil.SeedUser(t, db)
	post := testutil.SeedPost(t, db, author)

	parent := testutil.SeedComment(t, db, post, author, nil)
	ids := []int{parent.ID}
	for i := 0; i < 2500; i++ {
		parent = testutil.SeedComment(t, db, post, author, parent)
		ids = append(ids, parent.ID)
	}
	sibling := testutil.SeedComment(t, db, post, author, nil)

	root, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)

	n, err := repo.SoftDeleteSubtree(ctx, root)
	require.NoError(t, err)
	assert.EqualValues(t, len(ids), n)

	var active int64
	require.NoError(t, db.Model(&models.Comment{}).
		Where("id IN ? AND status = ?", ids, models.CommentActive).
		Count(&active).Error)
	assert.Zero(t, active)
	assert.Equal(t, models.CommentActive, testutil.CommentStatus(t, db, sibling.ID))
}

func TestPostgres_DuplicateUserIsConflict(t *testing.T) {
	db := startPostgres(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "graham", Email: "graham@example.com", Password: "x"}))
	err := repo.Create(ctx, &models.User{Username: "graham", Email: "other@example.com", Password: "x"})
	assert.True(t, models.HasCode(err, models.CodeConflict))
}
