// Package seed fills a database with demo users, posts, comment threads and votes.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
	"github.com/emilythestrangee/investor-hub/backend/internal/repository"
	"github.com/emilythestrangee/investor-hub/backend/internal/service"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "password123"

var industries = []string{"fintech", "biotech", "energy", "saas", "real-estate", "semiconductors", "consumer"}

// Options sizes a seeding run.
type Options struct {
	Users           int
	Posts           int
	CommentsPerPost int
	VotesPerUser    int
}

type Result struct {
	Users    int
	Posts    int
	Comments int
	Votes    int
}

type Seeder struct {
	db    *gorm.DB
	repos *repository.Repositories
	svcs  *service.Services
	faker *gofakeit.Faker
}

func NewSeeder(db *gorm.DB, seed int64) *Seeder {
	repos := repository.New(db)
	return &Seeder{
		db:    db,
		repos: repos,
		svcs:  service.New(repos, nil),
		faker: gofakeit.New(seed),
	}
}

// ClearAll deletes every row the seeder can create.
func (s *Seeder) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Vote{}, &models.Comment{}, &models.Post{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// Run seeds users, then posts, then comment threads, then votes. Comments and
// votes go through the services so they obey the same rules as API traffic.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", s.faker.Username(), i),
			Email:    fmt.Sprintf("investor%d@%s", i, s.faker.DomainName()),
			Password: string(hash),
			Bio:      s.faker.Sentence(10),
			Avatar:   fmt.Sprintf("%d", s.faker.Number(1, 6)),
		}
		if err := s.repos.Users.Create(ctx, user); err != nil {
			return res, fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
		res.Users++
	}
	if len(users) == 0 {
		return res, nil
	}

	posts := make([]*models.Post, 0, opts.Posts)
	for i := 0; i < opts.Posts; i++ {
		post, err := s.svcs.Posts.CreatePost(ctx, service.CreatePostInput{
			AuthorID:    s.pickUser(users).ID,
			Title:       s.faker.Sentence(6),
			Body:        s.faker.Paragraph(2, 4, 12, "\n\n"),
			IndustryTag: s.faker.RandomString(industries),
		})
		if err != nil {
			return res, fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
		res.Posts++
	}

	var comments []*models.Comment
	for _, post := range posts {
		thread := make([]*models.Comment, 0, opts.CommentsPerPost)
		for i := 0; i < opts.CommentsPerPost; i++ {
			in := service.CreateCommentInput{
				AuthorID: s.pickUser(users).ID,
				PostID:   post.ID,
				Content:  s.faker.Sentence(s.faker.Number(5, 25)),
			}
			// Roughly two thirds of comments reply to an earlier one.
			if len(thread) > 0 && s.faker.Number(0, 2) > 0 {
				in.ParentCommentID = &thread[s.faker.Number(0, len(thread)-1)].ID
			}
			comment, err := s.svcs.Comments.CreateComment(ctx, in)
			if err != nil {
				return res, fmt.Errorf("seed comment: %w", err)
			}
			thread = append(thread, comment)
			res.Comments++
		}
		comments = append(comments, thread...)
	}

	for _, user := range users {
		for i := 0; i < opts.VotesPerUser; i++ {
			targetType, targetID := models.TargetPost, 0
			if len(comments) > 0 && s.faker.Bool() {
				targetType, targetID = models.TargetComment, comments[s.faker.Number(0, len(comments)-1)].ID
			} else if len(posts) > 0 {
				targetID = posts[s.faker.Number(0, len(posts)-1)].ID
			} else {
				break
			}
			direction := models.DirectionUp
			if s.faker.Number(0, 3) == 0 {
				direction = models.DirectionDown
			}
			result, err := s.svcs.Votes.ToggleVote(ctx, user.ID, targetType, targetID, direction)
			if err != nil {
				return res, fmt.Errorf("seed vote: %w", err)
			}
			switch result.Action {
			case models.VoteCreated:
				res.Votes++
			case models.VoteRemoved:
				res.Votes--
			}
		}
	}

	slog.InfoContext(ctx, "seed complete",
		"users", res.Users, "posts", res.Posts, "comments", res.Comments, "votes", res.Votes)
	return res, nil
}

func (s *Seeder) pickUser(users []*models.User) *models.User {
	return users[s.faker.Number(0, len(users)-1)]
}
