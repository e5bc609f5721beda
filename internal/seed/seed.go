// Package seed creates demo data for development and testing.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"pinboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// Password is the clear-text password every seeded account gets.
	// Defaults to "1234" so seeded accounts are easy to log into.
	Password string
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// nickname derives a board-legal nickname from a fake username. The
// index suffix keeps nicknames unique across a run.
func nickname(i int) string {
	base := nonAlnum.ReplaceAllString(gofakeit.Username(), "")
	if len(base) > 20 {
		base = base[:20]
	}
	if base == "" {
		base = "user"
	}
	return strings.ToLower(base) + fmt.Sprint(i)
}

// Run populates the database with users, posts, comments and likes.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 100
	}
	if opts.Password == "" {
		opts.Password = "1234"
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := &models.User{
			Nickname: nickname(i),
			Password: string(hash),
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	slog.Info("seeded users", slog.Int("count", len(users)))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[r.Intn(len(users))]
		post := &models.Post{
			Title:     strings.TrimSuffix(gofakeit.Sentence(r.Intn(5)+3), "."),
			Content:   gofakeit.Paragraph(1, r.Intn(3)+1, r.Intn(8)+4, "\n"),
			UserID:    author.ID,
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}
	slog.Info("seeded posts", slog.Int("count", len(posts)))

	var comments, likes int
	for _, post := range posts {
		for i := 0; i < r.Intn(5); i++ {
			commenter := users[r.Intn(len(users))]
			comment := &models.Comment{
				Content:   gofakeit.HipsterSentence(r.Intn(10) + 3),
				UserID:    commenter.ID,
				PostID:    post.ID,
				CreatedAt: post.CreatedAt.Add(time.Duration(r.Intn(72)) * time.Hour),
			}
			if err := db.Create(comment).Error; err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			comments++
		}

		// Each post gets likes from a random prefix of a shuffled user
		// list, so the uniqueness constraint is never violated.
		shuffled := r.Perm(len(users))
		for _, idx := range shuffled[:r.Intn(len(users))] {
			like := &models.Like{UserID: users[idx].ID, PostID: post.ID}
			if err := db.Create(like).Error; err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
			likes++
		}
	}
	slog.Info("seeded interactions",
		slog.Int("comments", comments),
		slog.Int("likes", likes),
	)

	return nil
}

// Clean removes all seeded rows, interactions first so foreign keys
// stay satisfied.
func Clean(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Like{},
		&models.Comment{},
		&models.Post{},
		&models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clean %T: %w", model, err)
		}
	}
	return nil
}
