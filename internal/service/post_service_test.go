package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pinboard/internal/cache"
	"pinboard/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint, uint) (*models.Post, error)
	listFn        func(context.Context, int, int, uint) ([]*models.Post, error)
	listLikedByFn func(context.Context, uint) ([]*models.Post, error)
	updateFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) ListLikedBy(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listLikedByFn(ctx, userID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:      func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:     func(_ context.Context, _, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn:        func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		listLikedByFn: func(_ context.Context, _ uint) ([]*models.Post, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// assertCode asserts that err is an AppError carrying the given taxonomy code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func TestCreatePost_Validation(t *testing.T) {
	svc := NewPostService(noopPostRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{"missing title", CreatePostInput{UserID: 1, Content: "body"}},
		{"missing content", CreatePostInput{UserID: 1, Title: "hello"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, tt.input)
			assertCode(t, err, models.CodeValidation)
		})
	}
}

func TestCreatePost_Success(t *testing.T) {
	repo := noopPostRepo()
	repo.createFn = func(_ context.Context, post *models.Post) error {
		post.ID = 42
		return nil
	}
	repo.getByIDFn = func(_ context.Context, id, currentUserID uint) (*models.Post, error) {
		assert.Equal(t, uint(42), id)
		assert.Equal(t, uint(7), currentUserID)
		return &models.Post{ID: id, Title: "hello", Content: "body", UserID: 7}, nil
	}

	svc := NewPostService(repo)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 7, Title: "hello", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, uint(42), post.ID)
}

// Only the anonymous default page shares the cache entry. A request
// with a different limit must not be served the cached 20-item page.
func TestListPosts_CachesOnlyDefaultAnonymousPage(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	var fetches int
	repo := noopPostRepo()
	repo.listFn = func(_ context.Context, limit, _ int, _ uint) ([]*models.Post, error) {
		fetches++
		posts := make([]*models.Post, limit)
		for i := range posts {
			posts[i] = &models.Post{ID: uint(i + 1), Title: fmt.Sprintf("post %d", i+1)}
		}
		return posts, nil
	}
	svc := NewPostService(repo)
	ctx := context.Background()

	first, err := svc.ListPosts(ctx, DefaultPageSize, 0, 0)
	require.NoError(t, err)
	assert.Len(t, first, DefaultPageSize)
	assert.Equal(t, 1, fetches)

	second, err := svc.ListPosts(ctx, DefaultPageSize, 0, 0)
	require.NoError(t, err)
	assert.Len(t, second, DefaultPageSize)
	assert.Equal(t, 1, fetches, "default anonymous page must be served from cache")

	small, err := svc.ListPosts(ctx, 5, 0, 0)
	require.NoError(t, err)
	assert.Len(t, small, 5, "a smaller page must come from storage, not the cached page")
	assert.Equal(t, 2, fetches)

	personal, err := svc.ListPosts(ctx, DefaultPageSize, 0, 7)
	require.NoError(t, err)
	assert.Len(t, personal, DefaultPageSize)
	assert.Equal(t, 3, fetches, "logged-in reads bypass the shared entry")
}

func TestUpdatePost_Ownership(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, Title: "t", Content: "c", UserID: 7}, nil
	}

	svc := NewPostService(repo)
	ctx := context.Background()

	t.Run("Wrong Owner Forbidden", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, UpdatePostInput{UserID: 8, PostID: 1, Title: "x", Content: "y"})
		assertCode(t, err, models.CodeForbidden)
	})

	t.Run("Owner Succeeds", func(t *testing.T) {
		var saved *models.Post
		repo.updateFn = func(_ context.Context, post *models.Post) error {
			saved = post
			return nil
		}
		post, err := svc.UpdatePost(ctx, UpdatePostInput{UserID: 7, PostID: 1, Title: "new", Content: "body"})
		require.NoError(t, err)
		assert.Equal(t, "new", saved.Title)
		assert.Equal(t, "new", post.Title)
	})
}

func TestUpdatePost_NotFoundPassesThrough(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	svc := NewPostService(repo)
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 7, PostID: 99, Title: "x", Content: "y"})
	assertCode(t, err, models.CodeNotFound)
}

func TestDeletePost_Ownership(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 7}, nil
	}

	svc := NewPostService(repo)
	ctx := context.Background()

	t.Run("Wrong Owner Forbidden", func(t *testing.T) {
		var deleted bool
		repo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		err := svc.DeletePost(ctx, DeletePostInput{UserID: 8, PostID: 1})
		assertCode(t, err, models.CodeForbidden)
		assert.False(t, deleted, "a forbidden delete must not reach storage")
	})

	t.Run("Owner Succeeds", func(t *testing.T) {
		err := svc.DeletePost(ctx, DeletePostInput{UserID: 7, PostID: 1})
		assert.NoError(t, err)
	})
}
