package repository

import (
	"context"

	"pinboard/internal/cache"
	"pinboard/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations. The
// storage schema enforces at most one like per (post, user); Create is
// the only operation that can observe that constraint and reports it as
// a Conflict.
type LikeRepository interface {
	Find(ctx context.Context, postID, userID uint) (*models.Like, error)
	Create(ctx context.Context, like *models.Like) error
	// DeleteByID removes a like by its own identifier and reports whether
	// a row was actually removed, so a caller can tell a successful delete
	// from a concurrent one that got there first. The post ID is needed to
	// drop the cached post, whose likes_count the delete just changed.
	DeleteByID(ctx context.Context, id, postID uint) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Find(ctx context.Context, postID, userID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&like).Error
	if err != nil {
		return nil, translateError(err, "Like", postID)
	}
	return &like, nil
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return translateError(err, "Like", like.PostID)
	}
	cache.InvalidatePost(ctx, like.PostID)
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *likeRepository) DeleteByID(ctx context.Context, id, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Like{}, id)
	if res.Error != nil {
		return false, translateError(res.Error, "Like", id)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidatePostsList(ctx)
	return true, nil
}
