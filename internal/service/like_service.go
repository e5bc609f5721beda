package service

import (
	"context"

	"pinboard/internal/models"
	"pinboard/internal/observability"
	"pinboard/internal/repository"
)

// ToggleOutcome says which way a like toggle landed.
type ToggleOutcome int

const (
	LikeCreated ToggleOutcome = iota
	LikeRemoved
)

// maxToggleAttempts bounds the retry loop. Each retry means another
// request raced us on the same (post, user) pair; three rounds of losing
// both the create and the delete is pathological enough to give up.
const maxToggleAttempts = 3

type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, postRepo: postRepo}
}

// Toggle flips the caller's like on a post: absent becomes present,
// present becomes absent. The storage uniqueness constraint on
// (user_id, post_id) is the arbiter under concurrency; a create that
// loses the race surfaces as a conflict and the loop re-reads, so N
// racing toggles always leave the pair with either zero likes or one.
func (s *LikeService) Toggle(ctx context.Context, userID, postID uint) (ToggleOutcome, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return 0, err
	}

	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		like, err := s.likeRepo.Find(ctx, postID, userID)
		switch {
		case models.IsNotFound(err):
			createErr := s.likeRepo.Create(ctx, &models.Like{PostID: postID, UserID: userID})
			if models.IsConflict(createErr) {
				// A concurrent toggle created the row first. That create
				// counts as this user's "on", so absorb it by re-reading
				// and removing on the next pass.
				observability.LikeToggleConflicts.Inc()
				continue
			}
			if createErr != nil {
				return 0, createErr
			}
			return LikeCreated, nil

		case err != nil:
			return 0, err

		default:
			removed, delErr := s.likeRepo.DeleteByID(ctx, like.ID, postID)
			if delErr != nil {
				return 0, delErr
			}
			if !removed {
				// A concurrent toggle deleted it first; re-read and recreate.
				observability.LikeToggleConflicts.Inc()
				continue
			}
			return LikeRemoved, nil
		}
	}

	return 0, models.NewConflictError("Like is being updated concurrently, try again")
}
