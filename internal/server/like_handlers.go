package server

import (
	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles PUT /api/posts/:postId/like. The same endpoint
// turns the caller's like on and off; the response says which way the
// toggle landed.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	outcome, err := s.likeService.Toggle(c.UserContext(), principalID(c), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if outcome == service.LikeCreated {
		return c.JSON(fiber.Map{
			"message": "Post liked",
			"liked":   true,
		})
	}
	return c.JSON(fiber.Map{
		"message": "Like removed",
		"liked":   false,
	})
}
