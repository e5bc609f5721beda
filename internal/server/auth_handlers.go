package server

import (
	"net/url"
	"time"

	"pinboard/internal/auth"
	"pinboard/internal/middleware"
	"pinboard/internal/models"
	"pinboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Nickname        string `json:"nickname"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Signup(c.UserContext(), service.SignupInput{
		Nickname:        req.Nickname,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/auth/login. On success the bearer token is
// both returned in the body and set as the credential cookie, value
// "Bearer <token>", so browser clients authenticate implicitly.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Login(c.UserContext(), service.LoginInput{
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	// URL-encoded because the scheme prefix contains a space.
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CredentialCookie,
		Value:    url.PathEscape("Bearer " + token),
		Expires:  time.Now().Add(auth.TokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout. Tokens are self-contained and
// cannot be revoked, so logout only clears the client's cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	middleware.ClearCredential(c)
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}
