// Package middleware provides authentication, logging, rate limiting and
// tracing middleware for the application.
package middleware

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"pinboard/internal/auth"
	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CredentialCookie is the cookie that carries the bearer credential,
// named for the authorization header convention. Its value is always
// "Bearer <token>".
const CredentialCookie = "Authorization"

const bearerScheme = "Bearer"

// PrincipalResolver resolves a verified user ID to the stored user record.
type PrincipalResolver interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// authFailure is the closed set of reasons a request can be rejected
// before reaching a handler. The switch in message() is exhaustive;
// adding a variant without a message is a compile-time-visible omission.
type authFailure int

const (
	noCredential authFailure = iota
	badScheme
	expiredCredential
	malformedCredential
	unknownPrincipal
)

func (f authFailure) message() string {
	switch f {
	case noCredential:
		return "Credential cookie required"
	case badScheme:
		return "Credential must use the Bearer scheme"
	case expiredCredential:
		return "Token has expired"
	case malformedCredential:
		return "Token is invalid"
	case unknownPrincipal:
		return "Token principal no longer exists"
	}
	return "Authentication failed"
}

// AuthRequired enforces authentication for protected routes. It reads the
// credential cookie, verifies the token, resolves the principal through
// the user store and attaches it to the request. Every rejection clears
// the cookie so the client does not keep replaying a dead credential; a
// request never reaches its handler with a partially populated principal.
func AuthRequired(tokens *auth.TokenService, users PrincipalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		holder := c.Cookies(CredentialCookie)
		if holder == "" {
			return reject(c, noCredential)
		}
		// The value is URL-encoded on write because the scheme prefix
		// contains a space, which is not a legal cookie byte.
		if decoded, err := url.QueryUnescape(holder); err == nil {
			holder = decoded
		}

		parts := strings.SplitN(holder, " ", 2)
		if len(parts) != 2 || parts[0] != bearerScheme {
			return reject(c, badScheme)
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				return reject(c, expiredCredential)
			default:
				return reject(c, malformedCredential)
			}
		}

		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil {
			if models.IsNotFound(err) {
				return reject(c, unknownPrincipal)
			}
			return models.RespondWithError(c, models.NewInternalError(err))
		}

		// Store the principal in locals and propagate the user ID into the
		// request context for the context-aware logger.
		c.Locals("userID", user.ID)
		c.Locals("principal", user)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, user.ID))

		return c.Next()
	}
}

// ClearCredential unsets the credential cookie on the client.
func ClearCredential(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CredentialCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func reject(c *fiber.Ctx, reason authFailure) error {
	ClearCredential(c)
	return models.RespondWithError(c, models.NewAuthenticationError(reason.message()))
}
