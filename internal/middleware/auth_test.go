package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"pinboard/internal/auth"
	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverStub struct {
	getByIDFn func(context.Context, uint) (*models.User, error)
}

func (s *resolverStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func knownUserResolver(id uint) *resolverStub {
	return &resolverStub{
		getByIDFn: func(_ context.Context, got uint) (*models.User, error) {
			if got != id {
				return nil, models.NewNotFoundError("User", got)
			}
			return &models.User{ID: got, Nickname: "alice1"}, nil
		},
	}
}

const testSecret = "test-secret-test-secret-test-secret"

func newAuthApp(t *testing.T, resolver PrincipalResolver) (*fiber.App, *auth.TokenService) {
	t.Helper()
	tokens := auth.NewTokenService(testSecret, "pinboard-api")

	app := fiber.New()
	app.Get("/protected", AuthRequired(tokens, resolver), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	return app, tokens
}

func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if value != "" {
		req.Header.Set("Cookie", CredentialCookie+"="+value)
	}
	return req
}

// expiredToken signs a token whose lifetime window has already passed.
func expiredToken(t *testing.T) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "7",
		Issuer:    "pinboard-api",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAuthRequired(t *testing.T) {
	app, tokens := newAuthApp(t, knownUserResolver(7))

	valid, err := tokens.Issue(7)
	require.NoError(t, err)

	tests := []struct {
		name       string
		cookie     string
		wantStatus int
	}{
		{"no cookie", "", http.StatusUnauthorized},
		{"wrong scheme", url.PathEscape("Basic " + valid), http.StatusUnauthorized},
		{"no scheme at all", valid, http.StatusUnauthorized},
		{"garbage token", url.PathEscape("Bearer not-a-token"), http.StatusUnauthorized},
		{"expired token", url.PathEscape("Bearer " + expiredToken(t)), http.StatusUnauthorized},
		{"valid credential", url.PathEscape("Bearer " + valid), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(requestWithCookie(tt.cookie))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusUnauthorized && tt.cookie != "" {
				// Every rejection expires the cookie so the client stops
				// replaying a dead credential.
				var cleared bool
				for _, c := range resp.Cookies() {
					if c.Name == CredentialCookie && c.Value == "" {
						cleared = true
					}
				}
				assert.True(t, cleared, "rejection must clear the credential cookie")
			}
		})
	}
}

func TestAuthRequired_UnknownPrincipal(t *testing.T) {
	resolver := &resolverStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		},
	}
	app, tokens := newAuthApp(t, resolver)

	token, err := tokens.Issue(99)
	require.NoError(t, err)

	resp, err := app.Test(requestWithCookie(url.PathEscape("Bearer " + token)))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_ResolverFault(t *testing.T) {
	resolver := &resolverStub{
		getByIDFn: func(_ context.Context, _ uint) (*models.User, error) {
			return nil, models.NewInternalError(assert.AnError)
		},
	}
	app, tokens := newAuthApp(t, resolver)

	token, err := tokens.Issue(7)
	require.NoError(t, err)

	// A storage fault is not the client's fault: 500, not 401.
	resp, err := app.Test(requestWithCookie(url.PathEscape("Bearer " + token)))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
