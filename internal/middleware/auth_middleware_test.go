package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", Auth(testSecret, "jobtracker"), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c) + "|" + UserEmail(c))
	})
	return app
}

func TestAuthAcceptsValidToken(t *testing.T) {
	token := signToken(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "jobtracker",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "jane@example.com",
	})
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := newAuthApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "user-1|jane@example.com", string(body))
}

func TestAuthRejects(t *testing.T) {
	expired := signToken(t, testSecret, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "jobtracker",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}})
	wrongSecret := signToken(t, "other", Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "jobtracker"}})
	wrongIssuer := signToken(t, testSecret, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "someone"}})
	noSubject := signToken(t, testSecret, Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "jobtracker"}})

	cases := map[string]string{
		"missing":      "",
		"expired":      "Bearer " + expired,
		"wrong secret": "Bearer " + wrongSecret,
		"wrong issuer": "Bearer " + wrongIssuer,
		"no subject":   "Bearer " + noSubject,
		"garbage":      "Bearer not-a-token",
	}
	app := newAuthApp()
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestCallbackSecret(t *testing.T) {
	app := fiber.New()
	app.Post("/cb", CallbackSecret("s3cret"), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("POST", "/cb", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("POST", "/cb", nil)
	req.Header.Set("X-N8n-Secret", "s3cret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
