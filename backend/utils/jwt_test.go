package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"project/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractWith(t *testing.T, cfg *config.Config, token string) (uint, int) {
	t.Helper()

	var got uint
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		id, err := ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return err
		}
		got = id
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return got, resp.StatusCode
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}
	token, err := GenerateJWTToken(42, cfg)
	require.NoError(t, err)

	got, status := extractWith(t, cfg, token)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, uint(42), got)
}

func TestExtractRejectsBadTokens(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	_, status := extractWith(t, cfg, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// Signed with another secret.
	foreign, err := GenerateJWTToken(42, &config.Config{JWTSecret: "other"})
	require.NoError(t, err)
	_, status = extractWith(t, cfg, foreign)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// Right secret, wrong issuer.
	claims := jwt.MapClaims{
		"iss":     "someone-else",
		"exp":     time.Now().Add(time.Hour).Unix(),
		"user_id": 42,
	}
	spoofed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)
	_, status = extractWith(t, cfg, spoofed)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
