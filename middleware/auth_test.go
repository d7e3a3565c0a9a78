package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminOnly(t *testing.T) {
	app := fiber.New()
	app.Get("/secret", AdminOnly(func(name, password string) bool {
		return name == "admin" && password == "pw"
	}), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	tests := []struct {
		query string
		want  int
	}{
		{"?name=admin&password=pw", fiber.StatusOK},
		{"?name=admin&password=nope", fiber.StatusForbidden},
		{"?name=alice&password=pw", fiber.StatusForbidden},
		{"", fiber.StatusForbidden},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", "/secret"+tt.query, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.want, resp.StatusCode, tt.query)
	}
}
