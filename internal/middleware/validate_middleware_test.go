package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productos/internal/middleware"
	"productos/internal/validation"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	v, err := validation.New()
	require.NoError(t, err)

	app := fiber.New()
	echo := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"body": middleware.ValidatedBody(c)})
	}
	app.Get("/items/:id", middleware.ValidateInput(v, validation.ProductIDRules()), echo)
	app.Post("/items", middleware.ValidateInput(v, validation.CreateProductRules()), echo)
	return app
}

func TestValidateInput(t *testing.T) {
	app := setupApp(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantErrors int
	}{
		{name: "valid id", method: http.MethodGet, path: "/items/10", wantStatus: http.StatusOK},
		{name: "invalid id", method: http.MethodGet, path: "/items/abc", wantStatus: http.StatusBadRequest, wantErrors: 1},
		{name: "valid body", method: http.MethodPost, path: "/items", body: `{"name":"Mouse","price":50}`, wantStatus: http.StatusOK},
		{name: "empty body", method: http.MethodPost, path: "/items", wantStatus: http.StatusBadRequest, wantErrors: 4},
		{name: "malformed body", method: http.MethodPost, path: "/items", body: `{"name"`, wantStatus: http.StatusBadRequest, wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body struct {
				Errors []validation.FieldError `json:"errors"`
				Body   map[string]any          `json:"body"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Len(t, body.Errors, tt.wantErrors)
		})
	}
}

func TestValidatedBodyIsForwarded(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"Mouse","price":"50"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Body map[string]any `json:"body"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Mouse", body.Body["name"])
	assert.Equal(t, "50", body.Body["price"])
}
