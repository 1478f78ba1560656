package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bridgeforum/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- humanizeParam (pure function, no HTTP) ---

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"commentId", "comment ID"},
		{"parentCommentId", "parent comment ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

// --- parsePagination ---

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 25, 0},
		{"?limit=10&offset=30", 10, 30},
		{"?limit=-1&offset=-5", 25, 0},
		{"?limit=5000", maxPaginationLimit, 0},
	}

	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c, 25)
		return c.JSON(fiber.Map{"limit": p.Limit, "offset": p.Offset})
	})

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			var body map[string]int
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantLimit, body["limit"])
			assert.Equal(t, tt.wantOffset, body["offset"])
		})
	}
}

// --- parseID ---

func TestParseID(t *testing.T) {
	app := fiber.New()
	app.Get("/comments/:commentId", func(c *fiber.Ctx) error {
		id, err := parseID(c, "commentId")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/comments/42", http.StatusOK, `{"id":42}`},
		{"/comments/abc", http.StatusBadRequest, "Invalid comment ID"},
		{"/comments/0", http.StatusBadRequest, "Invalid comment ID"},
		{"/comments/-4", http.StatusBadRequest, "Invalid comment ID"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

// --- error mapping ---

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", models.NewValidationError("Content is required"), http.StatusBadRequest, "Content is required"},
		{"forbidden", models.NewForbiddenError("not yours"), http.StatusForbidden, "not yours"},
		{"not found", models.NewNotFoundError("Post", 3), http.StatusNotFound, "Post with ID 3 not found"},
		{"conflict", models.NewConflictError("Email already registered"), http.StatusConflict, "Email already registered"},
		{"internal hides details", models.NewInternalError(errors.New("pq: connection refused")), http.StatusInternalServerError, msgInternal},
		{"foreign error", errors.New("boom"), http.StatusInternalServerError, msgInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestIsAuthor(t *testing.T) {
	assert.True(t, isAuthor(&models.User{ID: 3}, 3))
	assert.False(t, isAuthor(&models.User{ID: 3}, 4))
	assert.False(t, isAuthor(nil, 0))
	assert.False(t, isAuthor(&models.User{}, 0))
}

func TestRespondText_NegotiatesJSON(t *testing.T) {
	app := fiber.New()
	app.Get("/missing", func(c *fiber.Ctx) error {
		return respondText(c, models.NewNotFoundError("Post", 3))
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondText(c, errors.New("pq: connection refused"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Post with ID 3 not found", string(body))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("Accept", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	var payload models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Post with ID 3 not found", payload.Error)
	assert.Equal(t, models.CodeNotFound, payload.Code)

	req = httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("Accept", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, msgInternal, payload.Error)
}

func TestPaginate(t *testing.T) {
	rows, nav := paginate(Pagination{Limit: 2}, "/forum", []int{1, 2, 3})
	assert.Equal(t, []int{1, 2}, rows)
	assert.Equal(t, PageNav{Path: "/forum", Limit: 2, HasNext: true, NextOffset: 2}, nav)

	rows, nav = paginate(Pagination{Limit: 2, Offset: 3}, "/forum", []int{4})
	assert.Equal(t, []int{4}, rows)
	assert.False(t, nav.HasNext)
	assert.True(t, nav.HasPrev)
	assert.Equal(t, 1, nav.PrevOffset)
}
