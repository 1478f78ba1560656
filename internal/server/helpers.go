package server

import (
	"errors"
	"io"
	"strings"
	"unicode"

	"bridgeforum/internal/models"
	"bridgeforum/internal/service"
	"bridgeforum/internal/session"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	maxPaginationLimit = 100
)

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// PageNav drives the previous/next links rendered under a list.
type PageNav struct {
	Path       string
	Limit      int
	PrevOffset int
	NextOffset int
	HasPrev    bool
	HasNext    bool
}

// fetchLimit asks for one row past the page so the next link is only shown when rows remain.
func (p Pagination) fetchLimit() int {
	return p.Limit + 1
}

// paginate trims rows fetched with fetchLimit back to the page size.
func paginate[T any](p Pagination, path string, rows []T) ([]T, PageNav) {
	nav := PageNav{Path: path, Limit: p.Limit, HasPrev: p.Offset > 0}
	if p.Offset > 0 {
		nav.PrevOffset = max(p.Offset-p.Limit, 0)
	}
	if len(rows) > p.Limit {
		rows = rows[:p.Limit]
		nav.HasNext = true
		nav.NextOffset = p.Offset + p.Limit
	}
	return rows, nav
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 text response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
// The message is derived from the parameter name (e.g. "id" -> "Invalid ID",
// "commentId" -> "Invalid comment ID").
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusBadRequest).SendString("Invalid " + humanizeParam(param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		words := splitCamel(param[:len(param)-2])
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// currentUser returns the session user. RequireUser guarantees it on protected routes.
func currentUser(c *fiber.Ctx) *models.User {
	user, err := session.CurrentUser(c)
	if err != nil {
		return &models.User{}
	}
	return user
}

// readUpload reads an optional multipart file. It returns nil when the field is absent or empty.
func readUpload(c *fiber.Ctx, field, prefix string, userID uint) (*service.UploadImageInput, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh.Size == 0 {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &service.UploadImageInput{
		UserID:      userID,
		Prefix:      prefix,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
