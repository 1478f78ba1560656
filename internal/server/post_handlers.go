package server

import (
	"fmt"
	"strconv"
	"strings"

	"bridgeforum/internal/models"
	"bridgeforum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /forum
// @Summary Forum
// @Description Posts with their authors, newest first.
// @Tags forum
// @Produce html
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200
// @Router /forum [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 50)
	posts, err := s.postService.ListPosts(c.UserContext(), page.fetchLimit(), page.Offset)
	if err != nil {
		return respondText(c, err)
	}
	posts, nav := paginate(page, "/forum", posts)
	return s.render(c, "forum", fiber.Map{"Title": "Foro", "Posts": posts, "Page": nav})
}

// CreatePost handles POST /forum/create-post
// @Summary Create post
// @Tags forum
// @Accept multipart/form-data
// @Param body formData string true "Text"
// @Param frustrationLevel formData int true "Frustration level (1-10)"
// @Param image formData file false "Image"
// @Success 302 "Location: /forum"
// @Failure 400 {string} string
// @Router /forum/create-post [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	user := currentUser(c)

	level, err := parseFrustrationLevel(c.FormValue("frustrationLevel"))
	if err != nil {
		return respondText(c, err)
	}

	img, err := readUpload(c, "image", service.ImagePrefixPosts, user.ID)
	if err != nil {
		return respondText(c, err)
	}

	if _, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:           user.ID,
		Body:             c.FormValue("body"),
		FrustrationLevel: level,
		Image:            img,
	}); err != nil {
		return respondText(c, err)
	}
	return c.Redirect("/forum", fiber.StatusFound)
}

// GetPost handles GET /forum/post/:id
// @Summary Post page
// @Description A post with its comments and their replies.
// @Tags forum
// @Produce html
// @Param id path int true "Post ID"
// @Success 200
// @Failure 404 {string} string
// @Router /forum/post/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondText(c, err)
	}
	return s.render(c, "post", fiber.Map{"Title": "Publicación", "Post": post})
}

// UpdatePost handles POST /forum/post/:id/edit
// @Summary Edit post
// @Description Only the author may edit.
// @Tags forum
// @Accept x-www-form-urlencoded
// @Param id path int true "Post ID"
// @Param editedPost formData string true "New text"
// @Success 302 "Location: /forum/post/{id}"
// @Failure 403 {string} string
// @Router /forum/post/{id}/edit [post]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID: currentUser(c).ID,
		PostID: id,
		Body:   c.FormValue("editedPost"),
	})
	if err != nil {
		return respondText(c, err)
	}
	return c.Redirect(postPath(post.ID), fiber.StatusFound)
}

// DeletePost handles POST /forum/post/:id/delete
// @Summary Delete post
// @Description The author or an admin deletes the post together with its comments.
// @Tags forum
// @Param id path int true "Post ID"
// @Success 302 "Location: /forum"
// @Failure 403 {string} string
// @Router /forum/post/{id}/delete [post]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user := currentUser(c)
	if err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		PostID:  id,
	}); err != nil {
		return respondText(c, err)
	}
	return c.Redirect("/forum", fiber.StatusFound)
}

func postPath(id uint) string {
	return fmt.Sprintf("/forum/post/%d", id)
}

// parseFrustrationLevel keeps the form's own wording for non-numeric input.
func parseFrustrationLevel(raw string) (int, error) {
	if _, err := strconv.Atoi(strings.TrimSpace(raw)); err != nil {
		return 0, models.NewValidationError(msgFrustrationNotNumber)
	}
	return service.ParseFrustrationLevel(raw)
}
