package server

import (
	"bridgeforum/internal/service"

	"github.com/gofiber/fiber/v2"
)

const msgProfileUpdated = "Perfil actualizado"

// GetProfile handles GET /profile
// @Summary Profile
// @Description The current user and the posts they wrote.
// @Tags profile
// @Produce html
// @Success 200
// @Router /profile [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user, err := s.userService.GetUser(ctx, currentUser(c).ID)
	if err != nil {
		return respondText(c, err)
	}

	page := parsePagination(c, 50)
	posts, err := s.postService.ListUserPosts(ctx, user.ID, page.Limit, page.Offset)
	if err != nil {
		return respondText(c, err)
	}
	return s.render(c, "profile", fiber.Map{"Title": "Perfil", "User": user, "Posts": posts})
}

// ProfileUpdatePage handles GET /profile/update
func (s *Server) ProfileUpdatePage(c *fiber.Ctx) error {
	return s.render(c, "profile_update", fiber.Map{"Title": "Editar perfil", "User": currentUser(c)})
}

// UpdateProfile handles PUT /profile
// @Summary Update profile
// @Description HTML forms may POST with _method=PUT. A blank email keeps the current one.
// @Tags profile
// @Accept multipart/form-data
// @Param username formData string false "Username"
// @Param email formData string false "Email"
// @Param country formData string false "Country"
// @Param age formData int false "Age"
// @Param profession formData string false "Profession"
// @Param photo formData file false "Profile photo"
// @Success 302 "Location: /profile"
// @Failure 302 "Location: /profile/update"
// @Router /profile [put]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	user := currentUser(c)

	photo, err := readUpload(c, "photo", service.ImagePrefixProfiles, user.ID)
	if err != nil {
		return s.redirectWithError(c, "/profile/update", err)
	}

	if _, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:     user.ID,
		Username:   c.FormValue("username"),
		Email:      c.FormValue("email"),
		Country:    c.FormValue("country"),
		Age:        c.FormValue("age"),
		Profession: c.FormValue("profession"),
		Photo:      photo,
	}); err != nil {
		return s.redirectWithError(c, "/profile/update", err)
	}
	return s.redirectWithSuccess(c, "/profile", msgProfileUpdated)
}

// ListUsers handles GET /usuarios
// @Summary Users
// @Tags profile
// @Produce html
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200
// @Router /usuarios [get]
func (s *Server) ListUsers(c *fiber.Ctx) error {
	page := parsePagination(c, maxPaginationLimit)
	users, err := s.userService.ListUsers(c.UserContext(), page.fetchLimit(), page.Offset)
	if err != nil {
		return respondText(c, err)
	}
	users, nav := paginate(page, "/usuarios", users)
	return s.render(c, "usuarios", fiber.Map{"Title": "Usuarios", "Users": users, "Page": nav})
}
