package server

import (
	"bridgeforum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /comments/post/:id/comment
// @Summary Comment on a post
// @Tags comments
// @Accept multipart/form-data
// @Param id path int true "Post ID"
// @Param comment formData string false "Text"
// @Param image formData file false "Image"
// @Success 302 "Location: /forum/post/{id}"
// @Failure 400 {string} string
// @Failure 404 {string} string
// @Router /comments/post/{id}/comment [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	user := currentUser(c)

	img, err := readUpload(c, "image", service.ImagePrefixComments, user.ID)
	if err != nil {
		return respondText(c, err)
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID: user.ID,
		PostID: postID,
		Body:   c.FormValue("comment"),
		Image:  img,
	})
	if err != nil {
		return respondText(c, err)
	}
	return c.Redirect(postPath(comment.PostID), fiber.StatusFound)
}

// ReplyToComment handles POST /comments/comment/:id/reply
// @Summary Reply to a comment
// @Description Replies to a reply are attached to the top-level comment.
// @Tags comments
// @Accept multipart/form-data
// @Param id path int true "Comment ID"
// @Param reply formData string false "Text"
// @Param replyImage formData file false "Image"
// @Success 302 "Location: /forum/post/{postId}"
// @Failure 404 {string} string
// @Router /comments/comment/{id}/reply [post]
func (s *Server) ReplyToComment(c *fiber.Ctx) error {
	parentID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	user := currentUser(c)

	img, err := readUpload(c, "replyImage", service.ImagePrefixComments, user.ID)
	if err != nil {
		return respondText(c, err)
	}

	reply, err := s.commentService.Reply(c.UserContext(), service.ReplyInput{
		UserID:   user.ID,
		ParentID: parentID,
		Body:     c.FormValue("reply"),
		Image:    img,
	})
	if err != nil {
		return respondText(c, err)
	}
	return c.Redirect(postPath(reply.PostID), fiber.StatusFound)
}

// UpdateComment handles POST /comments/comment/:id/edit
// @Summary Edit comment
// @Description Only the author may edit.
// @Tags comments
// @Accept x-www-form-urlencoded
// @Param id path int true "Comment ID"
// @Param editedComment formData string true "New text"
// @Success 302 "Location: /forum/post/{postId}"
// @Failure 403 {string} string
// @Router /comments/comment/{id}/edit [post]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    currentUser(c).ID,
		CommentID: id,
		Body:      c.FormValue("editedComment"),
	})
	if err != nil {
		return respondText(c, err)
	}
	return c.Redirect(postPath(comment.PostID), fiber.StatusFound)
}

// DeleteComment handles POST /comments/comment/:id/delete
// @Summary Delete comment
// @Description The author or an admin deletes the comment and its replies.
// @Tags comments
// @Produce plain
// @Param id path int true "Comment ID"
// @Success 200 {string} string
// @Failure 403 {string} string
// @Router /comments/comment/{id}/delete [post]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user := currentUser(c)
	if _, err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    user.ID,
		IsAdmin:   user.IsAdmin,
		CommentID: id,
	}); err != nil {
		return respondText(c, err)
	}
	return c.Status(fiber.StatusOK).SendString("Comentario eliminado")
}
