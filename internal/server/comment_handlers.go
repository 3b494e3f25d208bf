package server

import (
	"curiouslife/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /blogs/comment/:blogId
func (s *Server) AddComment(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "blogId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.AddComment(c.UserContext(), s.identity(c), blogID, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusCreated, "Comment added", fiber.Map{
		"comment": comment,
	})
}

// GetComments handles GET /blogs/:blogId/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "blogId")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.UserContext(), blogID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Comments", fiber.Map{
		"comments": comments,
	})
}

// EditComment handles PUT /blogs/editComment/:commentId
func (s *Server) EditComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.EditComment(c.UserContext(), s.identity(c), commentID, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Comment updated", fiber.Map{
		"comment": comment,
	})
}

// DeleteComment handles DELETE /blogs/deleteComment/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), s.identity(c), commentID); err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Comment deleted", nil)
}
