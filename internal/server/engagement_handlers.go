package server

import (
	"curiouslife/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles POST /blogs/like/:blogId
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "blogId")
	if err != nil {
		return nil
	}

	state, err := s.blogService.ToggleLike(c.UserContext(), s.identity(c), blogID)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Blog unliked"
	if state.Liked {
		message = "Blog liked"
	}
	return models.RespondSuccess(c, fiber.StatusOK, message, state)
}

// LikeStatus handles GET /blogs/like-status/:blogId
func (s *Server) LikeStatus(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "blogId")
	if err != nil {
		return nil
	}

	state, err := s.blogService.LikeStatus(c.UserContext(), s.identity(c).UserID, blogID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Like status", state)
}

// SaveBlog handles POST /blogs/save/:blogId
func (s *Server) SaveBlog(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "blogId")
	if err != nil {
		return nil
	}

	created, err := s.bookmarkService.SaveBlog(c.UserContext(), s.identity(c), blogID)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Blog already saved"
	if created {
		message = "Blog saved"
	}
	return models.RespondSuccess(c, fiber.StatusOK, message, fiber.Map{
		"saved": true,
	})
}

// UnsaveBlog handles DELETE /blogs/unsave/:blogId
func (s *Server) UnsaveBlog(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "blogId")
	if err != nil {
		return nil
	}

	removed, err := s.bookmarkService.UnsaveBlog(c.UserContext(), s.identity(c), blogID)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Blog was not saved"
	if removed {
		message = "Blog removed from saved"
	}
	return models.RespondSuccess(c, fiber.StatusOK, message, fiber.Map{
		"saved": false,
	})
}

// GetSavedBlogs handles GET /blogs/getSavedBlogs
func (s *Server) GetSavedBlogs(c *fiber.Ctx) error {
	blogs, err := s.bookmarkService.SavedBlogs(c.UserContext(), s.identity(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Saved blogs", fiber.Map{
		"blogs": decorateBlogs(blogs),
	})
}
