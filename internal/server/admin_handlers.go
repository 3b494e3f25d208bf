package server

import (
	"curiouslife/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDashboardStats handles GET /admin/reports
func (s *Server) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := s.moderationService.GetDashboardStats(c.UserContext(), s.identity(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Dashboard stats", stats)
}

// GetAllUsers handles GET /admin/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	listing, err := s.moderationService.ListUsers(c.UserContext(), s.identity(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Users", listing)
}

// DenyPosting handles PUT /admin/denyBlog/user/:userId
func (s *Server) DenyPosting(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	changed, err := s.moderationService.ForbidPosting(c.UserContext(), s.identity(c), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Posting already disabled for this user"
	if changed {
		message = "Posting disabled for this user"
	}
	return models.RespondSuccess(c, fiber.StatusOK, message, fiber.Map{
		"can_post": false,
	})
}

// AllowPosting handles PUT /admin/allowBlog/user/:userId
func (s *Server) AllowPosting(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	changed, err := s.moderationService.AllowPosting(c.UserContext(), s.identity(c), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Posting already enabled for this user"
	if changed {
		message = "Posting enabled for this user"
	}
	return models.RespondSuccess(c, fiber.StatusOK, message, fiber.Map{
		"can_post": true,
	})
}

// RemoveUser handles DELETE /admin/removeUser/user/:userId
func (s *Server) RemoveUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.moderationService.RemoveUser(c.UserContext(), s.identity(c), userID); err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "User removed", nil)
}

// GetAuthorActivity handles GET /admin/authorActivity/user/:userId
func (s *Server) GetAuthorActivity(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	activity, err := s.moderationService.GetAuthorActivity(c.UserContext(), s.identity(c), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Author activity", activity)
}

// GetAdminBlogs handles GET /admin/blogs
func (s *Server) GetAdminBlogs(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	listing, err := s.moderationService.ListBlogs(c.UserContext(), s.identity(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Blogs", listing)
}

// RemoveBlog handles DELETE /admin/removeBlog/blog/:blogId
func (s *Server) RemoveBlog(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "blogId")
	if err != nil {
		return nil
	}

	if err := s.moderationService.RemoveBlog(c.UserContext(), s.identity(c), blogID); err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Blog removed", nil)
}
