package server

import (
	"curiouslife/internal/models"
	"curiouslife/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.UserContext(), s.identity(c).UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Profile", fiber.Map{
		"user": user,
	})
}

// EditProfile handles PUT /editProfile
func (s *Server) EditProfile(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"full_name"`
		Photo    string `json:"photo"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:   s.identity(c).UserID,
		FullName: req.FullName,
		Photo:    req.Photo,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Profile updated", fiber.Map{
		"user": user,
	})
}

// ChangePassword handles PUT /changePassword
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.userService.ChangePassword(c.UserContext(), service.ChangePasswordInput{
		UserID:          s.identity(c).UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Password changed", nil)
}

// UpdateBio handles PUT /updateBio
func (s *Server) UpdateBio(c *fiber.Ctx) error {
	var req struct {
		Bio string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateBio(c.UserContext(), s.identity(c).UserID, req.Bio)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Bio updated", fiber.Map{
		"user": user,
	})
}

// GetAuthorProfile handles GET /author/:authorId
func (s *Server) GetAuthorProfile(c *fiber.Ctx) error {
	authorID, err := s.parseID(c, "authorId")
	if err != nil {
		return nil
	}

	profile, err := s.userService.AuthorProfile(c.UserContext(), authorID, s.identity(c).UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Author profile", profile)
}
