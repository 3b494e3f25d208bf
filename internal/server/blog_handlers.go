package server

import (
	"fmt"
	"strings"
	"time"

	"curiouslife/internal/models"
	"curiouslife/internal/service"

	"github.com/gofiber/fiber/v2"
)

// blogView decorates a blog with display fields for list pages.
type blogView struct {
	*models.Blog
	PostTime    string `json:"post_time"`
	ReadingTime string `json:"reading_time"`
}

const wordsPerMinute = 200

func decorateBlog(blog *models.Blog) blogView {
	return blogView{
		Blog:        blog,
		PostTime:    relativeTime(blog.CreatedAt),
		ReadingTime: readingTime(blog.Body),
	}
}

func decorateBlogs(blogs []*models.Blog) []blogView {
	views := make([]blogView, 0, len(blogs))
	for _, b := range blogs {
		views = append(views, decorateBlog(b))
	}
	return views
}

func readingTime(body string) string {
	words := len(strings.Fields(body))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// GetBlogs handles GET /blogs
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	blogs, err := s.blogService.ListBlogs(c.UserContext(), p.Limit, p.Offset, s.identity(c).UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Blogs", fiber.Map{
		"blogs": decorateBlogs(blogs),
	})
}

// GetRecentBlogs handles GET /blogs/recent
func (s *Server) GetRecentBlogs(c *fiber.Ctx) error {
	blogs, err := s.blogService.RecentBlogs(c.UserContext(), s.identity(c).UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Recent blogs", fiber.Map{
		"blogs": decorateBlogs(blogs),
	})
}

// GetPopularBlogs handles GET /blogs/popular
func (s *Server) GetPopularBlogs(c *fiber.Ctx) error {
	blogs, err := s.blogService.PopularBlogs(c.UserContext(), s.identity(c).UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Popular blogs", fiber.Map{
		"blogs": decorateBlogs(blogs),
	})
}

// GetBlogsByCategory handles GET /blogs/category/:category
func (s *Server) GetBlogsByCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	p := parsePagination(c, 20)
	blogs, err := s.blogService.BlogsByCategory(c.UserContext(), category, p.Limit, p.Offset, s.identity(c).UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Blogs in category", fiber.Map{
		"category": strings.ToLower(category),
		"blogs":    decorateBlogs(blogs),
	})
}

// GetMyBlogs handles GET /blogs/blogMe
func (s *Server) GetMyBlogs(c *fiber.Ctx) error {
	blogs, err := s.blogService.MyBlogs(c.UserContext(), s.identity(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Your blogs", fiber.Map{
		"blogs": decorateBlogs(blogs),
	})
}

// GetBlog handles GET /blogs/:id
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blog, err := s.blogService.GetBlog(c.UserContext(), id, s.identity(c).UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Blog", fiber.Map{
		"blog": decorateBlog(blog),
	})
}

// CreateBlog handles POST /blogs/createBlog
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	var req struct {
		Title    string `json:"title"`
		Body     string `json:"body"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.CreateBlog(c.UserContext(), service.CreateBlogInput{
		Identity: s.identity(c),
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusCreated, "Blog created", fiber.Map{
		"blog": blog,
	})
}

// UpdateBlog handles PATCH /blogs/updateBlog/:id
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    string `json:"title"`
		Body     string `json:"body"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.UpdateBlog(c.UserContext(), service.UpdateBlogInput{
		Identity: s.identity(c),
		BlogID:   id,
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Blog updated", fiber.Map{
		"blog": blog,
	})
}

// DeleteBlog handles DELETE /blogs/deleteBlog/:id
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.DeleteBlog(c.UserContext(), s.identity(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, fiber.StatusOK, "Blog deleted", nil)
}
