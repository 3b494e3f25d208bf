package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"curiouslife/internal/config"
	"curiouslife/internal/database"
	"curiouslife/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeMailer records contact sends instead of dialing SMTP.
type fakeMailer struct {
	mu    sync.Mutex
	sent  []contactMessage
	fail  error
	calls int
}

type contactMessage struct {
	Name    string
	Email   string
	Message string
}

func (m *fakeMailer) SendContact(name, email, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, contactMessage{Name: name, Email: email, Message: message})
	return nil
}

// setupTestServer builds a Server on an isolated in-memory database with all
// routes registered. The heavy middleware stack (rate limiting, CORS) is left
// out so tests exercise handlers and auth directly.
func setupTestServer(t *testing.T) (*Server, *fiber.App, *fakeMailer) {
	t.Helper()

	dsn := fmt.Sprintf("file:srv_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	mailer := &fakeMailer{}
	s := NewServerWithDeps(&config.Config{
		Env:       "test",
		JWTSecret: "test_secret",
	}, db, mailer)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, mailer
}

func createServerUser(t *testing.T, s *Server, role models.Role, canPost bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		FullName: gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: string(hash),
		Role:     role,
		CanPost:  canPost,
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func createServerBlog(t *testing.T, s *Server, authorID uint, category string) *models.Blog {
	t.Helper()
	blog := &models.Blog{
		Title:    gofakeit.Sentence(4),
		Body:     gofakeit.Paragraph(2, 4, 10, " "),
		Category: category,
		AuthorID: authorID,
	}
	require.NoError(t, s.db.Create(blog).Error)
	return blog
}

// sessionCookieFor mints a valid session token for the user.
func sessionCookieFor(t *testing.T, s *Server, userID uint) *http.Cookie {
	t.Helper()
	token, err := s.generateToken(userID)
	require.NoError(t, err)
	return &http.Cookie{Name: sessionCookie, Value: token}
}

// doRequest performs an app.Test request with an optional JSON body and session cookie.
func doRequest(t *testing.T, app *fiber.App, method, target string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeEnvelope reads and closes the response body into the standard envelope.
func decodeEnvelope(t *testing.T, resp *http.Response) models.Envelope {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var env models.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func blogPath(id uint) string {
	return "/blogs/" + itoa(id)
}

// dataMap returns the envelope payload as a generic map.
func dataMap(t *testing.T, env models.Envelope) map[string]interface{} {
	t.Helper()
	m, ok := env.Data.(map[string]interface{})
	require.True(t, ok, "envelope data is not an object: %#v", env.Data)
	return m
}
