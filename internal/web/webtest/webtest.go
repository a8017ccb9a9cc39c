// Package webtest provides fakes shared by the handler tests.
package webtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/pzillo/landing/internal/config"
	"github.com/pzillo/landing/internal/db/models"
	"github.com/pzillo/landing/internal/web/session"
)

// NoOpViews is a minimal Fiber Views engine used for tests.
// It writes the template name followed by the JSON encoded data, so tests can
// assert what a handler passed to its template.
type NoOpViews struct{}

// Load implements fiber.Views.
func (NoOpViews) Load() error { return nil }

// Render implements fiber.Views.
func (NoOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name+"\n")

	out, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = w.Write(out)

	return err
}

// NewApp creates a fiber app rendering with NoOpViews.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{Views: NoOpViews{}})
}

// Config returns a minimal valid configuration.
func Config() *config.Config {
	return &config.Config{
		DevMode: true,
		Title:   "Test",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
		Storage: config.Storage{
			Bucket:        "app-images",
			PublicURL:     "http://localhost/storage",
			MaxUploadSize: 5 * 1024 * 1024,
		},
		Defaults: config.Defaults{
			Title:              "PRISCILA ZILLO",
			PrimaryButtonColor: "btn-gradient-pink",
			PostAuthor:         "Priscila Zillo",
		},
	}
}

// Storage is a minimal in-memory implementation of fiber.Storage for tests.
type Storage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// Ensure Storage implements the fiber.Storage interface.
var _ fiber.Storage = (*Storage)(nil)

// Get implements fiber.Storage.
func (s *Storage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

// Set implements fiber.Storage.
func (s *Storage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

// Delete implements fiber.Storage.
func (s *Storage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

// Reset implements fiber.Storage.
func (s *Storage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

// Close implements fiber.Storage.
func (s *Storage) Close() error { return nil }

// Len returns the number of stored sessions.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}

// InitSessions initializes a fresh in-memory session store for the test.
func InitSessions(t *testing.T) *Storage {
	t.Helper()

	st := &Storage{data: make(map[string][]byte)}
	session.Init(st, time.Minute)

	return st
}

// SignIn stores a session for user and returns the matching cookie header value.
func SignIn(t *testing.T, user *models.User) string {
	t.Helper()

	id, err := session.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, session.NewData(user).Write(id, time.Minute))

	return session.CookieName + "=" + id
}

// Notices reads the pending notices of the session behind cookie.
func Notices(t *testing.T, cookie string) []session.Notice {
	t.Helper()

	data := new(session.Data)
	require.NoError(t, data.Read(strings.TrimPrefix(cookie, session.CookieName+"=")))

	return data.Notices
}

// Do runs a request against app and returns the response and its body.
func Do(t *testing.T, app *fiber.App, req *http.Request, cookie string) (*http.Response, string) {
	t.Helper()

	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	return resp, string(body)
}

// Form builds an url-encoded POST request.
func Form(target string, values url.Values) *http.Request {
	req, _ := http.NewRequest(fiber.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)

	return req
}
