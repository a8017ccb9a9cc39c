// Package session keeps the signed-in admin and pending notices in the fiber session storage.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"

	"github.com/pzillo/landing/internal/db/models"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "session"

	// NoticeSuccess marks a notice about a finished operation.
	NoticeSuccess = "success"
	// NoticeError marks a notice about a failed operation.
	NoticeError = "error"

	defaultExpiry = 24 * time.Hour
)

var (
	// Store is the global session store instance.
	Store *session.Store

	// Expiry is how long session data lives in the storage.
	Expiry = defaultExpiry
)

// User is the part of the account kept in the session.
type User struct {
	ID    uint64
	Email string
	// Version is the account's session version at sign-in.
	Version uint64
}

// Notice is a one-shot message shown on the next rendered admin page.
type Notice struct {
	Kind    string
	Message string
}

// Data represents the session data structure.
type Data struct {
	User    User
	Notices []Notice
}

// NewData creates session data for a signed-in user.
func NewData(u *models.User) *Data {
	return &Data{User: newUser(u)}
}

func newUser(u *models.User) User {
	return User{ID: u.ID, Email: u.Email, Version: u.SessionVersion}
}

// Matches reports whether account, as stored, still grants this session access.
func (u User) Matches(account *models.User) bool {
	return account != nil &&
		account.Active &&
		account.ID == u.ID &&
		account.Email == u.Email &&
		account.SessionVersion == u.Version
}

// Valid reports whether the data belongs to a signed-in user.
func (s *Data) Valid() bool {
	return s.User.ID > 0
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	return json.Unmarshal(byteData, s)
}

// Init initializes the session store with the provided storage backend.
// A nil storage selects fiber's in-memory storage.
func Init(storage fiber.Storage, expiry time.Duration) {
	if expiry > 0 {
		Expiry = expiry
	}

	Store = session.New(session.Config{
		Storage:    storage,
		Expiration: Expiry,
		KeyLookup:  "cookie:" + CookieName,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// Current returns the session of the request when it belongs to a signed-in user.
func Current(c *fiber.Ctx) (*Data, bool) {
	sessionID := c.Cookies(CookieName)
	if sessionID == "" || Store == nil {
		return nil, false
	}

	data := new(Data)
	if err := data.Read(sessionID); err != nil || !data.Valid() {
		return nil, false
	}

	return data, true
}

// SetCookie sends the session cookie. Outside dev mode it is only sent over https.
func SetCookie(c *fiber.Ctx, sessionID string, devMode bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		MaxAge:   int(Expiry.Seconds()),
		Secure:   !devMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie in the browser.
func ClearCookie(c *fiber.Ctx, devMode bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   !devMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Destroy removes the session of the request from the storage.
func Destroy(c *fiber.Ctx) {
	sessionID := c.Cookies(CookieName)
	if sessionID == "" || Store == nil {
		return
	}

	if err := Store.Storage.Delete(sessionID); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}
}

// AddNotice queues a notice for the next page of the signed-in user.
// Without a session the notice is dropped.
func AddNotice(c *fiber.Ctx, kind, message string) {
	data, ok := Current(c)
	if !ok {
		log.Debug().Str("notice", message).Msg("no session, notice dropped")
		return
	}

	data.Notices = append(data.Notices, Notice{Kind: kind, Message: message})

	if err := data.Write(c.Cookies(CookieName), Expiry); err != nil {
		log.Error().Err(err).Msg("failed to store notice")
	}
}

// Refresh stores the current state of account u in the session of the
// request, keeping it valid after the account changed, e.g. its password.
func Refresh(c *fiber.Ctx, u *models.User) {
	data, ok := Current(c)
	if !ok {
		return
	}

	data.User = newUser(u)

	if err := data.Write(c.Cookies(CookieName), Expiry); err != nil {
		log.Error().Err(err).Msg("failed to refresh session")
	}
}

// PopNotices returns and clears the queued notices.
func PopNotices(c *fiber.Ctx) []Notice {
	data, ok := Current(c)
	if !ok || len(data.Notices) == 0 {
		return nil
	}

	notices := data.Notices
	data.Notices = nil

	if err := data.Write(c.Cookies(CookieName), Expiry); err != nil {
		log.Error().Err(err).Msg("failed to clear notices")
	}

	return notices
}
