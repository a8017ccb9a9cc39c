package dashboard

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pzillo/landing/internal/content"
	"github.com/pzillo/landing/internal/db/dbtest"
	"github.com/pzillo/landing/internal/db/models"
	"github.com/pzillo/landing/internal/web/session"
	"github.com/pzillo/landing/internal/web/webtest"
)

func TestGet(t *testing.T) {
	db := dbtest.New(t)
	cfg := webtest.Config()
	store, err := content.New(db, cfg.Defaults)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.SaveService(ctx, &models.Service{Title: "MENTORIA VIP", Status: models.ServiceStatusPaused})
	require.NoError(t, err)
	_, err = store.SavePost(ctx, &models.Post{Title: "Harmonização"})
	require.NoError(t, err)

	app := webtest.NewApp()

	var s Service
	s.Init(app, cfg, store)

	t.Run("lists every collection and pops notices", func(t *testing.T) {
		webtest.InitSessions(t)
		cookie := webtest.SignIn(t, &models.User{ID: 1, Email: "admin@example.com"})

		noticeApp := fiber.New()
		noticeApp.Get("/", func(c *fiber.Ctx) error {
			session.AddNotice(c, session.NoticeSuccess, "Service saved")
			return nil
		})
		webtest.Do(t, noticeApp, httptest.NewRequest(fiber.MethodGet, "/", nil), cookie)
		require.Len(t, webtest.Notices(t, cookie), 1)

		resp, body := webtest.Do(t, app, httptest.NewRequest(fiber.MethodGet, Path, nil), cookie)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, body, TemplateName)
		assert.Contains(t, body, "MENTORIA VIP", "paused services stay visible to the admin")
		assert.Contains(t, body, "Harmonização")
		assert.Contains(t, body, "Service saved")
		assert.Contains(t, body, `"HasSettings":false`)
		assert.Empty(t, webtest.Notices(t, cookie), "notices are shown once")
	})

	t.Run("partial load adds a warning", func(t *testing.T) {
		webtest.InitSessions(t)
		cookie := webtest.SignIn(t, &models.User{ID: 1, Email: "admin@example.com"})

		require.NoError(t, db.Migrator().DropTable(&models.Post{}))

		resp, body := webtest.Do(t, app, httptest.NewRequest(fiber.MethodGet, Path, nil), cookie)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "MENTORIA VIP")
		assert.Contains(t, body, loadErrorNotice)
	})
}
