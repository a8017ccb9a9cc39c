package settings

import (
	"net/http/httptest"
	"net/url"
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

func TestSettings(t *testing.T) {
	db := dbtest.New(t)
	cfg := webtest.Config()
	webtest.InitSessions(t)

	store, err := content.New(db, cfg.Defaults)
	require.NoError(t, err)

	app := webtest.NewApp()

	var s Service
	s.Init(app, cfg, store)

	cookie := webtest.SignIn(t, &models.User{ID: 1, Email: "admin@example.com"})

	count := func() int64 {
		var n int64
		require.NoError(t, db.Model(&models.AppSettings{}).Count(&n).Error)

		return n
	}

	t.Run("defaults before the first save", func(t *testing.T) {
		resp, body := webtest.Do(t, app, httptest.NewRequest(fiber.MethodGet, Path, nil), cookie)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, body, TemplateName)
		assert.Contains(t, body, "PRISCILA ZILLO")
		assert.Contains(t, body, "btn-gradient-pink")
	})

	t.Run("validation error keeps the draft", func(t *testing.T) {
		resp, body := webtest.Do(t, app, webtest.Form(Path, url.Values{
			"subtitle":       {"Estética avançada"},
			"hero_video_url": {"not a url"},
		}), cookie)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "Estética avançada")
		assert.Contains(t, body, `"Title":"Title is required"`)
		assert.Contains(t, body, `"HeroVideoURL"`)
		assert.Zero(t, count())
	})

	t.Run("saving twice keeps a single row", func(t *testing.T) {
		for _, title := range []string{"First", "Second"} {
			resp, _ := webtest.Do(t, app, webtest.Form(Path, url.Values{
				"id":    {"ignored"},
				"title": {title},
				"badge": {"NOVO"},
			}), cookie)

			assert.Equal(t, fiber.StatusFound, resp.StatusCode)
			assert.Equal(t, Path, resp.Header.Get(fiber.HeaderLocation))
		}

		assert.EqualValues(t, 1, count())

		_, body := webtest.Do(t, app, httptest.NewRequest(fiber.MethodGet, Path, nil), cookie)
		assert.Contains(t, body, `"title":"Second"`)
		assert.Contains(t, body, `"badge":"NOVO"`)
		assert.Contains(t, body, "Settings saved")
		assert.Empty(t, webtest.Notices(t, cookie))
	})

	t.Run("storage failure", func(t *testing.T) {
		require.NoError(t, db.Migrator().DropTable(&models.AppSettings{}))

		resp, body := webtest.Do(t, app, webtest.Form(Path, url.Values{"title": {"Third"}}), cookie)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Contains(t, body, "Third")
		assert.Contains(t, body, "could not be saved")

		resp, body = webtest.Do(t, app, httptest.NewRequest(fiber.MethodGet, Path, nil), cookie)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "the defaults are shown instead")
		assert.Contains(t, body, "PRISCILA ZILLO")
		assert.Contains(t, body, `"Kind":"`+session.NoticeError+`"`)
		assert.Empty(t, webtest.Notices(t, cookie), "the load warning was shown on the same page")
	})
}
