package service

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pzillo/landing/internal/content"
	controller "github.com/pzillo/landing/internal/db/controller/service"
	"github.com/pzillo/landing/internal/db/dbtest"
	"github.com/pzillo/landing/internal/db/models"
	"github.com/pzillo/landing/internal/web/handler"
	"github.com/pzillo/landing/internal/web/session"
	"github.com/pzillo/landing/internal/web/webtest"
)

type fixture struct {
	app    *fiber.App
	db     *gorm.DB
	store  *content.Store
	cookie string
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.New(t)
	cfg := webtest.Config()
	webtest.InitSessions(t)

	store, err := content.New(db, cfg.Defaults)
	require.NoError(t, err)

	app := webtest.NewApp()

	var s Service
	s.Init(app, cfg, store)

	return &fixture{
		app:    app,
		db:     db,
		store:  store,
		cookie: webtest.SignIn(t, &models.User{ID: 1, Email: "admin@example.com"}),
	}
}

func (f *fixture) count(t *testing.T) int64 {
	t.Helper()

	var n int64
	require.NoError(t, f.db.Model(&models.Service{}).Count(&n).Error)

	return n
}

func TestNew(t *testing.T) {
	f := setup(t)

	resp, body := webtest.Do(t, f.app, httptest.NewRequest(fiber.MethodGet, Path+"/new", nil), f.cookie)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, TemplateName)
	assert.Contains(t, body, `"status":"active"`)
	assert.Contains(t, body, "New Service")
}

func TestEdit(t *testing.T) {
	f := setup(t)

	svc := &models.Service{Title: "MENTORIA VIP", Price: "R$ 500"}
	_, err := f.store.SaveService(context.Background(), svc)
	require.NoError(t, err)

	t.Run("existing", func(t *testing.T) {
		resp, body := webtest.Do(t, f.app, httptest.NewRequest(fiber.MethodGet, Path+"/"+svc.ID+"/edit", nil), f.cookie)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "MENTORIA VIP")
		assert.Contains(t, body, "Edit Service")
	})

	t.Run("missing", func(t *testing.T) {
		resp, _ := webtest.Do(t, f.app, httptest.NewRequest(fiber.MethodGet, Path+"/nope/edit", nil), f.cookie)

		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, handler.AdminPath, resp.Header.Get(fiber.HeaderLocation))
		require.Len(t, webtest.Notices(t, f.cookie), 1)
		assert.Equal(t, session.NoticeError, webtest.Notices(t, f.cookie)[0].Kind)
	})
}

func TestSave_Create(t *testing.T) {
	f := setup(t)

	resp, _ := webtest.Do(t, f.app, webtest.Form(Path, url.Values{
		"title":    {" CONSULTORIA PREMIUM "},
		"category": {"Consultoria"},
		"price":    {"R$ 1.200"},
		"url":      {"https://wa.me/5511999999999"},
	}), f.cookie)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, handler.AdminPath, resp.Header.Get(fiber.HeaderLocation))
	assert.EqualValues(t, 1, f.count(t))

	list, err := controller.List(f.db)
	require.NoError(t, err)
	assert.Equal(t, "CONSULTORIA PREMIUM", list[0].Title)
	assert.Equal(t, models.ServiceStatusActive, list[0].Status, "status defaults to active")

	notices := webtest.Notices(t, f.cookie)
	require.Len(t, notices, 1)
	assert.Equal(t, session.NoticeSuccess, notices[0].Kind)
}

func TestSave_Update(t *testing.T) {
	f := setup(t)

	svc := &models.Service{Title: "MENTORIA VIP"}
	_, err := f.store.SaveService(context.Background(), svc)
	require.NoError(t, err)

	resp, _ := webtest.Do(t, f.app, webtest.Form(Path, url.Values{
		"id":     {svc.ID},
		"title":  {"MENTORIA VIP 2"},
		"status": {"paused"},
	}), f.cookie)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.EqualValues(t, 1, f.count(t), "an update never adds a row")

	got, err := controller.Get(f.db, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "MENTORIA VIP 2", got.Title)
	assert.Equal(t, models.ServiceStatusPaused, got.Status)
}

func TestSave_Errors(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing title",
			form:       url.Values{"price": {"R$ 10"}},
			wantStatus: fiber.StatusBadRequest,
			wantBody:   `"Title":"Title is required"`,
		},
		{
			name:       "bad url",
			form:       url.Values{"title": {"X"}, "url": {"not a url"}},
			wantStatus: fiber.StatusBadRequest,
			wantBody:   `"URL"`,
		},
		{
			name:       "unknown status",
			form:       url.Values{"title": {"X"}, "status": {"deleted"}},
			wantStatus: fiber.StatusBadRequest,
			wantBody:   `"Status"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			resp, body := webtest.Do(t, f.app, webtest.Form(Path, tt.form), f.cookie)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, body, TemplateName, "the draft form is shown again")
			assert.Contains(t, body, tt.wantBody)
			assert.Zero(t, f.count(t))
		})
	}
}

func TestSave_UnknownID(t *testing.T) {
	f := setup(t)

	resp, _ := webtest.Do(t, f.app, webtest.Form(Path, url.Values{
		"id":    {"0b7e1c2a-0000-4000-8000-000000000000"},
		"title": {"ghost"},
	}), f.cookie)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Zero(t, f.count(t), "updating a missing id creates nothing")

	notices := webtest.Notices(t, f.cookie)
	require.Len(t, notices, 1)
	assert.Equal(t, session.NoticeError, notices[0].Kind)
}

func TestSave_RemoteFailure(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.db.Migrator().DropTable(&models.Service{}))

	resp, body := webtest.Do(t, f.app, webtest.Form(Path, url.Values{"title": {"MENTORIA VIP"}}), f.cookie)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "MENTORIA VIP", "the draft is kept")
	assert.Contains(t, body, "could not be saved")
}

func TestDelete(t *testing.T) {
	f := setup(t)

	svc := &models.Service{Title: "MENTORIA VIP"}
	_, err := f.store.SaveService(context.Background(), svc)
	require.NoError(t, err)

	resp, _ := webtest.Do(t, f.app, httptest.NewRequest(fiber.MethodPost, Path+"/"+svc.ID+"/delete", nil), f.cookie)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Zero(t, f.count(t))

	t.Run("missing id", func(t *testing.T) {
		resp, _ := webtest.Do(t, f.app, httptest.NewRequest(fiber.MethodPost, Path+"/"+svc.ID+"/delete", nil), f.cookie)

		assert.Equal(t, fiber.StatusFound, resp.StatusCode)

		notices := webtest.Notices(t, f.cookie)
		require.Len(t, notices, 2)
		assert.Equal(t, session.NoticeSuccess, notices[0].Kind)
		assert.Equal(t, session.NoticeError, notices[1].Kind)
	})
}
