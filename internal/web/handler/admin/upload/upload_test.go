package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pzillo/landing/internal/storage"
	"github.com/pzillo/landing/internal/upload"
	"github.com/pzillo/landing/internal/web/webtest"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

const previous = "http://localhost/storage/app-images/services/old.png"

type brokenBucket struct{}

func (brokenBucket) Put(context.Context, string, []byte) error { return errors.New("disk full") }
func (brokenBucket) PublicURL(key string) string               { return "http://localhost/" + key }

func newRequest(t *testing.T, folder, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer

	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("folder", folder))
	require.NoError(t, w.WriteField("previous", previous))

	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		require.NoError(t, err)

		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, Path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return req
}

func setup(t *testing.T, bucket upload.Bucket, maxSize int64) *fiber.App {
	t.Helper()

	app := webtest.NewApp()

	var s Service
	s.Init(app, webtest.Config(), upload.New(bucket, maxSize))

	return app
}

func decode(t *testing.T, body string) Response {
	t.Helper()

	var r Response
	require.NoError(t, json.Unmarshal([]byte(body), &r))

	return r
}

func TestPost(t *testing.T) {
	fs := afero.NewMemMapFs()

	bucket, err := storage.New(fs, "app-images", "http://localhost/storage")
	require.NoError(t, err)

	app := setup(t, bucket, 1024)

	resp, body := webtest.Do(t, app, newRequest(t, "services", "card.png", "image/png", pngBytes), "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	r := decode(t, body)
	assert.True(t, strings.HasPrefix(r.URL, "http://localhost/storage/app-images/services/"), r.URL)
	assert.True(t, strings.HasSuffix(r.URL, ".png"), r.URL)
	assert.True(t, strings.HasPrefix(r.Preview, "data:image/png;base64,"))
	assert.Empty(t, r.Error)

	stored, err := afero.ReadFile(fs, "app-images/"+r.Key)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored)
}

func TestPost_Errors(t *testing.T) {
	tests := []struct {
		name        string
		bucket      upload.Bucket
		folder      string
		filename    string
		contentType string
		content     []byte
		wantStatus  int
		wantError   string
	}{
		{
			name:       "no file",
			bucket:     brokenBucket{},
			folder:     "services",
			wantStatus: fiber.StatusBadRequest,
			wantError:  upload.ErrNoFile.Error(),
		},
		{
			name:        "not an image",
			bucket:      brokenBucket{},
			folder:      "services",
			filename:    "notes.txt",
			contentType: "text/plain",
			content:     []byte("hello"),
			wantStatus:  fiber.StatusBadRequest,
			wantError:   upload.ErrNotImage.Error(),
		},
		{
			name:        "too large",
			bucket:      brokenBucket{},
			folder:      "services",
			filename:    "big.png",
			contentType: "image/png",
			content:     append(pngBytes, make([]byte, 2048)...),
			wantStatus:  fiber.StatusBadRequest,
			wantError:   upload.ErrTooLarge.Error(),
		},
		{
			name:        "bad folder",
			bucket:      brokenBucket{},
			folder:      "../etc",
			filename:    "card.png",
			contentType: "image/png",
			content:     pngBytes,
			wantStatus:  fiber.StatusBadRequest,
			wantError:   upload.ErrInvalidFolder.Error(),
		},
		{
			name:        "storage failure",
			bucket:      brokenBucket{},
			folder:      "services",
			filename:    "card.png",
			contentType: "image/png",
			content:     pngBytes,
			wantStatus:  fiber.StatusBadGateway,
			wantError:   "upload failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setup(t, tt.bucket, 1024)

			resp, body := webtest.Do(t, app, newRequest(t, tt.folder, tt.filename, tt.contentType, tt.content), "")

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			r := decode(t, body)
			assert.Contains(t, r.Error, tt.wantError)
			assert.Equal(t, previous, r.URL, "the previous image is kept")
			assert.Empty(t, r.Preview)
		})
	}
}
