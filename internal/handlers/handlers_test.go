package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrlogo/internal/config"
	qrerrors "github.com/cristianadrielbraun/qrlogo/internal/errors"
	"github.com/cristianadrielbraun/qrlogo/internal/generator"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, Mode: "test", MaxUploadBytes: 1 << 20},
		QR: config.QRConfig{
			Foreground:      "#000000",
			Background:      "#ffffff",
			Version:         1,
			ErrorCorrection: "L",
			BoxSize:         10,
			Border:          4,
			LogoSize:        50,
			Shape:           "square",
			Fit:             true,
		},
		Verify: config.VerifyConfig{Enabled: true},
	}
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r, _ := newTestRouter(t, testConfig())
	return r
}

func newTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *logtest.Hook) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	l, hook := logtest.NewNullLogger()
	log := logrus.NewEntry(l)

	h, err := New(generator.New(log, true), cfg, log)
	require.NoError(t, err)

	r := gin.New()
	h.Register(r)
	return r, hook
}

type part struct {
	name, filename string
	data           []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...part) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.name, f.filename)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func post(t *testing.T, r *gin.Engine, path string, fields map[string]string, headers map[string]string, files ...part) *httptest.ResponseRecorder {
	t.Helper()
	body, ctype := multipartBody(t, fields, files...)
	req, _ := http.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", ctype)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func redLogo(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 255, 255
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

var dataURIRe = regexp.MustCompile(`src="data:image/png;base64,([^"]+)"`)

func TestHome(t *testing.T) {
	r := testRouter(t)
	w := get(r, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `hx-post="/generate"`)
	assert.Contains(t, body, `name="url"`)
	assert.Contains(t, body, `name="logo"`)
	assert.Contains(t, body, `value="#000000"`)
	assert.Contains(t, body, `<option value="L" selected>`)
}

func TestHomeTransparentBackground(t *testing.T) {
	cfg := testConfig()
	cfg.QR.Background = "transparent"
	r, _ := newTestRouter(t, cfg)

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="bg" name="bg" value="#ffffff"`)
	assert.NotContains(t, w.Body.String(), `value="transparent"`)
}

func TestGenerateForm(t *testing.T) {
	r := testRouter(t)

	t.Run("plain code", func(t *testing.T) {
		w := post(t, r, "/generate", map[string]string{
			"url": "https://example.com", "version": "1", "ec": "L", "border": "4",
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.Contains(t, body, `download="custom_qr.png"`)
		assert.Contains(t, body, `hx-swap-oob="beforeend"`)

		m := dataURIRe.FindStringSubmatch(body)
		require.Len(t, m, 2)
		raw, err := base64.StdEncoding.DecodeString(m[1])
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, img.Bounds().Dx(), img.Bounds().Dy())
	})

	t.Run("with logo", func(t *testing.T) {
		w := post(t, r, "/generate", map[string]string{
			"url": "https://example.com", "ec": "H", "logo_size": "30",
		}, nil, part{"logo", "logo.png", redLogo(t)})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `id="qr-image"`)
	})

	t.Run("missing url is a warning", func(t *testing.T) {
		w := post(t, r, "/generate", map[string]string{"url": "  "}, map[string]string{"HX-Request": "true"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `data-variant="warning"`)
		assert.Contains(t, w.Body.String(), "Please enter a URL.")
		assert.NotContains(t, w.Body.String(), "data:image/png")

		w = post(t, r, "/generate", map[string]string{}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("logo larger than code", func(t *testing.T) {
		w := post(t, r, "/generate", map[string]string{
			"url": "hello.example", "box_size": "1", "logo_size": "30", "border": "1",
		}, nil, part{"logo", "logo.png", redLogo(t)})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `data-variant="error"`)
		assert.Contains(t, w.Body.String(), "Logo does not fit")
	})

	t.Run("unreadable logo", func(t *testing.T) {
		w := post(t, r, "/generate", map[string]string{"url": "https://example.com"}, nil,
			part{"logo", "logo.png", []byte("not a png")})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Could not read logo image")
	})

	t.Run("out of range fields", func(t *testing.T) {
		for field, val := range map[string]string{
			"logo_size": "151", "border": "0", "version": "41", "ec": "Z", "fg": "#12",
		} {
			w := post(t, r, "/generate", map[string]string{"url": "https://example.com", field: val}, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, field)
		}
	})
}

func TestQRCodeHandler(t *testing.T) {
	r := testRouter(t)

	t.Run("png", func(t *testing.T) {
		w := get(r, "/api/qr?url=example.com&fg=%23ff0000&border=2")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("X-QR-Debug"), "format=png")

		img, err := png.Decode(w.Body)
		require.NoError(t, err)
		side := img.Bounds().Dx()
		assert.Zero(t, side%10)
		assert.Equal(t, color.RGBA{255, 255, 255, 255}, color.RGBAModel.Convert(img.At(0, 0)))
	})

	t.Run("jpg download", func(t *testing.T) {
		w := get(r, "/api/qr?url=example.com&format=jpeg&download=1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="custom_qr.jpg"`)
		_, err := jpeg.Decode(w.Body)
		require.NoError(t, err)
	})

	t.Run("errors are json", func(t *testing.T) {
		w := get(r, "/api/qr")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(qrerrors.KindMissingInput), resp["kind"])

		w = get(r, "/api/qr?url=example.com&version=99")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(qrerrors.KindInvalidInput), resp["kind"])
	})
}

func TestQRUploadHandler(t *testing.T) {
	r := testRouter(t)
	w := post(t, r, "/api/qr", map[string]string{
		"url": "https://example.com", "ec": "H", "logo_size": "30",
	}, nil, part{"logo", "logo.png", redLogo(t)})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="custom_qr.png"`, w.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, w.Header().Get("X-QR-Scannable"))

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	c := img.Bounds().Dx() / 2
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, color.RGBAModel.Convert(img.At(c, c)))
}

func TestUploadTooLarge(t *testing.T) {
	r := testRouter(t)
	big := part{"logo", "logo.png", make([]byte, 3<<20)}
	fields := map[string]string{"url": "https://example.com"}

	t.Run("api", func(t *testing.T) {
		w := post(t, r, "/api/qr", fields, nil, big)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(qrerrors.KindInvalidInput), resp["kind"])
		assert.Contains(t, resp["error"], "too large")
	})

	t.Run("form", func(t *testing.T) {
		w := post(t, r, "/generate", fields, map[string]string{"HX-Request": "true"}, big)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `data-variant="error"`)
		assert.Contains(t, w.Body.String(), "too large")
		assert.NotContains(t, w.Body.String(), "Please enter a URL")
	})
}

func TestGenericToast(t *testing.T) {
	r := testRouter(t)
	w := post(t, r, "/api/htmx/toast", map[string]string{
		"title": "Saved <b>", "variant": "destructive", "dismissible": "on",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-variant="error"`)
	assert.Contains(t, w.Body.String(), "Saved &lt;b&gt;")
	assert.Contains(t, w.Body.String(), `aria-label="Dismiss"`)
}

func TestGenericToastLogsRenderError(t *testing.T) {
	r, hook := newTestRouter(t, testConfig())

	body, ctype := multipartBody(t, map[string]string{"title": "Saved"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, "/api/htmx/toast", body)
	req.Header.Set("Content-Type", ctype)
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "render toast", entry.Message)
	assert.ErrorIs(t, entry.Data[logrus.ErrorKey].(error), context.Canceled)
}

func TestHealthAndSitemap(t *testing.T) {
	r := testRouter(t)
	assert.Equal(t, http.StatusOK, get(r, "/healthz").Code)

	w := get(r, "/sitemap.xml")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<urlset")
}

func TestNormalizeHTTPURL(t *testing.T) {
	tests := []struct {
		in, want string
		kind     qrerrors.Kind
	}{
		{"https://example.com", "https://example.com", ""},
		{"example.com/path?q=1", "https://example.com/path?q=1", ""},
		{"  http://example.com  ", "http://example.com", ""},
		{"", "", qrerrors.KindMissingInput},
		{"ftp://example.com", "", qrerrors.KindInvalidInput},
		{"https://", "", qrerrors.KindInvalidInput},
	}
	for _, tt := range tests {
		got, err := normalizeHTTPURL(tt.in)
		if tt.kind != "" {
			assert.Equal(t, tt.kind, qrerrors.KindOf(err), tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(qrerrors.KindMissingInput))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(qrerrors.KindInvalidDimension))
	assert.Equal(t, http.StatusInternalServerError, statusFor(qrerrors.KindGeneration))
}
