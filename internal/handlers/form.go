package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	qrerrors "github.com/cristianadrielbraun/qrlogo/internal/errors"
	"github.com/cristianadrielbraun/qrlogo/internal/generator"
	"github.com/cristianadrielbraun/qrlogo/internal/qr"
	"github.com/cristianadrielbraun/qrlogo/web/components"
)

// normalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme, a non-empty hostname, and returns a cleaned absolute URL.
func normalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", qrerrors.ErrMissingInput("URL")
	}
	// If missing scheme, default to https
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	if len(v) > 4096 {
		return "", qrerrors.ErrInvalidInput("URL", "URL is too long")
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", qrerrors.ErrInvalidInput("URL", err.Error()).WithCause(err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", qrerrors.ErrInvalidInput("URL", "only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", qrerrors.ErrInvalidInput("URL", "URL must include a valid host")
	}
	return u.String(), nil
}

// parseParams builds a request from string fields looked up through get,
// which reads either the query string or the posted form.
func (h *Handler) parseParams(get func(string) string) (generator.Request, error) {
	req := h.defaults

	data, err := normalizeHTTPURL(get("url"))
	if err != nil {
		return req, err
	}
	req.QR.Data = data

	if v := get("fg"); v != "" {
		if req.QR.Foreground, err = qr.ParseHexColor(v); err != nil {
			return req, qrerrors.ErrInvalidInput("foreground color", err.Error())
		}
	}
	if v := get("bg"); v != "" {
		if req.QR.Background, err = qr.ParseHexColor(v); err != nil {
			return req, qrerrors.ErrInvalidInput("background color", err.Error())
		}
	}
	if v := get("ec"); v != "" {
		if req.QR.Level, err = qr.ParseECLevel(v); err != nil {
			return req, err
		}
	}
	if v := get("shape"); v != "" {
		if req.QR.Shape, err = qr.ParseShape(v); err != nil {
			return req, err
		}
	}

	ints := []struct {
		key, name string
		dst       *int
		lo, hi    int
	}{
		{"version", "version", &req.QR.Version, components.MinVersion, components.MaxVersion},
		{"border", "border", &req.QR.Border, components.MinBorder, components.MaxBorder},
		{"box_size", "box size", &req.QR.BoxSize, 1, qr.MaxBoxSize},
		{"logo_size", "logo size", &req.LogoSize, components.MinLogoSize, components.MaxLogoSize},
	}
	for _, f := range ints {
		if err := intField(get(f.key), f.name, f.dst, f.lo, f.hi); err != nil {
			return req, err
		}
	}
	return req, nil
}

// intField parses s into dst when s is not empty.
func intField(s, name string, dst *int, lo, hi int) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return qrerrors.ErrInvalidInput(name, fmt.Sprintf("%q is not a number", s))
	}
	if n < lo || n > hi {
		return qrerrors.ErrInvalidInput(name, fmt.Sprintf("must be between %d and %d, got %d", lo, hi, n))
	}
	*dst = n
	return nil
}

// parseForm reads a multipart form submission, logo included. The body is
// parsed up front so that an oversized upload is reported as such instead of
// surfacing later as empty form fields.
func (h *Handler) parseForm(c *gin.Context) (generator.Request, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+1<<20)
	if err := c.Request.ParseMultipartForm(h.maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return h.defaults, qrerrors.ErrInvalidInput("logo", fmt.Sprintf("file too large, limit is %d bytes", h.maxUpload)).WithCause(err)
		}
		return h.defaults, qrerrors.ErrUnreadableImage("upload", err)
	}

	req, err := h.parseParams(c.PostForm)
	if err != nil {
		return req, err
	}

	logo, err := h.readLogo(c)
	if err != nil {
		return req, err
	}
	req.Logo = logo
	return req, nil
}

func (h *Handler) readLogo(c *gin.Context) (*generator.Logo, error) {
	header, err := c.FormFile("logo")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) ||
		(err == nil && header.Filename == "" && header.Size == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, qrerrors.ErrUnreadableImage("logo", err)
	}
	if header.Size > h.maxUpload {
		return nil, qrerrors.ErrInvalidInput("logo", fmt.Sprintf("file is %d bytes, limit is %d", header.Size, h.maxUpload))
	}

	f, err := header.Open()
	if err != nil {
		return nil, qrerrors.ErrUnreadableImage(header.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload))
	if err != nil {
		return nil, qrerrors.ErrUnreadableImage(header.Filename, err)
	}
	return &generator.Logo{Filename: header.Filename, Data: data}, nil
}
