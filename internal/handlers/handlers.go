package handlers

import (
	"image/color"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrlogo/internal/config"
	"github.com/cristianadrielbraun/qrlogo/internal/generator"
	"github.com/cristianadrielbraun/qrlogo/internal/qr"
	"github.com/cristianadrielbraun/qrlogo/web/components"
	"github.com/cristianadrielbraun/qrlogo/web/pages"
)

// Handler holds the dependencies shared by all HTTP handlers. Nothing in it
// changes after New, so concurrent requests never share mutable state.
type Handler struct {
	gen       *generator.Service
	defaults  generator.Request
	form      components.FormValues
	maxUpload int64
	log       *logrus.Entry
}

// New returns a Handler generating codes with gen and pre-filling forms from
// cfg.
func New(gen *generator.Service, cfg *config.Config, log *logrus.Entry) (*Handler, error) {
	defaults, err := generator.DefaultRequest(cfg.QR)
	if err != nil {
		return nil, err
	}
	return &Handler{
		gen:       gen,
		defaults:  defaults,
		maxUpload: cfg.Server.MaxUploadBytes,
		log:       log,
		form: components.FormValues{
			Foreground:      colorInputValue(defaults.QR.Foreground),
			Background:      colorInputValue(defaults.QR.Background),
			Version:         defaults.QR.Version,
			ErrorCorrection: defaults.QR.Level.String(),
			LogoSize:        defaults.LogoSize,
			Border:          defaults.QR.Border,
			BoxSize:         defaults.QR.BoxSize,
			Shape:           string(defaults.QR.Shape),
		},
	}, nil
}

// colorInputValue formats c for an <input type="color">, which only accepts
// #rrggbb. Transparent falls back to white.
func colorInputValue(c color.RGBA) string {
	if c.A == 0 {
		return "#ffffff"
	}
	return qr.HexColor(c)
}

// Register wires all routes onto r.
func (h *Handler) Register(r *gin.Engine) {
	r.MaxMultipartMemory = h.maxUpload

	r.GET("/", h.Home)
	r.POST("/generate", h.GenerateForm)
	r.GET("/sitemap.xml", h.SitemapXML)
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/qr", h.QRUploadHandler)
		api.POST("/htmx/toast", h.GenericToast)
	}
}

// Home renders the form page.
func (h *Handler) Home(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pages.HomePage(h.form).Render(c.Request.Context(), c.Writer); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (host == "localhost:8080" || host == "127.0.0.1:8080") {
		scheme = "http"
	}
	base := scheme + "://" + host
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>monthly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(http.StatusOK, xml)
}
