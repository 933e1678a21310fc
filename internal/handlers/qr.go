package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	qrerrors "github.com/cristianadrielbraun/qrlogo/internal/errors"
	"github.com/cristianadrielbraun/qrlogo/internal/generator"
	"github.com/cristianadrielbraun/qrlogo/internal/imageio"
	"github.com/cristianadrielbraun/qrlogo/web/components"
	toast "github.com/cristianadrielbraun/qrlogo/web/components/ui/toast"
)

// statusFor maps an error kind to the HTTP status used by the APIs.
func statusFor(kind qrerrors.Kind) int {
	switch kind {
	case qrerrors.KindMissingInput, qrerrors.KindInvalidInput:
		return http.StatusBadRequest
	case qrerrors.KindInvalidDimension, qrerrors.KindUnreadableImage:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c *gin.Context, err error) {
	kind := qrerrors.KindOf(err)
	c.JSON(statusFor(kind), gin.H{"error": err.Error(), "kind": kind})
}

// GenerateForm handles the form submission and answers with an HTML fragment
// for the result panel. HTMX only swaps 2xx responses, so HTMX requests get
// 200 even when generation failed.
func (h *Handler) GenerateForm(c *gin.Context) {
	req, err := h.parseForm(c)
	var out *generator.Output
	if err == nil {
		out, err = h.gen.Generate(c.Request.Context(), req)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err != nil {
		h.renderFormError(c, err)
		return
	}

	c.Status(http.StatusOK)
	ctx := c.Request.Context()
	err = components.QRResult(components.ResultData{
		DataURI:      imageio.DataURI(out.PNG),
		DownloadName: generator.DownloadName,
		Version:      out.Version,
		Side:         out.Side,
		Scannable:    out.Scannable,
	}).Render(ctx, c.Writer)
	if err == nil {
		err = oobToast(c, toast.VariantSuccess, "QR code ready", fmt.Sprintf("%d×%d px, version %d", out.Side, out.Side, out.Version))
	}
	if err != nil {
		h.log.WithError(err).Error("render result")
	}
}

func (h *Handler) renderFormError(c *gin.Context, err error) {
	kind := qrerrors.KindOf(err)
	status := statusFor(kind)
	if c.GetHeader("HX-Request") == "true" {
		status = http.StatusOK
	}
	c.Status(status)

	variant := components.AlertError
	title := "Could not generate the QR code"
	message := err.Error()
	if kind == qrerrors.KindMissingInput {
		variant = components.AlertWarning
		title = "Missing input"
		message = "Please enter a URL."
	} else {
		h.log.WithError(err).WithField("kind", kind).Warn("generation failed")
	}

	if rerr := components.Alert(variant, title, message).Render(c.Request.Context(), c.Writer); rerr != nil {
		h.log.WithError(rerr).Error("render alert")
	}
}

// QRCodeHandler generates a logo-less code from query parameters.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	req, err := h.parseParams(c.Query)
	if err != nil {
		errorJSON(c, err)
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "png"))
	if format == "jpeg" {
		format = "jpg"
	}
	if format != "png" && format != "jpg" {
		format = "png"
	}

	out, err := h.gen.Generate(c.Request.Context(), req)
	if err != nil {
		errorJSON(c, err)
		return
	}

	c.Header("X-QR-Debug", fmt.Sprintf("format=%s;version=%d;side=%d;shape=%s", format, out.Version, out.Side, req.QR.Shape))
	c.Header("Cache-Control", "public, max-age=3600")
	if download, _ := strconv.ParseBool(c.Query("download")); download {
		name := generator.DownloadName
		if format == "jpg" {
			name = strings.TrimSuffix(name, ".png") + ".jpg"
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}

	if format == "jpg" {
		c.Header("Content-Type", "image/jpeg")
		c.Status(http.StatusOK)
		if err := imageio.EncodeJPEG(c.Writer, out.Image, req.QR.Background); err != nil {
			h.log.WithError(err).Error("encode jpeg")
		}
		return
	}
	c.Data(http.StatusOK, "image/png", out.PNG)
}

// QRUploadHandler generates from a multipart form, logo included, and
// returns the PNG as a download.
func (h *Handler) QRUploadHandler(c *gin.Context) {
	req, err := h.parseForm(c)
	if err != nil {
		errorJSON(c, err)
		return
	}
	out, err := h.gen.Generate(c.Request.Context(), req)
	if err != nil {
		errorJSON(c, err)
		return
	}

	if out.Scannable != nil {
		c.Header("X-QR-Scannable", strconv.FormatBool(*out.Scannable))
	}
	h.log.WithFields(logrus.Fields{"side": out.Side, "logo": req.Logo != nil}).Debug("upload generated")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", generator.DownloadName))
	c.Data(http.StatusOK, "image/png", out.PNG)
}
