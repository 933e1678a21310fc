package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	toast "github.com/cristianadrielbraun/qrlogo/web/components/ui/toast"
)

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	dismissible := c.PostForm("dismissible") == "on"

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	err := toast.Toast(toast.Props{
		Title:         title,
		Description:   description,
		Variant:       parseVariant(c.PostForm("variant")),
		Position:      toast.PositionBottomRight,
		Duration:      2000,
		Dismissible:   dismissible,
		ShowIndicator: false,
		Icon:          true,
	}).Render(c.Request.Context(), c.Writer)
	if err != nil {
		h.log.WithError(err).Error("render toast")
	}
}

func parseVariant(variant string) toast.Variant {
	switch variant {
	case "error", "destructive":
		return toast.VariantError
	case "warning":
		return toast.VariantWarning
	case "info":
		return toast.VariantInfo
	default:
		return toast.VariantSuccess
	}
}

// oobToast wraps a toast so HTMX appends it to #toasts next to the main swap.
func oobToast(c *gin.Context, variant toast.Variant, title, description string) error {
	if _, err := c.Writer.WriteString(`<div id="toasts" hx-swap-oob="beforeend">`); err != nil {
		return err
	}
	err := toast.Toast(toast.Props{
		Title:       title,
		Description: description,
		Variant:     variant,
		Position:    toast.PositionBottomRight,
		Duration:    3000,
		Dismissible: true,
		Icon:        true,
	}).Render(c.Request.Context(), c.Writer)
	if err != nil {
		return err
	}
	_, err = c.Writer.WriteString(`</div>`)
	return err
}
