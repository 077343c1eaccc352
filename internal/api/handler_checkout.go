package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-market-backend/internal/httperr"
)

// StartCheckout handles POST /api/checkout/:booking_id and returns the page to open.
func (h *Handler) StartCheckout(c *gin.Context) {
	session, err := h.checkout.Start(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

type resolveCheckoutRequest struct {
	URL string `json:"url" binding:"required"`
}

// ResolveCheckout is called with every URL the checkout view navigates to. An
// outcome-less result means the view should keep browsing.
func (h *Handler) ResolveCheckout(c *gin.Context) {
	var req resolveCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	res, err := h.checkout.Resolve(req.URL)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
