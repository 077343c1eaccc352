package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-market-backend/internal/httperr"
	"local-market-backend/internal/model"
)

type putSubscriptionRequest struct {
	Endpoint   string   `json:"endpoint" binding:"required"`
	P256DH     string   `json:"p256dh" binding:"required"`
	Auth       string   `json:"auth" binding:"required"`
	BookingIDs []string `json:"booking_ids"`
}

// PutSubscription handles the creation or replacement of a subscription.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	sub, err := h.reg.Subscriptions.Put(model.PushSubscription{
		Endpoint:   req.Endpoint,
		P256DH:     req.P256DH,
		Auth:       req.Auth,
		BookingIDs: req.BookingIDs,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription handles the deletion of a subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	h.reg.Subscriptions.Remove(req.Endpoint)
	c.Status(http.StatusNoContent)
}

// GetSubscription handles the retrieval of a subscription.
func (h *Handler) GetSubscription(c *gin.Context) {
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		httperr.BadRequest(c, "invalid_request", "endpoint is required")
		return
	}

	sub, ok := h.reg.Subscriptions.Get(endpoint)
	if !ok {
		notFound(c, "subscription")
		return
	}

	bookingIDs := sub.BookingIDs
	if bookingIDs == nil {
		bookingIDs = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"booking_ids": bookingIDs})
}
