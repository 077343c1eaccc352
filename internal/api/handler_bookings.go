package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"local-market-backend/internal/httperr"
	"local-market-backend/internal/model"
	"local-market-backend/internal/query"
	"local-market-backend/internal/store"
)

// ListBookings handles GET /api/bookings?q=&status=&fixer_id=&sort=&order=.
func (h *Handler) ListBookings(c *gin.Context) {
	p, err := listParams(c, "status", "fixer_id")
	if err != nil {
		fail(c, err)
		return
	}
	items, err := query.Apply(h.reg.Bookings.List(), query.BookingSchema, p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list(items))
}

func (h *Handler) UpcomingBookings(c *gin.Context) {
	c.JSON(http.StatusOK, list(h.reg.Bookings.Upcoming()))
}

func (h *Handler) PastBookings(c *gin.Context) {
	c.JSON(http.StatusOK, list(h.reg.Bookings.Past()))
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, ok := h.reg.Bookings.Get(c.Param("id"))
	if !ok {
		notFound(c, "booking")
		return
	}
	c.JSON(http.StatusOK, b)
}

type createBookingRequest struct {
	FixerID       string  `json:"fixerId" binding:"required"`
	FixerName     string  `json:"fixerName"`
	Service       string  `json:"service" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	Time          string  `json:"time" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	Price         float64 `json:"price" binding:"gte=0"`
	Notes         string  `json:"notes"`
	PaymentMethod string  `json:"paymentMethod"`
}

// CreateBooking handles POST /api/bookings. New bookings start out pending.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.FixerName == "" {
		if f, ok := h.catalog.FixerByID(req.FixerID); ok {
			req.FixerName = f.Name
		}
	}

	b, err := h.reg.Bookings.Create(model.Booking{
		FixerID:       req.FixerID,
		FixerName:     req.FixerName,
		Service:       req.Service,
		Date:          req.Date,
		Time:          req.Time,
		Address:       req.Address,
		Price:         req.Price,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// EditBooking handles PATCH /api/bookings/:id with a partial booking document.
func (h *Handler) EditBooking(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		httperr.BadRequest(c, "invalid_request", "a JSON body is required")
		return
	}
	b, res, err := h.reg.Bookings.Edit(c.Param("id"), body)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, res, "booking", b)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	h.transition(c, h.reg.Bookings.Cancel)
}

func (h *Handler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.reg.Bookings.Confirm)
}

func (h *Handler) CompleteBooking(c *gin.Context) {
	h.transition(c, h.reg.Bookings.Complete)
}

func (h *Handler) transition(c *gin.Context, apply func(id string) (model.Booking, store.Result, error)) {
	b, res, err := apply(c.Param("id"))
	if res == store.NotFound {
		notFound(c, "booking")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	respond(c, h.reg.Bookings.Delete(c.Param("id")), "booking", nil)
}
