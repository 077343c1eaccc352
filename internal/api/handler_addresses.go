package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-market-backend/internal/httperr"
	"local-market-backend/internal/model"
)

func (h *Handler) ListAddresses(c *gin.Context) {
	c.JSON(http.StatusOK, list(h.reg.Addresses.List()))
}

type addressRequest struct {
	Label     string  `json:"label"`
	Street    string  `json:"street"`
	City      string  `json:"city"`
	Details   string  `json:"details"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AddAddress handles POST /api/addresses. The new address becomes the default.
func (h *Handler) AddAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	a, err := h.reg.Addresses.Add(model.Address{
		Label:     req.Label,
		Street:    req.Street,
		City:      req.City,
		Details:   req.Details,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) SetDefaultAddress(c *gin.Context) {
	res := h.reg.Addresses.SetDefault(c.Param("id"))
	a, _ := h.reg.Addresses.Get(c.Param("id"))
	respond(c, res, "address", a)
}

type addressPatch struct {
	Label     *string  `json:"label"`
	Street    *string  `json:"street"`
	City      *string  `json:"city"`
	Details   *string  `json:"details"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (p addressPatch) apply(a *model.Address) {
	if p.Label != nil {
		a.Label = *p.Label
	}
	if p.Street != nil && *p.Street != "" {
		a.Street = *p.Street
	}
	if p.City != nil {
		a.City = *p.City
	}
	if p.Details != nil {
		a.Details = *p.Details
	}
	if p.Latitude != nil {
		a.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		a.Longitude = *p.Longitude
	}
}

// EditAddress handles PATCH /api/addresses/:id. The default flag only changes through
// PUT /api/addresses/:id/default.
func (h *Handler) EditAddress(c *gin.Context) {
	var patch addressPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	a, res := h.reg.Addresses.Edit(c.Param("id"), patch.apply)
	respond(c, res, "address", a)
}

// DeleteAddress handles DELETE /api/addresses/:id. Removing the default promotes the
// first remaining address.
func (h *Handler) DeleteAddress(c *gin.Context) {
	respond(c, h.reg.Addresses.Remove(c.Param("id")), "address", nil)
}
