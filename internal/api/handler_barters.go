package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-market-backend/internal/httperr"
	"local-market-backend/internal/model"
	"local-market-backend/internal/query"
)

// ListBarters handles GET /api/barters?q=&category=&owner=&sort=&order=. Without a sort
// the newest listing comes first.
func (h *Handler) ListBarters(c *gin.Context) {
	p, err := listParams(c, "category", "owner")
	if err != nil {
		fail(c, err)
		return
	}
	items, err := query.Apply(h.reg.Barters.List(), query.BarterSchema, p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list(items))
}

func (h *Handler) GetBarter(c *gin.Context) {
	b, ok := h.reg.Barters.Get(c.Param("id"))
	if !ok {
		notFound(c, "barter")
		return
	}
	c.JSON(http.StatusOK, b)
}

type createBarterRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Images      []string         `json:"images"`
	Image       string           `json:"image"`
	LookingFor  string           `json:"lookingFor"`
	Location    string           `json:"location"`
	User        model.BarterUser `json:"user"`
}

// CreateBarter handles POST /api/barters. The new listing is shown first.
func (h *Handler) CreateBarter(c *gin.Context) {
	var req createBarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	b, err := h.reg.Barters.Create(model.Barter{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Images:      req.Images,
		Image:       req.Image,
		LookingFor:  req.LookingFor,
		Location:    req.Location,
		User:        req.User,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *Handler) DeleteBarter(c *gin.Context) {
	respond(c, h.reg.Barters.Delete(c.Param("id")), "barter", nil)
}
