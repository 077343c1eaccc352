package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-market-backend/internal/query"
)

// Misspellings within this distance of a known term are offered as suggestions.
const suggestDistance = 2

func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, list(h.catalog.Categories()))
}

// ListFixers handles GET /api/fixers?q=&category=&location=&sort=&order=. A search that
// matches nothing comes back with "did you mean" suggestions.
func (h *Handler) ListFixers(c *gin.Context) {
	p, err := listParams(c, "category", "location")
	if err != nil {
		fail(c, err)
		return
	}
	items, err := query.Apply(h.catalog.Fixers(), query.FixerSchema, p)
	if err != nil {
		fail(c, err)
		return
	}
	resp := list(items)
	if len(items) == 0 && p.Q != "" {
		resp.Suggestions = query.Suggest(p.Q, h.catalog.SearchTerms(), suggestDistance)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetFixer(c *gin.Context) {
	f, ok := h.catalog.FixerByID(c.Param("id"))
	if !ok {
		notFound(c, "fixer")
		return
	}
	c.JSON(http.StatusOK, f)
}

// ListProducts handles GET /api/products?q=&category=&condition=&sort=&order=.
func (h *Handler) ListProducts(c *gin.Context) {
	p, err := listParams(c, "category", "condition")
	if err != nil {
		fail(c, err)
		return
	}
	items, err := query.Apply(h.catalog.Products(), query.ProductSchema, p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list(items))
}
