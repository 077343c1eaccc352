package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"local-market-backend/internal/catalog"
	"local-market-backend/internal/checkout"
	"local-market-backend/internal/form"
	"local-market-backend/internal/httperr"
	"local-market-backend/internal/parse"
	"local-market-backend/internal/query"
	"local-market-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	reg      *store.Registry
	catalog  *catalog.Service
	factory  *form.Factory
	checkout *checkout.Service
	flows    *cache.Cache
	webpush  *webpush.Options
}

// NewHandler creates a new API handler. In-progress flows are dropped after flowTTL
// without activity.
func NewHandler(reg *store.Registry, cat *catalog.Service, factory *form.Factory, co *checkout.Service, flowTTL time.Duration, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		reg:      reg,
		catalog:  cat,
		factory:  factory,
		checkout: co,
		flows:    cache.New(flowTTL, 2*flowTTL),
		webpush:  webpushOptions,
	}
}

type listResponse[T any] struct {
	Items       []T      `json:"items"`
	Count       int      `json:"count"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func list[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}

// listParams reads the search box, the named equality filters and the sort from the query
// string.
func listParams(c *gin.Context, filters ...string) (query.Params, error) {
	p := query.Params{
		Q:       c.Query("q"),
		Sort:    c.Query("sort"),
		Filters: map[string]string{},
	}
	for _, name := range filters {
		if v, ok := c.GetQuery(name); ok {
			p.Filters[name] = v
		}
	}
	dir, err := query.ParseDirection(c.Query("order"))
	if err != nil {
		return query.Params{}, err
	}
	p.Order = dir
	return p, nil
}

func notFound(c *gin.Context, what string) {
	httperr.NotFound(c, "not_found", what+" not found")
}

// fail maps errors from the stores, flows and checkout to a response.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, query.ErrUnknownKey):
		httperr.BadRequest(c, "invalid_query", err.Error())
	case errors.Is(err, form.ErrUnknownKind):
		httperr.NotFound(c, "unknown_kind", err.Error())
	case errors.Is(err, form.ErrFlowClosed), errors.Is(err, form.ErrFirstStep):
		httperr.Write(c, http.StatusConflict, "flow_state", err.Error())
	case errors.Is(err, parse.ErrInvalidURL):
		httperr.BadRequest(c, "invalid_url", err.Error())
	case errors.Is(err, checkout.ErrBookingNotFound):
		notFound(c, "booking")
	default:
		httperr.FromError(c, err)
	}
}

// respond writes the outcome of a mutation by id.
func respond(c *gin.Context, res store.Result, what string, body any) {
	switch res {
	case store.NotFound:
		notFound(c, what)
	case store.Deleted:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, body)
	}
}
