package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"local-market-backend/internal/form"
	"local-market-backend/internal/httperr"
)

// StartFlow handles POST /api/flows/:kind and returns the new flow at its first step. The
// kind sits in the :id wildcard because gin allows one wildcard name per path segment.
func (h *Handler) StartFlow(c *gin.Context) {
	flow, err := h.factory.Start(form.Kind(c.Param("id")))
	if err != nil {
		fail(c, err)
		return
	}
	h.flows.Set(flow.ID(), flow, cache.DefaultExpiration)
	c.JSON(http.StatusCreated, flow.Snapshot())
}

// flow looks up an in-progress flow and extends its lifetime.
func (h *Handler) flow(c *gin.Context) (*form.Flow, bool) {
	id := c.Param("id")
	v, ok := h.flows.Get(id)
	if !ok {
		notFound(c, "flow")
		return nil, false
	}
	flow := v.(*form.Flow)
	h.flows.Set(id, flow, cache.DefaultExpiration)
	return flow, true
}

func (h *Handler) GetFlow(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, flow.Snapshot())
}

// SetFlowFields handles PUT /api/flows/:id/fields. Each value is a string or a list of
// strings. Every field in the body replaces the entered values of that field; other fields
// are left alone.
func (h *Handler) SetFlowFields(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	var fields form.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if err := flow.Merge(fields); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, flow.Snapshot())
}

// NextFlowStep validates the current step and advances. On the last step it submits.
func (h *Handler) NextFlowStep(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	if _, err := flow.Next(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, flow.Snapshot())
}

func (h *Handler) PreviousFlowStep(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	if err := flow.Back(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, flow.Snapshot())
}

// SubmitFlow validates every step and stores the result. A failed submit leaves the flow
// editable and stores nothing.
func (h *Handler) SubmitFlow(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	if _, err := flow.Submit(); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, flow.Snapshot())
}

// CancelFlow discards the flow and everything entered into it.
func (h *Handler) CancelFlow(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	if err := flow.Cancel(); err != nil {
		fail(c, err)
		return
	}
	h.flows.Delete(flow.ID())
	c.Status(http.StatusNoContent)
}
