package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-market-backend/internal/httperr"
	"local-market-backend/internal/model"
)

type savedFixersResponse struct {
	IDs    []string      `json:"ids"`
	Fixers []model.Fixer `json:"fixers"`
}

// ListSavedFixers returns the saved ids and the catalog entries they resolve to. Ids
// missing from the catalog are listed but not resolved.
func (h *Handler) ListSavedFixers(c *gin.Context) {
	ids := h.reg.SavedFixers.List()
	fixers := make([]model.Fixer, 0, len(ids))
	for _, id := range ids {
		if f, ok := h.catalog.FixerByID(id); ok {
			fixers = append(fixers, f)
		}
	}
	c.JSON(http.StatusOK, savedFixersResponse{IDs: ids, Fixers: fixers})
}

// ToggleSavedFixer handles PUT /api/saved-fixers/:id and reports the new state.
func (h *Handler) ToggleSavedFixer(c *gin.Context) {
	id := c.Param("id")
	saved := h.reg.SavedFixers.Toggle(id)
	c.JSON(http.StatusOK, gin.H{"id": id, "saved": saved})
}

func (h *Handler) ListApplications(c *gin.Context) {
	apps := h.reg.Applications(model.ApplicationKind(c.Param("kind")))
	if apps == nil {
		httperr.NotFound(c, "unknown_kind", "unknown application kind")
		return
	}
	c.JSON(http.StatusOK, list(apps.List()))
}

type submitApplicationRequest struct {
	Fields    map[string]string `json:"fields" binding:"required"`
	Documents []string          `json:"documents"`
}

// SubmitApplication stores an application directly. The wizard under /api/flows is the
// validated path; this one takes the fields as given.
func (h *Handler) SubmitApplication(c *gin.Context) {
	apps := h.reg.Applications(model.ApplicationKind(c.Param("kind")))
	if apps == nil {
		httperr.NotFound(c, "unknown_kind", "unknown application kind")
		return
	}
	var req submitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	c.JSON(http.StatusCreated, apps.Submit(req.Fields, req.Documents))
}

type applicationStatusRequest struct {
	Status model.ApplicationStatus `json:"status" binding:"required"`
}

func (h *Handler) SetApplicationStatus(c *gin.Context) {
	apps := h.reg.Applications(model.ApplicationKind(c.Param("kind")))
	if apps == nil {
		httperr.NotFound(c, "unknown_kind", "unknown application kind")
		return
	}
	var req applicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	a, res, err := apps.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, res, "application", a)
}

func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.reg.Settings.Get())
}

type settingsPatch struct {
	Language      *string `json:"language"`
	Theme         *string `json:"theme"`
	Notifications *bool   `json:"notifications"`
}

// PatchSettings applies each present field in turn. The first invalid value stops the
// patch; fields before it stay applied.
func (h *Handler) PatchSettings(c *gin.Context) {
	var patch settingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if patch.Language != nil {
		if _, err := h.reg.Settings.SetLanguage(*patch.Language); err != nil {
			fail(c, err)
			return
		}
	}
	if patch.Theme != nil {
		if _, err := h.reg.Settings.SetTheme(*patch.Theme); err != nil {
			fail(c, err)
			return
		}
	}
	if patch.Notifications != nil {
		h.reg.Settings.SetNotifications(*patch.Notifications)
	}
	c.JSON(http.StatusOK, h.reg.Settings.Get())
}

func (h *Handler) ToggleNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.reg.Settings.ToggleNotifications())
}

// FlushStores writes every dirty store now and waits for the writes.
func (h *Handler) FlushStores(c *gin.Context) {
	dirty := h.reg.Dirty()
	if err := h.reg.FlushAll(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	if dirty == nil {
		dirty = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"flushed": dirty})
}
