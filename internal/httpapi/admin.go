package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /jobs/:id
func (h *Handler) getJob(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	job, err := h.svc.Jobs.Status(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toJobResponse(job))
}

// GET /settings
func (h *Handler) listSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Settings.All())
}

// PUT /settings/:key
func (h *Handler) putSetting(c *gin.Context) {
	var req PutSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	key := c.Param("key")
	if err := h.svc.Settings.Set(c.Request.Context(), key, req.Value); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}

// POST /settings/reload
func (h *Handler) reloadSettings(c *gin.Context) {
	if err := h.svc.Settings.Reload(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.svc.Settings.All())
}
