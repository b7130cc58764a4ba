package handlers

import (
	"net/http"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	apps  services.ApplicationService
	match services.MatchService
}

func NewApplicationHandler(apps services.ApplicationService, match services.MatchService) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, match: match}
}

type jobCVRequest struct {
	JobID string `json:"job_id"`
	CVID  string `json:"cv_id"`
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req jobCVRequest
	if !bindJSON(c, "ApplicationHandler.Apply", &req) {
		return
	}
	a, err := h.apps.Apply(c.Request.Context(), actor, req.JobID, req.CVID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.apps.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ApplicationHandler) Restore(c *gin.Context) {
	if err := h.apps.Restore(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ApplicationHandler) Match(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req jobCVRequest
	if !bindJSON(c, "ApplicationHandler.Match", &req) {
		return
	}
	res, err := h.match.Match(c.Request.Context(), userID, req.CVID, req.JobID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
