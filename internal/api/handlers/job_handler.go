package handlers

import (
	"net/http"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobs services.JobService
	apps services.ApplicationService
}

func NewJobHandler(jobs services.JobService, apps services.ApplicationService) *JobHandler {
	return &JobHandler{jobs: jobs, apps: apps}
}

func (h *JobHandler) List(c *gin.Context) {
	rows, err := h.jobs.List(c.Request.Context(), queryLimit(c, 50, 200))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

func (h *JobHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in services.JobInput
	if !bindJSON(c, "JobHandler.Create", &in) {
		return
	}
	j, err := h.jobs.Create(c.Request.Context(), actor, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, j)
}

func (h *JobHandler) Mine(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	rows, err := h.jobs.ListForRecruiter(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

func (h *JobHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.jobs.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) Restore(c *gin.Context) {
	if err := h.jobs.Restore(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) Applications(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	rows, err := h.apps.ListByJob(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}
