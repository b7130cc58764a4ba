package handlers

import (
	"net/http"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	svc services.SiteStatService
}

func NewStatsHandler(svc services.SiteStatService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) Get(c *gin.Context) {
	totals, err := h.svc.Totals(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *StatsHandler) Set(c *gin.Context) {
	var in models.SiteTotalsPatch
	if !bindJSON(c, "StatsHandler.Set", &in) {
		return
	}
	totals, err := h.svc.Set(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *StatsHandler) Recompute(c *gin.Context) {
	totals, err := h.svc.Recompute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}
