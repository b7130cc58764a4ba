package handlers

import (
	"net/http"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/gin-gonic/gin"
)

type IndustryHandler struct {
	svc services.IndustryService
}

func NewIndustryHandler(svc services.IndustryService) *IndustryHandler {
	return &IndustryHandler{svc: svc}
}

func (h *IndustryHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

type createIndustryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (h *IndustryHandler) Create(c *gin.Context) {
	var req createIndustryRequest
	if !bindJSON(c, "IndustryHandler.Create", &req) {
		return
	}
	ind, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ind)
}
