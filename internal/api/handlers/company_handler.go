package handlers

import (
	"net/http"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	svc services.CompanyService
}

func NewCompanyHandler(svc services.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var in services.CompanyInput
	if !bindJSON(c, "CompanyHandler.Create", &in) {
		return
	}
	co, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, co)
}

func (h *CompanyHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CompanyHandler) Restore(c *gin.Context) {
	if err := h.svc.Restore(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
