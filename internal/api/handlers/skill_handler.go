package handlers

import (
	"net/http"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	svc services.SkillService
}

func NewSkillHandler(svc services.SkillService) *SkillHandler {
	return &SkillHandler{svc: svc}
}

func (h *SkillHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

type createSkillRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *SkillHandler) Create(c *gin.Context) {
	var req createSkillRequest
	if !bindJSON(c, "SkillHandler.Create", &req) {
		return
	}
	sk, err := h.svc.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sk)
}

func (h *SkillHandler) Mine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.svc.UserSkills(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

type addSkillsRequest struct {
	Skills []struct {
		SkillID     string `json:"skill_id"`
		Proficiency *int   `json:"proficiency"`
	} `json:"skills"`
}

func (h *SkillHandler) AddMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req addSkillsRequest
	if !bindJSON(c, "SkillHandler.AddMine", &req) {
		return
	}
	atts := make([]models.SkillAttachment, 0, len(req.Skills))
	for _, s := range req.Skills {
		atts = append(atts, models.SkillAttachment{SkillID: s.SkillID, Proficiency: s.Proficiency})
	}

	rows, err := h.svc.AddToUser(c.Request.Context(), userID, atts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}
