package handlers

import (
	"net/http"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users services.UserService
}

func NewAuthHandler(users services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if !bindJSON(c, "AuthHandler.Register", &in) {
		return
	}
	res, err := h.users.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, "AuthHandler.Login", &req) {
		return
	}
	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	p, err := h.users.Me(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var in services.ProfileInput
	if !bindJSON(c, "AuthHandler.UpdateMe", &in) {
		return
	}
	p, err := h.users.UpdateProfile(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteMe soft-deletes the caller's own account.
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) RestoreUser(c *gin.Context) {
	if err := h.users.Restore(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
