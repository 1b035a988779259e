package controllers

import (
	"net/http"

	"github.com/elyashium/sylvan-web/middlewares"
	"github.com/elyashium/sylvan-web/models"

	"github.com/gin-gonic/gin"
)

// GetUserType returns the caller's account category, null until chosen.
func (h *Handler) GetUserType(c *gin.Context) {
	s, ok := middlewares.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	t, err := h.Prefs.UserType(c.Request.Context(), s.User.ID)
	if err != nil {
		h.authFail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userType": t})
}

// SetUserType records the category the user picked.
func (h *Handler) SetUserType(c *gin.Context) {
	s, ok := middlewares.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req struct {
		UserType models.UserType `json:"userType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.UserType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userType must be household or commercial"})
		return
	}

	user, err := h.Prefs.SetUserType(c.Request.Context(), s.User.ID, req.UserType)
	if err != nil {
		h.authFail(c, err)
		return
	}
	h.Logger.InfoContext(c.Request.Context(), "user type set", "user_id", user.ID, "user_type", req.UserType)
	c.JSON(http.StatusOK, gin.H{"userType": user.UserType})
}
