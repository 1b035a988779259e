package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register mounts every route. requireAuth guards everything except
// health, sign-up, sign-in and password reset.
func Register(r gin.IRouter, h *Handler, feed *Feed, requireAuth gin.HandlerFunc) {
	r.GET("/healthz", Healthz)

	// Public routes
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/federated", h.FederatedLogin)
	r.POST("/auth/password-reset", h.RequestPasswordReset)
	r.POST("/auth/password-reset/confirm", h.ConfirmPasswordReset)

	// Protected routes
	authed := r.Group("/")
	authed.Use(requireAuth)
	authed.POST("/auth/logout", h.Logout)
	authed.GET("/auth/session", h.Session)
	authed.GET("/preferences/user-type", h.GetUserType)
	authed.PUT("/preferences/user-type", h.SetUserType)

	authed.GET("/readings", h.ListReadings)
	authed.GET("/readings/export.csv", h.ExportReadingsCSV)
	authed.GET("/readings/:id", h.GetReading)
	authed.GET("/readings/:id/tweet", h.ReadingTweet)
	authed.GET("/map/sensors", h.SensorMap)
	authed.GET("/map/plants", h.PlantMap)
	authed.GET("/plants", h.ListPlants)
	authed.POST("/plants", h.AddPlant)
	authed.GET("/plants/:id", h.GetPlant)
	authed.PATCH("/plants/:id/status", h.UpdatePlantStatus)
	authed.GET("/tweets", h.ListTweets)
	authed.GET("/analytics", h.Analytics)
	authed.GET("/ws", feed.HandleWebSocket)
}

// Healthz is the liveness probe.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
