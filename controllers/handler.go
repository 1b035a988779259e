package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/elyashium/sylvan-web/auth"
	"github.com/elyashium/sylvan-web/models"
	"github.com/elyashium/sylvan-web/store"
	"github.com/elyashium/sylvan-web/utils"

	"github.com/gin-gonic/gin"
)

// dashboardPath is where the UI sends users back to after a missing record.
const dashboardPath = "/dashboard"

// Handler carries the dependencies shared by the HTTP handlers.
type Handler struct {
	Data   store.Provider
	Auth   auth.IdentityProvider
	Prefs  auth.Preferences
	Logger *slog.Logger
}

func NewHandler(data store.Provider, identity auth.IdentityProvider, prefs auth.Preferences, logger *slog.Logger) *Handler {
	return &Handler{Data: data, Auth: identity, Prefs: prefs, Logger: logger}
}

// fail writes the JSON error for a provider error. what names the missing
// record, e.g. "Sensor".
func (h *Handler) fail(c *gin.Context, what string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found", "back": dashboardPath})
	case errors.Is(err, store.ErrReadOnly):
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Data source is read-only"})
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads the response
		c.Status(499)
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Data source timed out"})
	default:
		h.Logger.ErrorContext(c.Request.Context(), "data provider", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load data"})
	}
}

// card is one reading as the list and feed views show it.
type card struct {
	Reading       models.SensorReading `json:"reading"`
	Severity      models.Severity      `json:"severity"`
	Label         string               `json:"label"`
	Color         string               `json:"color"`
	LocationLabel string               `json:"locationLabel"`
}

func newCard(r models.SensorReading) card {
	s := utils.Classify(r)
	return card{
		Reading:       r,
		Severity:      s,
		Label:         s.Label(),
		Color:         s.Color(),
		LocationLabel: utils.LocationLabel(r),
	}
}

func newCards(readings []models.SensorReading) []card {
	out := make([]card, 0, len(readings))
	for _, r := range readings {
		out = append(out, newCard(r))
	}
	return out
}

func parsePlantStatus(s string) (models.PlantStatus, bool) {
	if s == "" || s == "all" {
		return "", true
	}
	status := models.PlantStatus(s)
	return status, status.Valid()
}
