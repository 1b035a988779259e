package controllers

import (
	"net/http"

	"github.com/elyashium/sylvan-web/store"
	"github.com/elyashium/sylvan-web/utils"

	"github.com/gin-gonic/gin"
)

// Analytics serves every chart on the analytics page. ?location= picks a
// site summary; it defaults to the aggregate of all sites.
func (h *Handler) Analytics(c *gin.Context) {
	ctx := c.Request.Context()

	readings, err := h.Data.Readings(ctx)
	if err != nil {
		h.fail(c, "Sensor", err)
		return
	}
	plants, err := h.Data.Plants(ctx)
	if err != nil {
		h.fail(c, "Plant", err)
		return
	}
	details, err := store.AllPlantDetails(ctx, h.Data)
	if err != nil {
		h.fail(c, "Plant", err)
		return
	}
	tweets, err := h.Data.Tweets(ctx)
	if err != nil {
		h.fail(c, "Tweet", err)
		return
	}

	location := c.DefaultQuery("location", utils.AllLocations)
	a := utils.BuildAnalytics(readings, plants, details, tweets, location)
	if a.Selected == nil && location != utils.AllLocations {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found", "back": "/analytics"})
		return
	}
	c.JSON(http.StatusOK, a)
}
