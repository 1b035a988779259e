package controllers

import (
	"net/http"

	"github.com/elyashium/sylvan-web/models"
	"github.com/elyashium/sylvan-web/store"
	"github.com/elyashium/sylvan-web/utils"

	"github.com/gin-gonic/gin"
)

// ListPlants returns plant locations, optionally filtered by ?status=.
func (h *Handler) ListPlants(c *gin.Context) {
	status, ok := parsePlantStatus(c.Query("status"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}
	plants, err := h.Data.Plants(c.Request.Context())
	if err != nil {
		h.fail(c, "Plant", err)
		return
	}
	filtered := utils.FilterPlants(plants, status)
	c.JSON(http.StatusOK, gin.H{"plants": filtered, "count": len(filtered)})
}

// GetPlant returns plant details with the severity its latest sensor data
// classifies to, which may disagree with the stored status.
func (h *Handler) GetPlant(c *gin.Context) {
	d, err := h.Data.Plant(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "Plant", err)
		return
	}
	r := d.SensorData.Reading(d.ID, d.Location)
	s := utils.Classify(r)
	c.JSON(http.StatusOK, gin.H{
		"plant":      d,
		"severity":   s,
		"label":      s.Label(),
		"violations": utils.Violations(r),
		"rangeNotes": utils.RangeNotes(r),
		"back":       dashboardPath,
	})
}

func (h *Handler) editor(c *gin.Context) (store.PlantEditor, bool) {
	e, ok := h.Data.(store.PlantEditor)
	if !ok {
		h.fail(c, "Plant", store.ErrReadOnly)
	}
	return e, ok
}

// AddPlant validates and echoes a new plant location. The fixture source
// does not keep it.
func (h *Handler) AddPlant(c *gin.Context) {
	var p models.PlantLocation
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plant"})
		return
	}
	if !p.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plant status"})
		return
	}
	e, ok := h.editor(c)
	if !ok {
		return
	}
	added, err := e.AddPlant(c.Request.Context(), p)
	if err != nil {
		h.fail(c, "Plant", err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

// UpdatePlantStatus changes the status of one plant.
func (h *Handler) UpdatePlantStatus(c *gin.Context) {
	var req struct {
		Status models.PlantStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plant status"})
		return
	}
	e, ok := h.editor(c)
	if !ok {
		return
	}
	updated, err := e.UpdatePlantStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, "Plant", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
