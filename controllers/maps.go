package controllers

import (
	"net/http"

	"github.com/elyashium/sylvan-web/models"
	"github.com/elyashium/sylvan-web/utils"

	"github.com/gin-gonic/gin"
)

type marker struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Position models.Coordinate `json:"position"`
	Severity models.Severity   `json:"severity"`
	Color    string            `json:"color"`
	Link     string            `json:"link"`
}

// mapView is what the map surface needs: where to look and what to draw.
// Bounds is nil when there are no markers to fit.
type mapView struct {
	Center  models.Coordinate `json:"center"`
	Zoom    int               `json:"zoom"`
	MaxZoom int               `json:"maxZoom"`
	Bounds  *utils.Bounds     `json:"bounds"`
	Markers []marker          `json:"markers"`
}

func fit(v *mapView) {
	points := make([]models.Coordinate, len(v.Markers))
	for i, m := range v.Markers {
		points[i] = m.Position
	}
	if b, ok := utils.BoundsOf(points); ok {
		v.Bounds = &b
	}
}

// SensorMap centres on the mean of the readings that have a location.
// Readings without one are left off the map.
func (h *Handler) SensorMap(c *gin.Context) {
	readings, err := h.Data.Readings(c.Request.Context())
	if err != nil {
		h.fail(c, "Sensor", err)
		return
	}

	v := mapView{
		Center:  utils.MeanCenter(readings),
		Zoom:    utils.SensorMapZoom,
		MaxZoom: utils.MaxFitZoom,
		Markers: []marker{},
	}
	for _, r := range readings {
		coord, ok := utils.ResolveLocation(r)
		if !ok {
			continue
		}
		s := utils.Classify(r)
		v.Markers = append(v.Markers, marker{
			ID:       r.ID,
			Title:    s.Label(),
			Position: coord,
			Severity: s,
			Color:    s.Color(),
			Link:     "/sensor/" + r.ID,
		})
	}
	fit(&v)
	c.JSON(http.StatusOK, v)
}

// PlantMap draws plant locations, optionally filtered by ?status=.
func (h *Handler) PlantMap(c *gin.Context) {
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

	v := mapView{
		Center:  utils.PlantMapCenter,
		Zoom:    utils.PlantMapZoom,
		MaxZoom: utils.MaxFitZoom,
		Markers: []marker{},
	}
	for _, p := range utils.FilterPlants(plants, status) {
		s := p.Status.Severity()
		v.Markers = append(v.Markers, marker{
			ID:       p.ID,
			Title:    p.Name,
			Position: p.Coordinate(),
			Severity: s,
			Color:    s.Color(),
			Link:     "/plants/" + p.ID,
		})
	}
	fit(&v)
	c.JSON(http.StatusOK, v)
}
