package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elyashium/sylvan-web/models"
	"github.com/elyashium/sylvan-web/utils"

	"github.com/gin-gonic/gin"
)

// ListReadings returns the dashboard cards, filtered by ?search= and ?status=.
func (h *Handler) ListReadings(c *gin.Context) {
	status, err := utils.ParseSeverity(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}
	readings, err := h.Data.Readings(c.Request.Context())
	if err != nil {
		h.fail(c, "Sensor", err)
		return
	}

	cards := newCards(utils.FilterReadings(readings, c.Query("search"), status))
	c.JSON(http.StatusOK, gin.H{"readings": cards, "count": len(cards), "total": len(readings)})
}

type readingDetail struct {
	card
	Violations []models.Violation       `json:"violations"`
	RangeNotes map[models.Metric]string `json:"rangeNotes"`
	Location   *models.Coordinate       `json:"location"`
	ObservedAt string                   `json:"observedAt"`
	Back       string                   `json:"back"`
}

// GetReading returns one reading with everything the detail page shows.
func (h *Handler) GetReading(c *gin.Context) {
	r, err := h.Data.Reading(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "Sensor", err)
		return
	}

	d := readingDetail{
		card:       newCard(r),
		Violations: utils.Violations(r),
		RangeNotes: utils.RangeNotes(r),
		ObservedAt: r.ObservedAt(),
		Back:       dashboardPath,
	}
	if d.Violations == nil {
		d.Violations = []models.Violation{}
	}
	if coord, ok := utils.ResolveLocation(r); ok {
		d.Location = &coord
	}
	c.JSON(http.StatusOK, d)
}

// ReadingTweet generates the status message the reading would post.
func (h *Handler) ReadingTweet(c *gin.Context) {
	r, err := h.Data.Reading(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "Sensor", err)
		return
	}
	name := c.Query("plant")
	if name == "" {
		name = "Sensor " + shortID(r.ID)
	}
	c.JSON(http.StatusOK, utils.GenerateTweet(r, name))
}

func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

// ExportReadingsCSV sends every reading with its derived severity as a CSV file.
func (h *Handler) ExportReadingsCSV(c *gin.Context) {
	readings, err := h.Data.Readings(c.Request.Context())
	if err != nil {
		h.fail(c, "Sensor", err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=sensor_readings.csv")
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"id", "timestamp", "temperature", "humidity", "soil_moisture", "vibration", "latitude", "longitude", "severity"})
	for _, r := range readings {
		vibration := ""
		if r.Vibration != nil {
			vibration = strconv.FormatBool(*r.Vibration)
		}
		lat, lng := "", ""
		if coord, ok := utils.ResolveLocation(r); ok {
			lat, lng = fmt.Sprint(coord.Lat), fmt.Sprint(coord.Lng)
		}
		writer.Write([]string{
			r.ID,
			r.ObservedAt(),
			formatFloat(r.Temperature),
			formatFloat(r.Humidity),
			formatFloat(r.SoilMoisture),
			vibration,
			lat,
			lng,
			string(utils.Classify(r)),
		})
	}
}
