package utils

import (
	"fmt"
	"math"

	"github.com/elyashium/sylvan-web/models"
)

// DefaultCenter is used when no reading carries a usable position.
var DefaultCenter = models.Coordinate{Lat: 28.6139, Lng: 77.209}

// PlantMapCenter is the initial centre of the plant map.
var PlantMapCenter = models.Coordinate{Lat: 37.7749, Lng: -122.4194}

const (
	SensorMapZoom = 10
	PlantMapZoom  = 13
	// MaxFitZoom caps the zoom after fitting the map to its markers.
	MaxFitZoom = 16
)

// ResolveLocation normalizes either location shape to a coordinate.
func ResolveLocation(r models.SensorReading) (models.Coordinate, bool) {
	switch r.Location.Kind {
	case models.GPSLocation, models.GeoLocation:
		return r.Location.Point, true
	default:
		return models.Coordinate{}, false
	}
}

// MeanCenter averages every resolvable coordinate, falling back to DefaultCenter.
func MeanCenter(readings []models.SensorReading) models.Coordinate {
	var sumLat, sumLng float64
	count := 0
	for _, r := range readings {
		c, ok := ResolveLocation(r)
		if !ok {
			continue
		}
		sumLat += c.Lat
		sumLng += c.Lng
		count++
	}
	if count == 0 {
		return DefaultCenter
	}
	return models.Coordinate{Lat: sumLat / float64(count), Lng: sumLng / float64(count)}
}

// Bounds is the smallest box containing a set of coordinates.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// BoundsOf returns false for an empty set.
func BoundsOf(points []models.Coordinate) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		North: math.Inf(-1),
		South: math.Inf(1),
		East:  math.Inf(-1),
		West:  math.Inf(1),
	}
	for _, p := range points {
		b.North = math.Max(b.North, p.Lat)
		b.South = math.Min(b.South, p.Lat)
		b.East = math.Max(b.East, p.Lng)
		b.West = math.Min(b.West, p.Lng)
	}
	return b, true
}

// LocationLabel is the card title for a reading.
func LocationLabel(r models.SensorReading) string {
	c, ok := ResolveLocation(r)
	if !ok {
		return "Unknown Location"
	}
	return fmt.Sprintf("Lat: %.4f, Lng: %.4f", c.Lat, c.Lng)
}

// searchLabel is the unrounded string the dashboard search matches against.
func searchLabel(r models.SensorReading) string {
	c, ok := ResolveLocation(r)
	if !ok {
		return ""
	}
	return fmt.Sprintf("Lat: %v, Lng: %v", c.Lat, c.Lng)
}
