package utils

import (
	"fmt"
	"strings"

	"github.com/elyashium/sylvan-web/models"
)

// band is an open interval; values strictly outside it trip the tier.
// A zero bound on Max means the metric has no upper limit.
type band struct {
	Min, Max float64
}

func (b band) outside(v float64) bool {
	return v < b.Min || (b.Max != 0 && v > b.Max)
}

var (
	errorBands = map[models.Metric]band{
		models.MetricTemperature:  {Min: 5, Max: 35},
		models.MetricHumidity:     {Min: 10, Max: 90},
		models.MetricSoilMoisture: {Min: 10},
	}
	warningBands = map[models.Metric]band{
		models.MetricTemperature:  {Min: 10, Max: 30},
		models.MetricHumidity:     {Min: 20, Max: 80},
		models.MetricSoilMoisture: {Min: 20},
	}
)

// numericMetrics fixes the order metrics are checked and reported in.
var numericMetrics = []models.Metric{
	models.MetricTemperature,
	models.MetricHumidity,
	models.MetricSoilMoisture,
}

func metricValue(r models.SensorReading, m models.Metric) (float64, bool) {
	var p *float64
	switch m {
	case models.MetricTemperature:
		p = r.Temperature
	case models.MetricHumidity:
		p = r.Humidity
	case models.MetricSoilMoisture:
		p = r.SoilMoisture
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// HasMeasurements reports whether any numeric field is present.
func HasMeasurements(r models.SensorReading) bool {
	return r.Temperature != nil || r.Humidity != nil || r.SoilMoisture != nil
}

// Classify derives the severity of a reading. Error is checked before
// Warning; a reading without any numeric measurement counts as Error.
func Classify(r models.SensorReading) models.Severity {
	if !HasMeasurements(r) {
		return models.SeverityError
	}
	for _, m := range numericMetrics {
		if v, ok := metricValue(r, m); ok && errorBands[m].outside(v) {
			return models.SeverityError
		}
	}
	for _, m := range numericMetrics {
		if v, ok := metricValue(r, m); ok && warningBands[m].outside(v) {
			return models.SeverityWarning
		}
	}
	if r.Vibration != nil && *r.Vibration {
		return models.SeverityWarning
	}
	return models.SeverityNormal
}

// Violations lists every metric outside its band, at the highest tier it
// reaches, in temperature, humidity, soil moisture, vibration order.
func Violations(r models.SensorReading) []models.Violation {
	var out []models.Violation
	for _, m := range numericMetrics {
		v, ok := metricValue(r, m)
		if !ok {
			continue
		}
		switch {
		case errorBands[m].outside(v):
			out = append(out, models.Violation{Metric: m, Value: v, Severity: models.SeverityError})
		case warningBands[m].outside(v):
			out = append(out, models.Violation{Metric: m, Value: v, Severity: models.SeverityWarning})
		}
	}
	if r.Vibration != nil && *r.Vibration {
		out = append(out, models.Violation{Metric: models.MetricVibration, Value: 1, Severity: models.SeverityWarning})
	}
	return out
}

// RangeNote is the caption shown under a metric on the detail view.
func RangeNote(m models.Metric, v float64) string {
	b, ok := warningBands[m]
	if !ok {
		return ""
	}
	if m == models.MetricSoilMoisture {
		if v < b.Min {
			return "Below optimal level"
		}
		return "Optimal level"
	}
	switch {
	case b.Max != 0 && v > b.Max:
		return "Above normal range"
	case v < b.Min:
		return "Below normal range"
	default:
		return "Normal range"
	}
}

// RangeNotes returns the captions for every numeric metric present on r.
func RangeNotes(r models.SensorReading) map[models.Metric]string {
	notes := make(map[models.Metric]string, len(numericMetrics))
	for _, m := range numericMetrics {
		if v, ok := metricValue(r, m); ok {
			notes[m] = RangeNote(m, v)
		}
	}
	return notes
}

// ParseSeverity parses a status filter. Empty and "all" return ok with an
// empty severity, meaning no filtering.
func ParseSeverity(s string) (models.Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "", nil
	case string(models.SeverityNormal):
		return models.SeverityNormal, nil
	case string(models.SeverityWarning):
		return models.SeverityWarning, nil
	case string(models.SeverityError):
		return models.SeverityError, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}
