package models

// Severity is the derived health tier of a reading. It is never stored.
type Severity string

const (
	SeverityNormal  Severity = "normal"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Label is the badge text the dashboard shows for the tier.
func (s Severity) Label() string {
	switch s {
	case SeverityWarning:
		return "Attention Needed"
	case SeverityError:
		return "Critical Alert"
	default:
		return "Normal"
	}
}

// Color is the marker fill colour for the tier.
func (s Severity) Color() string {
	switch s {
	case SeverityWarning:
		return "#FBBF24"
	case SeverityError:
		return "#F87171"
	default:
		return "#34D399"
	}
}

// Metric names a measured field of a reading.
type Metric string

const (
	MetricTemperature  Metric = "temperature"
	MetricHumidity     Metric = "humidity"
	MetricSoilMoisture Metric = "soilMoisture"
	MetricVibration    Metric = "vibration"
)

// Violation records one metric outside its band and the tier it triggers.
type Violation struct {
	Metric   Metric   `json:"metric"`
	Value    float64  `json:"value"`
	Severity Severity `json:"severity"`
}
