package models

// PlantStatus is the status string carried on plant records.
type PlantStatus string

const (
	PlantHealthy  PlantStatus = "healthy"
	PlantWarning  PlantStatus = "warning"
	PlantCritical PlantStatus = "critical"
)

// Valid reports whether s is one of the known plant statuses.
func (s PlantStatus) Valid() bool {
	switch s {
	case PlantHealthy, PlantWarning, PlantCritical:
		return true
	}
	return false
}

// Severity maps the plant status onto the reading severity tiers.
func (s PlantStatus) Severity() Severity {
	switch s {
	case PlantWarning:
		return SeverityWarning
	case PlantCritical:
		return SeverityError
	default:
		return SeverityNormal
	}
}

// PlantLocation is the map/list read-model of a plant.
type PlantLocation struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name" binding:"required"`
	Lat         float64     `json:"lat"`
	Lng         float64     `json:"lng"`
	Status      PlantStatus `json:"status" binding:"required"`
	Type        string      `json:"type"`
	LastUpdated string      `json:"lastUpdated"`
}

// Coordinate returns the plant position.
func (p PlantLocation) Coordinate() Coordinate {
	return Coordinate{Lat: p.Lat, Lng: p.Lng}
}

type PlantSite struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type PlantSensorData struct {
	Timestamp    string  `json:"timestamp"`
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	SoilMoisture float64 `json:"soilMoisture"`
	LightLevel   float64 `json:"lightLevel"`
	WaterLevel   float64 `json:"waterLevel"`
}

// Reading converts the plant's latest sensor data into a SensorReading so
// it can go through the same classifier as device readings.
func (d PlantSensorData) Reading(id string, site PlantSite) SensorReading {
	return SensorReading{
		ID:           id,
		Temperature:  Float(d.Temperature),
		Humidity:     Float(d.Humidity),
		SoilMoisture: Float(d.SoilMoisture),
		Location:     GPS(site.Lat, site.Lng),
		Timestamp:    d.Timestamp,
		CreatedAt:    d.Timestamp,
		UpdatedAt:    d.Timestamp,
	}
}

type PlantPost struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type PlantEvent struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

// PlantDetails is the detail read-model of a plant.
type PlantDetails struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Species      string          `json:"species"`
	Location     PlantSite       `json:"location"`
	Status       PlantStatus     `json:"status"`
	LastWatered  string          `json:"lastWatered"`
	NextWatering string          `json:"nextWatering"`
	SensorData   PlantSensorData `json:"sensorData"`
	Tweets       []PlantPost     `json:"tweets"`
	History      []PlantEvent    `json:"history"`
}

// Clone copies the slices so callers cannot reach into a fixture.
func (p PlantDetails) Clone() PlantDetails {
	out := p
	out.Tweets = append([]PlantPost(nil), p.Tweets...)
	out.History = append([]PlantEvent(nil), p.History...)
	return out
}
