package models

import (
	"encoding/json"
	"fmt"
)

// LocationKind tells which of the two device payload shapes a location came from.
type LocationKind int

const (
	NoLocation LocationKind = iota
	// GPSLocation is the {"gps":{"lat","lng"}} shape.
	GPSLocation
	// GeoLocation is the {"location":{"latitude","longitude"}} shape.
	GeoLocation
)

// Coordinate is a normalized latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location holds a reading's position together with the shape it arrived in.
type Location struct {
	Kind  LocationKind
	Point Coordinate
}

// GPS builds a location in the gps shape.
func GPS(lat, lng float64) Location {
	return Location{Kind: GPSLocation, Point: Coordinate{Lat: lat, Lng: lng}}
}

// Geo builds a location in the latitude/longitude shape.
func Geo(lat, lng float64) Location {
	return Location{Kind: GeoLocation, Point: Coordinate{Lat: lat, Lng: lng}}
}

// SensorReading is one timestamped set of optional measurements from a sensor.
// Only ID, CreatedAt and UpdatedAt are guaranteed to be set.
type SensorReading struct {
	ID           string
	Temperature  *float64
	Humidity     *float64
	SoilMoisture *float64
	Vibration    *bool
	Location     Location
	Timestamp    string
	CreatedAt    string
	UpdatedAt    string
}

// ObservedAt is the timestamp shown to users: Timestamp when present, CreatedAt otherwise.
func (r SensorReading) ObservedAt() string {
	if r.Timestamp != "" {
		return r.Timestamp
	}
	return r.CreatedAt
}

// Clone returns a copy that shares no pointers with r.
func (r SensorReading) Clone() SensorReading {
	out := r
	out.Temperature = cloneFloat(r.Temperature)
	out.Humidity = cloneFloat(r.Humidity)
	out.SoilMoisture = cloneFloat(r.SoilMoisture)
	if r.Vibration != nil {
		v := *r.Vibration
		out.Vibration = &v
	}
	return out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Float and Bool are small helpers for building readings with optional fields.
func Float(v float64) *float64 { return &v }

func Bool(v bool) *bool { return &v }

type gpsJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geoJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type readingJSON struct {
	ID           string   `json:"_id"`
	Temperature  *float64 `json:"temperature,omitempty"`
	Humidity     *float64 `json:"humidity,omitempty"`
	SoilMoisture *float64 `json:"soilMoisture,omitempty"`
	Vibration    *bool    `json:"vibration,omitempty"`
	GPS          *gpsJSON `json:"gps,omitempty"`
	Location     *geoJSON `json:"location,omitempty"`
	Timestamp    string   `json:"timestamp,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// MarshalJSON writes the location back in the shape it was read from.
func (r SensorReading) MarshalJSON() ([]byte, error) {
	out := readingJSON{
		ID:           r.ID,
		Temperature:  r.Temperature,
		Humidity:     r.Humidity,
		SoilMoisture: r.SoilMoisture,
		Vibration:    r.Vibration,
		Timestamp:    r.Timestamp,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	switch r.Location.Kind {
	case GPSLocation:
		out.GPS = &gpsJSON{Lat: r.Location.Point.Lat, Lng: r.Location.Point.Lng}
	case GeoLocation:
		out.Location = &geoJSON{Latitude: r.Location.Point.Lat, Longitude: r.Location.Point.Lng}
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts either location shape. A payload carrying both is rejected.
func (r *SensorReading) UnmarshalJSON(b []byte) error {
	var in readingJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if in.GPS != nil && in.Location != nil {
		return fmt.Errorf("reading %q has both gps and location", in.ID)
	}

	*r = SensorReading{
		ID:           in.ID,
		Temperature:  in.Temperature,
		Humidity:     in.Humidity,
		SoilMoisture: in.SoilMoisture,
		Vibration:    in.Vibration,
		Timestamp:    in.Timestamp,
		CreatedAt:    in.CreatedAt,
		UpdatedAt:    in.UpdatedAt,
	}
	switch {
	case in.GPS != nil:
		r.Location = GPS(in.GPS.Lat, in.GPS.Lng)
	case in.Location != nil:
		r.Location = Geo(in.Location.Latitude, in.Location.Longitude)
	}
	return nil
}
