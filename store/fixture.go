package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/elyashium/sylvan-web/models"
)

// Fixture is a frozen in-memory dataset. Nothing it returns aliases its
// internal state and no operation changes it.
type Fixture struct {
	readings []models.SensorReading
	plants   []models.PlantLocation
	details  map[string]models.PlantDetails
	tweets   []models.PlantTweet
}

// NewFixture returns the demo dataset.
func NewFixture() *Fixture {
	return NewFixtureFrom(demoReadings(), demoPlants(), demoPlantDetails(), demoTweets())
}

// NewFixtureFrom builds a fixture over the given records. Readings are kept
// newest first.
func NewFixtureFrom(readings []models.SensorReading, plants []models.PlantLocation, details []models.PlantDetails, tweets []models.PlantTweet) *Fixture {
	f := &Fixture{
		readings: make([]models.SensorReading, 0, len(readings)),
		plants:   append([]models.PlantLocation(nil), plants...),
		details:  make(map[string]models.PlantDetails, len(details)),
		tweets:   append([]models.PlantTweet(nil), tweets...),
	}
	for _, r := range readings {
		f.readings = append(f.readings, r.Clone())
	}
	sort.SliceStable(f.readings, func(i, j int) bool {
		return f.readings[i].ObservedAt() > f.readings[j].ObservedAt()
	})
	for _, d := range details {
		f.details[d.ID] = d.Clone()
	}
	return f
}

func (f *Fixture) Readings(ctx context.Context) ([]models.SensorReading, error) {
	out := make([]models.SensorReading, len(f.readings))
	for i, r := range f.readings {
		out[i] = r.Clone()
	}
	return out, nil
}

func (f *Fixture) Reading(ctx context.Context, id string) (models.SensorReading, error) {
	for _, r := range f.readings {
		if r.ID == id {
			return r.Clone(), nil
		}
	}
	return models.SensorReading{}, fmt.Errorf("sensor %s: %w", id, ErrNotFound)
}

func (f *Fixture) Plants(ctx context.Context) ([]models.PlantLocation, error) {
	return append([]models.PlantLocation(nil), f.plants...), nil
}

func (f *Fixture) Plant(ctx context.Context, id string) (models.PlantDetails, error) {
	d, ok := f.details[id]
	if !ok {
		return models.PlantDetails{}, fmt.Errorf("plant %s: %w", id, ErrNotFound)
	}
	return d.Clone(), nil
}

// PlantDetails lists every detail record in plant id order.
func (f *Fixture) PlantDetails(ctx context.Context) ([]models.PlantDetails, error) {
	out := make([]models.PlantDetails, 0, len(f.details))
	for _, d := range f.details {
		out = append(out, d.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *Fixture) Tweets(ctx context.Context) ([]models.PlantTweet, error) {
	return append([]models.PlantTweet(nil), f.tweets...), nil
}

// AddPlant returns p with the next free id. The fixture is left unchanged,
// so repeated calls hand out the same id.
func (f *Fixture) AddPlant(ctx context.Context, p models.PlantLocation) (models.PlantLocation, error) {
	p.ID = fmt.Sprintf("%d", len(f.plants)+1)
	return p, nil
}

// UpdatePlantStatus returns the plant with the new status without storing it.
func (f *Fixture) UpdatePlantStatus(ctx context.Context, id string, status models.PlantStatus) (models.PlantLocation, error) {
	for _, p := range f.plants {
		if p.ID == id {
			p.Status = status
			p.LastUpdated = "just now"
			return p, nil
		}
	}
	return models.PlantLocation{}, fmt.Errorf("plant %s: %w", id, ErrNotFound)
}
