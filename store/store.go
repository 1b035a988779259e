// Package store holds the data providers behind the dashboard views.
package store

import (
	"context"
	"errors"

	"github.com/elyashium/sylvan-web/models"
)

// ErrNotFound is returned by lookups for an identifier that is not present.
var ErrNotFound = errors.New("record not found")

// ErrReadOnly is returned for writes against a provider that does not accept them.
var ErrReadOnly = errors.New("provider is read-only")

// Provider is the read side the dashboard depends on. Implementations
// return copies; callers may modify results freely.
type Provider interface {
	// Readings returns every sensor reading, newest first.
	Readings(ctx context.Context) ([]models.SensorReading, error)
	// Reading returns the reading with id or ErrNotFound.
	Reading(ctx context.Context, id string) (models.SensorReading, error)
	Plants(ctx context.Context) ([]models.PlantLocation, error)
	// Plant returns the details of plant id or ErrNotFound.
	Plant(ctx context.Context, id string) (models.PlantDetails, error)
	Tweets(ctx context.Context) ([]models.PlantTweet, error)
}

// PlantDetailLister is implemented by providers that can list every plant
// detail record at once (analytics needs them all).
type PlantDetailLister interface {
	PlantDetails(ctx context.Context) ([]models.PlantDetails, error)
}

// AllPlantDetails lists details through PlantDetailLister when available and
// falls back to one lookup per plant location otherwise, skipping plants
// that have no detail record.
func AllPlantDetails(ctx context.Context, p Provider) ([]models.PlantDetails, error) {
	if l, ok := p.(PlantDetailLister); ok {
		return l.PlantDetails(ctx)
	}
	plants, err := p.Plants(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PlantDetails, 0, len(plants))
	for _, pl := range plants {
		d, err := p.Plant(ctx, pl.ID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// PlantEditor is implemented by providers that accept plant writes.
type PlantEditor interface {
	AddPlant(ctx context.Context, p models.PlantLocation) (models.PlantLocation, error)
	// UpdatePlantStatus returns ErrNotFound for an unknown id.
	UpdatePlantStatus(ctx context.Context, id string, status models.PlantStatus) (models.PlantLocation, error)
}
