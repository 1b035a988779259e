package store

import (
	"context"
	"time"

	"github.com/elyashium/sylvan-web/models"
)

// DefaultLatency is the simulated round-trip of the demo backend.
const DefaultLatency = 500 * time.Millisecond

// Delayed waits a fixed latency before every call to the wrapped provider.
// There is no jitter and no retry; a cancelled context ends the wait early.
type Delayed struct {
	next    Provider
	latency time.Duration
}

func NewDelayed(next Provider, latency time.Duration) *Delayed {
	return &Delayed{next: next, latency: latency}
}

func (d *Delayed) wait(ctx context.Context) error {
	if d.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (d *Delayed) Readings(ctx context.Context) ([]models.SensorReading, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	return d.next.Readings(ctx)
}

func (d *Delayed) Reading(ctx context.Context, id string) (models.SensorReading, error) {
	if err := d.wait(ctx); err != nil {
		return models.SensorReading{}, err
	}
	return d.next.Reading(ctx, id)
}

func (d *Delayed) Plants(ctx context.Context) ([]models.PlantLocation, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	return d.next.Plants(ctx)
}

func (d *Delayed) Plant(ctx context.Context, id string) (models.PlantDetails, error) {
	if err := d.wait(ctx); err != nil {
		return models.PlantDetails{}, err
	}
	return d.next.Plant(ctx, id)
}

func (d *Delayed) Tweets(ctx context.Context) ([]models.PlantTweet, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	return d.next.Tweets(ctx)
}

// PlantDetails delays once and delegates to AllPlantDetails on the wrapped provider.
func (d *Delayed) PlantDetails(ctx context.Context) ([]models.PlantDetails, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	return AllPlantDetails(ctx, d.next)
}

func (d *Delayed) AddPlant(ctx context.Context, p models.PlantLocation) (models.PlantLocation, error) {
	e, ok := d.next.(PlantEditor)
	if !ok {
		return models.PlantLocation{}, ErrReadOnly
	}
	if err := d.wait(ctx); err != nil {
		return models.PlantLocation{}, err
	}
	return e.AddPlant(ctx, p)
}

func (d *Delayed) UpdatePlantStatus(ctx context.Context, id string, status models.PlantStatus) (models.PlantLocation, error) {
	e, ok := d.next.(PlantEditor)
	if !ok {
		return models.PlantLocation{}, ErrReadOnly
	}
	if err := d.wait(ctx); err != nil {
		return models.PlantLocation{}, err
	}
	return e.UpdatePlantStatus(ctx, id, status)
}
