package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/elyashium/sylvan-web/models"

	"gorm.io/gorm"
)

// readingRow is the sensor_readings table. The two payload location shapes
// share lat/lng columns and are told apart by location_kind.
type readingRow struct {
	ID           string `gorm:"primaryKey"`
	Temperature  *float64
	Humidity     *float64
	SoilMoisture *float64
	Vibration    *bool
	LocationKind int
	Lat          float64
	Lng          float64
	Timestamp    string
	Created      string `gorm:"column:created_at;not null"`
	Updated      string `gorm:"column:updated_at;not null"`
}

func (readingRow) TableName() string { return "sensor_readings" }

func toRow(r models.SensorReading) readingRow {
	return readingRow{
		ID:           r.ID,
		Temperature:  r.Temperature,
		Humidity:     r.Humidity,
		SoilMoisture: r.SoilMoisture,
		Vibration:    r.Vibration,
		LocationKind: int(r.Location.Kind),
		Lat:          r.Location.Point.Lat,
		Lng:          r.Location.Point.Lng,
		Timestamp:    r.Timestamp,
		Created:      r.CreatedAt,
		Updated:      r.UpdatedAt,
	}
}

func (row readingRow) reading() models.SensorReading {
	r := models.SensorReading{
		ID:           row.ID,
		Temperature:  row.Temperature,
		Humidity:     row.Humidity,
		SoilMoisture: row.SoilMoisture,
		Vibration:    row.Vibration,
		Timestamp:    row.Timestamp,
		CreatedAt:    row.Created,
		UpdatedAt:    row.Updated,
	}
	switch models.LocationKind(row.LocationKind) {
	case models.GPSLocation:
		r.Location = models.GPS(row.Lat, row.Lng)
	case models.GeoLocation:
		r.Location = models.Geo(row.Lat, row.Lng)
	}
	return r
}

// GormProvider serves readings and plant locations from a SQL database.
// Plant details and tweets come from the fixture the tables were seeded from.
type GormProvider struct {
	db   *gorm.DB
	seed *Fixture
}

func NewGormProvider(db *gorm.DB, seed *Fixture) *GormProvider {
	return &GormProvider{db: db, seed: seed}
}

// Migrate creates the provider's tables.
func (g *GormProvider) Migrate() error {
	if err := g.db.AutoMigrate(&readingRow{}, &models.PlantLocation{}); err != nil {
		return fmt.Errorf("migrate provider tables: %w", err)
	}
	return nil
}

// Seed copies the fixture into empty tables. Each table is seeded on its own;
// tables that already hold rows are left alone. It reports whether anything
// was written.
func (g *GormProvider) Seed(ctx context.Context) (bool, error) {
	readings, err := g.seed.Readings(ctx)
	if err != nil {
		return false, fmt.Errorf("load seed readings: %w", err)
	}
	plants, err := g.seed.Plants(ctx)
	if err != nil {
		return false, fmt.Errorf("load seed plants: %w", err)
	}
	rows := make([]readingRow, 0, len(readings))
	for _, r := range readings {
		rows = append(rows, toRow(r))
	}

	seededReadings, err := seedTable(ctx, g.db, &readingRow{}, &rows)
	if err != nil {
		return false, fmt.Errorf("seed readings: %w", err)
	}
	seededPlants, err := seedTable(ctx, g.db, &models.PlantLocation{}, &plants)
	if err != nil {
		return false, fmt.Errorf("seed plants: %w", err)
	}
	return seededReadings || seededPlants, nil
}

// seedTable inserts rows into model's table when it is empty.
func seedTable(ctx context.Context, db *gorm.DB, model, rows interface{}) (bool, error) {
	seeded := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(model).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		seeded = true
		return tx.Create(rows).Error
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}

func (g *GormProvider) Readings(ctx context.Context) ([]models.SensorReading, error) {
	var rows []readingRow
	if err := g.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	out := make([]models.SensorReading, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.reading())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ObservedAt() > out[j].ObservedAt() })
	return out, nil
}

func (g *GormProvider) Reading(ctx context.Context, id string) (models.SensorReading, error) {
	var row readingRow
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SensorReading{}, fmt.Errorf("sensor %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.SensorReading{}, fmt.Errorf("query reading %s: %w", id, err)
	}
	return row.reading(), nil
}

func (g *GormProvider) Plants(ctx context.Context) ([]models.PlantLocation, error) {
	var plants []models.PlantLocation
	if err := g.db.WithContext(ctx).Order("id").Find(&plants).Error; err != nil {
		return nil, fmt.Errorf("query plants: %w", err)
	}
	return plants, nil
}

func (g *GormProvider) Plant(ctx context.Context, id string) (models.PlantDetails, error) {
	return g.seed.Plant(ctx, id)
}

func (g *GormProvider) PlantDetails(ctx context.Context) ([]models.PlantDetails, error) {
	return g.seed.PlantDetails(ctx)
}

func (g *GormProvider) Tweets(ctx context.Context) ([]models.PlantTweet, error) {
	return g.seed.Tweets(ctx)
}

// addPlantAttempts bounds the retries when a concurrent add takes the same id.
const addPlantAttempts = 5

// AddPlant stores p under the next numeric id.
func (g *GormProvider) AddPlant(ctx context.Context, p models.PlantLocation) (models.PlantLocation, error) {
	var err error
	for attempt := 0; attempt < addPlantAttempts; attempt++ {
		err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.PlantLocation{}).Count(&count).Error; err != nil {
				return err
			}
			p.ID = fmt.Sprintf("%d", count+1+int64(attempt))
			return tx.Create(&p).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return models.PlantLocation{}, fmt.Errorf("add plant: %w", err)
	}
	return p, nil
}

func (g *GormProvider) UpdatePlantStatus(ctx context.Context, id string, status models.PlantStatus) (models.PlantLocation, error) {
	var p models.PlantLocation
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		p.Status = status
		p.LastUpdated = "just now"
		return tx.Save(&p).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PlantLocation{}, fmt.Errorf("plant %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.PlantLocation{}, fmt.Errorf("update plant %s: %w", id, err)
	}
	return p, nil
}
