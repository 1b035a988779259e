package store

import (
	"context"
	"errors"
	"testing"

	"github.com/elyashium/sylvan-web/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormProvider(t *testing.T) *GormProvider {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	g := NewGormProvider(db, NewFixture())
	if err := g.Migrate(); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGormSeedOnlyEmptyTables(t *testing.T) {
	g := newGormProvider(t)
	ctx := context.Background()

	seeded, err := g.Seed(ctx)
	if err != nil || !seeded {
		t.Fatalf("first Seed = %v, %v", seeded, err)
	}
	seeded, err = g.Seed(ctx)
	if err != nil || seeded {
		t.Fatalf("second Seed = %v, %v", seeded, err)
	}

	plants, err := g.Plants(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(plants) != 6 {
		t.Errorf("got %d plants, want 6", len(plants))
	}
}

func TestGormSeedFillsMissingTable(t *testing.T) {
	g := newGormProvider(t)
	ctx := context.Background()

	if err := g.db.Create(&models.PlantLocation{ID: "1", Name: "Existing", Status: models.PlantHealthy}).Error; err != nil {
		t.Fatal(err)
	}
	seeded, err := g.Seed(ctx)
	if err != nil || !seeded {
		t.Fatalf("Seed = %v, %v", seeded, err)
	}

	readings, err := g.Readings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(readings) != 6 {
		t.Errorf("got %d readings, want 6", len(readings))
	}
	plants, err := g.Plants(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(plants) != 1 || plants[0].Name != "Existing" {
		t.Errorf("plant table was reseeded: %+v", plants)
	}
}

func TestGormReadingsMatchFixture(t *testing.T) {
	g := newGormProvider(t)
	ctx := context.Background()
	if _, err := g.Seed(ctx); err != nil {
		t.Fatal(err)
	}

	want, _ := NewFixture().Readings(ctx)
	got, err := g.Readings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d readings, want %d", len(got), len(want))
	}
	kinds := map[models.LocationKind]int{}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Location != want[i].Location {
			t.Errorf("reading %d = %s %+v, want %s %+v", i, got[i].ID, got[i].Location, want[i].ID, want[i].Location)
		}
		if (got[i].Temperature == nil) != (want[i].Temperature == nil) || (got[i].Vibration == nil) != (want[i].Vibration == nil) {
			t.Errorf("reading %s: measured fields changed", got[i].ID)
		}
		kinds[got[i].Location.Kind]++
	}
	if kinds[models.GPSLocation] == 0 || kinds[models.GeoLocation] == 0 {
		t.Errorf("location kinds %v, want both shapes", kinds)
	}

	r, err := g.Reading(ctx, "682c19fd2249cda57539e564")
	if err != nil {
		t.Fatal(err)
	}
	if r.Location.Kind != models.GeoLocation {
		t.Errorf("location kind = %v, want GeoLocation", r.Location.Kind)
	}
	if _, err := g.Reading(ctx, "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Reading(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestGormPlantWrites(t *testing.T) {
	g := newGormProvider(t)
	ctx := context.Background()
	if _, err := g.Seed(ctx); err != nil {
		t.Fatal(err)
	}

	p, err := g.AddPlant(ctx, models.PlantLocation{Name: "Mint", Status: models.PlantHealthy})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "7" {
		t.Errorf("new plant id = %q, want 7", p.ID)
	}

	// removing a row makes the count point at an id that is still taken
	if err := g.db.Delete(&models.PlantLocation{}, "id = ?", "3").Error; err != nil {
		t.Fatal(err)
	}
	p, err = g.AddPlant(ctx, models.PlantLocation{Name: "Thyme", Status: models.PlantHealthy})
	if err != nil {
		t.Fatalf("AddPlant after a taken id: %v", err)
	}
	if p.ID != "8" {
		t.Errorf("new plant id = %q, want 8", p.ID)
	}

	updated, err := g.UpdatePlantStatus(ctx, "2", models.PlantCritical)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.PlantCritical || updated.LastUpdated != "just now" {
		t.Errorf("updated plant %+v", updated)
	}
	if _, err := g.UpdatePlantStatus(ctx, "99", models.PlantHealthy); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdatePlantStatus(unknown) error = %v, want ErrNotFound", err)
	}
}
