package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/elyashium/sylvan-web/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormUsers(t *testing.T) *GormUsers {
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
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatal(err)
	}
	return NewGormUsers(db)
}

func TestUserRepositories(t *testing.T) {
	repos := map[string]func(*testing.T) UserRepository{
		"memory": func(*testing.T) UserRepository { return NewMemoryUsers() },
		"gorm":   func(t *testing.T) UserRepository { return newGormUsers(t) },
	}
	for name, newRepo := range repos {
		t.Run(name, func(t *testing.T) {
			users := newRepo(t)
			ctx := context.Background()

			u := &models.User{Email: "Grower@Example.com", Password: "hash", Provider: "password"}
			if err := users.Create(ctx, u); err != nil {
				t.Fatal(err)
			}
			if u.ID == 0 {
				t.Fatal("Create did not assign an id")
			}

			dup := &models.User{Email: "grower@example.com", Password: "other", Provider: "password"}
			if err := users.Create(ctx, dup); !errors.Is(err, ErrEmailTaken) {
				t.Errorf("duplicate email error = %v, want ErrEmailTaken", err)
			}

			got, err := users.ByEmail(ctx, "GROWER@example.com")
			if err != nil || got.ID != u.ID {
				t.Errorf("ByEmail = %+v, %v", got, err)
			}
			if _, err := users.ByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
				t.Errorf("ByEmail(unknown) error = %v, want ErrUserNotFound", err)
			}
			if _, err := users.ByID(ctx, u.ID+100); !errors.Is(err, ErrUserNotFound) {
				t.Errorf("ByID(unknown) error = %v, want ErrUserNotFound", err)
			}

			if err := users.UpdatePassword(ctx, u.ID, "new-hash"); err != nil {
				t.Fatal(err)
			}
			if err := users.UpdateUserType(ctx, u.ID, models.UserTypeCommercial); err != nil {
				t.Fatal(err)
			}
			got, err = users.ByID(ctx, u.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.Password != "new-hash" || got.UserType == nil || *got.UserType != models.UserTypeCommercial {
				t.Errorf("updates not stored: %+v", got)
			}
			if err := users.UpdateUserType(ctx, u.ID+100, models.UserTypeHousehold); !errors.Is(err, ErrUserNotFound) {
				t.Errorf("UpdateUserType(unknown) error = %v, want ErrUserNotFound", err)
			}
		})
	}
}

func TestServiceOnGormUsers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewService(newGormUsers(t), Config{Secret: []byte("test-secret"), SessionTTL: time.Hour}, logger)
	ctx := context.Background()

	if _, err := s.SignUp(ctx, "a@example.com", "secret1", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SignUp(ctx, "A@example.com", "secret2", ""); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second signup error = %v, want ErrEmailTaken", err)
	}
	session, err := s.SignIn(ctx, "a@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Verify(ctx, session.Token); err != nil {
		t.Errorf("Verify: %v", err)
	}
}
