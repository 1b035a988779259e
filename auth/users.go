package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/elyashium/sylvan-web/models"

	"gorm.io/gorm"
)

// MemoryUsers keeps accounts in process memory. Used with the fixture data
// source and in tests.
type MemoryUsers struct {
	mu     sync.RWMutex
	nextID uint
	byID   map[uint]models.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{byID: make(map[uint]models.User)}
}

func (m *MemoryUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("create %s: %w", u.Email, ErrEmailTaken)
		}
	}
	m.nextID++
	u.ID = m.nextID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	m.byID[u.ID] = *u
	return nil
}

func (m *MemoryUsers) ByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %s: %w", email, ErrUserNotFound)
}

func (m *MemoryUsers) ByID(_ context.Context, id uint) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	return u, nil
}

func (m *MemoryUsers) UpdatePassword(_ context.Context, id uint, hash string) error {
	return m.update(id, func(u *models.User) { u.Password = hash })
}

func (m *MemoryUsers) UpdateUserType(_ context.Context, id uint, t models.UserType) error {
	return m.update(id, func(u *models.User) { u.UserType = &t })
}

func (m *MemoryUsers) update(id uint, fn func(*models.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	fn(&u)
	m.byID[id] = u
	return nil
}

// GormUsers stores accounts in the users table.
type GormUsers struct {
	db *gorm.DB
}

func NewGormUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{db: db}
}

func (g *GormUsers) Create(ctx context.Context, u *models.User) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", u.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		return tx.Create(u).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", u.Email, err)
	}
	return nil
}

func (g *GormUsers) ByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := g.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	return u, notFound(err, "user "+email)
}

func (g *GormUsers) ByID(ctx context.Context, id uint) (models.User, error) {
	var u models.User
	err := g.db.WithContext(ctx).First(&u, id).Error
	return u, notFound(err, fmt.Sprintf("user %d", id))
}

func (g *GormUsers) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return g.updateColumn(ctx, id, "password", hash)
}

func (g *GormUsers) UpdateUserType(ctx context.Context, id uint, t models.UserType) error {
	return g.updateColumn(ctx, id, "user_type", t)
}

func (g *GormUsers) updateColumn(ctx context.Context, id uint, column string, value interface{}) error {
	res := g.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update %s for user %d: %w", column, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	return nil
}

func notFound(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, ErrUserNotFound)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
