package models

import "time"

// UserType is the account category a user picks once signed in.
type UserType string

const (
	UserTypeHousehold  UserType = "household"
	UserTypeCommercial UserType = "commercial"
)

// Valid reports whether t is a selectable account category.
func (t UserType) Valid() bool {
	return t == UserTypeHousehold || t == UserTypeCommercial
}

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"unique;not null"`
	DisplayName string    `json:"displayName"`
	Password    string    `json:"-"` // bcrypt hash, empty for federated accounts
	Provider    string    `json:"provider" gorm:"default:password"`
	UserType    *UserType `json:"userType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Session is the authenticated state handed to handlers. Only its presence
// matters to the dashboard views.
type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}
