package auth

import (
	"context"
	"errors"

	"github.com/elyashium/sylvan-web/models"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email already in use")
	ErrWeakPassword        = errors.New("password must be at least 6 characters")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrUnsupportedProvider = errors.New("unsupported sign-in provider")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrResetExpired        = errors.New("password reset link is invalid or has expired")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidUserType     = errors.New("user type must be household or commercial")
)

// IdentityProvider is everything the HTTP layer needs for accounts and sessions.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password, displayName string) (models.Session, error)
	SignIn(ctx context.Context, email, password string) (models.Session, error)
	SignInFederated(ctx context.Context, provider, credential string) (models.Session, error)
	SignOut(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, email string) error
	ConfirmReset(ctx context.Context, resetToken, newPassword string) error
	Verify(ctx context.Context, token string) (models.Session, error)
}

// Preferences stores the per-user account category.
type Preferences interface {
	UserType(ctx context.Context, userID uint) (*models.UserType, error)
	SetUserType(ctx context.Context, userID uint, t models.UserType) (models.User, error)
}

// Identity is what a federated provider vouches for.
type Identity struct {
	Email       string
	DisplayName string
}

// FederatedVerifier checks a credential issued by an external provider.
type FederatedVerifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

// UserRepository persists accounts. Lookups return ErrUserNotFound and
// Create returns ErrEmailTaken on a duplicate address.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	ByEmail(ctx context.Context, email string) (models.User, error)
	ByID(ctx context.Context, id uint) (models.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	UpdateUserType(ctx context.Context, id uint, t models.UserType) error
}
