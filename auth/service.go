package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/elyashium/sylvan-web/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	resetTTL          = time.Hour
	passwordProvider  = "password"
)

// Config controls token signing.
type Config struct {
	Secret     []byte
	SessionTTL time.Duration
}

// ResetNotifier delivers a password reset token to the account owner.
type ResetNotifier func(ctx context.Context, email, token string)

type resetGrant struct {
	userID  uint
	expires time.Time
}

// Service implements IdentityProvider and Preferences on top of a
// UserRepository with bcrypt hashes and HS256 session tokens.
type Service struct {
	users     UserRepository
	cfg       Config
	logger    *slog.Logger
	now       func() time.Time
	notify    ResetNotifier
	verifiers map[string]FederatedVerifier

	mu      sync.Mutex
	revoked map[string]time.Time // token id -> token expiry
	resets  map[string]resetGrant
}

func NewService(users UserRepository, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	s := &Service{
		users:     users,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		verifiers: make(map[string]FederatedVerifier),
		revoked:   make(map[string]time.Time),
		resets:    make(map[string]resetGrant),
	}
	// nothing sends mail yet; the token only shows up in debug logs
	s.notify = func(ctx context.Context, email, token string) {
		logger.DebugContext(ctx, "password reset requested", "email", email, "token", token)
	}
	return s
}

// RegisterVerifier enables federated sign-in for provider.
func (s *Service) RegisterVerifier(provider string, v FederatedVerifier) {
	s.verifiers[strings.ToLower(provider)] = v
}

// OnReset replaces how reset tokens are delivered.
func (s *Service) OnReset(fn ResetNotifier) {
	s.notify = fn
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *Service) SignUp(ctx context.Context, email, password, displayName string) (models.Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return models.Session{}, err
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return models.Session{}, err
	}

	user := models.User{
		Email:       email,
		DisplayName: strings.TrimSpace(displayName),
		Password:    hashed,
		Provider:    passwordProvider,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.Session{}, err
	}
	s.logger.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return s.issue(user)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	user, err := s.users.ByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, ErrUserNotFound) {
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, err
	}
	// federated accounts have no password to compare against
	if user.Password == "" {
		return models.Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.Session{}, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *Service) SignInFederated(ctx context.Context, provider, credential string) (models.Session, error) {
	provider = strings.ToLower(provider)
	v, ok := s.verifiers[provider]
	if !ok {
		return models.Session{}, fmt.Errorf("%s: %w", provider, ErrUnsupportedProvider)
	}
	id, err := v.Verify(ctx, credential)
	if err != nil {
		return models.Session{}, fmt.Errorf("%s credential: %w", provider, err)
	}
	email, err := normalizeEmail(id.Email)
	if err != nil {
		return models.Session{}, err
	}

	user, err := s.users.ByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		user = models.User{Email: email, DisplayName: id.DisplayName, Provider: provider}
		if err := s.users.Create(ctx, &user); err != nil {
			return models.Session{}, err
		}
		s.logger.InfoContext(ctx, "federated user created", "user_id", user.ID, "provider", provider)
	} else if err != nil {
		return models.Session{}, err
	}
	return s.issue(user)
}

func (s *Service) issue(user models.User) (models.Session, error) {
	now := s.now()
	expires := now.Add(s.cfg.SessionTTL)
	tokenID := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"jti":     tokenID,
		"iat":     now.Unix(),
		"exp":     expires.Unix(),
	})
	signed, err := token.SignedString(s.cfg.Secret)
	if err != nil {
		return models.Session{}, fmt.Errorf("sign token: %w", err)
	}
	return models.Session{User: user, Token: signed, TokenID: tokenID, ExpiresAt: expires}, nil
}

type tokenClaims struct {
	userID  uint
	tokenID string
	expires time.Time
}

func (s *Service) parse(tokenString string) (tokenClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	})
	if err != nil {
		return tokenClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	// expiry is checked against s.now so tests can move the clock
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return tokenClaims{}, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID <= 0 {
		return tokenClaims{}, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}
	jti, _ := claims["jti"].(string)
	exp, _ := claims["exp"].(float64)
	return tokenClaims{userID: uint(rawID), tokenID: jti, expires: time.Unix(int64(exp), 0)}, nil
}

// Verify returns the session a token belongs to. The user is reloaded so
// the session reflects the current account category.
func (s *Service) Verify(ctx context.Context, tokenString string) (models.Session, error) {
	c, err := s.parse(tokenString)
	if err != nil {
		return models.Session{}, err
	}
	if s.isRevoked(c.tokenID) {
		return models.Session{}, fmt.Errorf("%w: signed out", ErrInvalidToken)
	}
	user, err := s.users.ByID(ctx, c.userID)
	if errors.Is(err, ErrUserNotFound) {
		return models.Session{}, fmt.Errorf("%w: unknown user", ErrInvalidToken)
	}
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{User: user, Token: tokenString, TokenID: c.tokenID, ExpiresAt: c.expires}, nil
}

// SignOut revokes the token until it would have expired anyway.
func (s *Service) SignOut(ctx context.Context, tokenString string) error {
	c, err := s.parse(tokenString)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
	s.revoked[c.tokenID] = c.expires
	s.logger.InfoContext(ctx, "user signed out", "user_id", c.userID)
	return nil
}

func (s *Service) isRevoked(tokenID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok
}

// ResetPassword issues a one hour reset token. Unknown addresses succeed
// silently so the endpoint cannot be used to probe for accounts.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.users.ByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		s.logger.DebugContext(ctx, "password reset for unknown email", "email", email)
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	now := s.now()
	s.mu.Lock()
	for t, g := range s.resets {
		if now.After(g.expires) {
			delete(s.resets, t)
		}
	}
	s.resets[token] = resetGrant{userID: user.ID, expires: now.Add(resetTTL)}
	s.mu.Unlock()

	s.notify(ctx, user.Email, token)
	return nil
}

// ConfirmReset sets a new password. Each reset token works once.
func (s *Service) ConfirmReset(ctx context.Context, resetToken, newPassword string) error {
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	s.mu.Lock()
	grant, ok := s.resets[resetToken]
	if ok {
		delete(s.resets, resetToken)
	}
	s.mu.Unlock()

	if !ok || s.now().After(grant.expires) {
		return ErrResetExpired
	}
	if err := s.users.UpdatePassword(ctx, grant.userID, hashed); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "password reset", "user_id", grant.userID)
	return nil
}

func (s *Service) UserType(ctx context.Context, userID uint) (*models.UserType, error) {
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.UserType, nil
}

func (s *Service) SetUserType(ctx context.Context, userID uint, t models.UserType) (models.User, error) {
	if !t.Valid() {
		return models.User{}, fmt.Errorf("user type %q: %w", t, ErrInvalidUserType)
	}
	if err := s.users.UpdateUserType(ctx, userID, t); err != nil {
		return models.User{}, err
	}
	return s.users.ByID(ctx, userID)
}
