package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrotomenko-dotcom/madagaskar/internal/model"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/store"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionService authenticates the single shop operator. Login issues a
// signed token with expiry and persists it; a token that no longer matches
// the persisted session is rejected, so logout revokes outstanding tokens.
type SessionService struct {
	store  *store.Store
	secret []byte
	expiry time.Duration
}

func NewSessionService(st *store.Store, secret string, expiry time.Duration) *SessionService {
	return &SessionService{store: st, secret: []byte(secret), expiry: expiry}
}

// Credentials returns the operator account, seeding the default one on
// first access.
func (s *SessionService) Credentials(ctx context.Context) model.AdminUser {
	return s.store.Admin(ctx)
}

func (s *SessionService) Login(ctx context.Context, username, password string) (string, error) {
	admin := s.store.Admin(ctx)
	if username != admin.Username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.expiry)
	claims := jwt.MapClaims{
		"sub": admin.ID.String(),
		"jti": uuid.NewString(), // iat alone has second resolution
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	if err := s.store.SaveSession(ctx, model.Session{Token: token, ExpiresAt: expiresAt}); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	return token, nil
}

func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.SaveSession(ctx, model.Session{}); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether token is the currently issued, unexpired
// session token.
func (s *SessionService) IsAuthenticated(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return false
	}
	session := s.store.Session(ctx)
	return session.Active(time.Now()) && session.Token == token
}

// ChangePassword re-hashes the operator password after verifying the
// current one.
func (s *SessionService) ChangePassword(ctx context.Context, current, updated string) error {
	admin := s.store.Admin(ctx)
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	admin.PasswordHash = string(hash)
	if err := s.store.SaveAdmin(ctx, admin); err != nil {
		return fmt.Errorf("save admin: %w", err)
	}
	return nil
}
