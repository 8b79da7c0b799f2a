// Package services – AuthService
//
// This file implements AuthService, which owns account registration and
// login. It validates registration fields, hashes passwords with bcrypt, and
// exchanges valid credentials for a signed session token that the HTTP layer
// carries in a cookie.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/voxlate/go-translate-backend/internal/auth"
	"github.com/voxlate/go-translate-backend/internal/domain"
	"github.com/voxlate/go-translate-backend/internal/repo"
)

const minPasswordLen = 6

// AuthService provides registration, login, and session token verification.
type AuthService struct {
	DB         *gorm.DB
	Secret     []byte
	SessionTTL time.Duration

	// BcryptCost allows tests to lower the hashing cost; zero means
	// bcrypt.DefaultCost.
	BcryptCost int
}

// NewAuthService constructs an AuthService with the given signing secret.
func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: []byte(secret), SessionTTL: ttl}
}

// RegisterParams carries the registration form fields.
type RegisterParams struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register validates the form, hashes the password, and creates the account.
// Returns ErrValidation, ErrPasswordMismatch, or ErrEmailTaken for the
// predictable failure cases.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*domain.User, error) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = normalizeEmail(p.Email)

	if p.FirstName == "" || p.LastName == "" || p.Email == "" || p.Password == "" {
		return nil, ErrValidation
	}
	if len(p.Password) < minPasswordLen {
		return nil, ErrValidation
	}
	if p.Password != p.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.cost())
	if err != nil {
		return nil, err
	}

	u, err := repo.CreateUser(ctx, s.DB, p.FirstName, p.LastName, p.Email, string(hash))
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	return u, err
}

// Login checks credentials and returns a signed session token for the user.
// Unknown email and wrong password both map to ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if errors.Is(err, repo.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(u.ID, s.Secret, s.SessionTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Verify resolves a session token to a user id, or auth.ErrInvalidToken.
func (s *AuthService) Verify(token string) (string, error) {
	return auth.UserIDFromToken(token, s.Secret)
}

func (s *AuthService) cost() int {
	if s.BcryptCost > 0 {
		return s.BcryptCost
	}
	return bcrypt.DefaultCost
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
