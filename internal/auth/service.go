package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ManishKhulbe/tacticaledge-assignment/internal/models"
	"github.com/ManishKhulbe/tacticaledge-assignment/internal/shared"
)

// UserRepository is the slice of the store the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type Service struct {
	users  UserRepository
	secret []byte
	ttl    time.Duration
}

func NewService(users UserRepository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		users:  users,
		secret: []byte(jwtSecret),
		ttl:    tokenTTL,
	}
}

// Register creates a user and returns it with a signed token.
// Duplicate emails fail with shared.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", shared.ErrEmailTaken
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		// the unique index may still trip under a concurrent register
		return nil, "", err
	}

	tok, err := signToken(u.ID, s.secret, s.ttl)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password both produce the same generic
// shared.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, "", shared.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", shared.ErrInvalidCredentials
	}

	tok, err := signToken(u.ID, s.secret, s.ttl)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// UserFromToken validates a bearer token and resolves its subject.
// A valid token whose user no longer exists is still unauthorized.
func (s *Service) UserFromToken(ctx context.Context, tokenStr string) (*models.User, error) {
	claims, err := parseToken(tokenStr, s.secret)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	return u, nil
}
