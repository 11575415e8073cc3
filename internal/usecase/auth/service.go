package auth

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"devconnector/internal/domain/user"
	"devconnector/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	jwt   jwt.Service
}

func NewService(users user.Repository, jwtSvc jwt.Service) *Service {
	return &Service{users: users, jwt: jwtSvc}
}

// Register creates an account and returns a token for it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := normalizeEmail(in.Email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if exists {
		return "", ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}

	u := user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       gravatarURL(email),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return "", ErrEmailAlreadyRegistered
		}
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return s.issue(u.ID)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issue(u.ID)
}

// Me returns the account of userID without its password hash.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	return sanitizeUser(u), nil
}

func (s *Service) issue(userID uuid.UUID) (string, error) {
	token, err := s.jwt.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// gravatarURL is the protocol-relative avatar address for email, falling
// back to the mystery-person image.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(email))
	return "//www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
