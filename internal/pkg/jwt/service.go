package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type UserClaim struct {
	ID string `json:"id"`
}

// Claims carries the user identity as {"user": {"id": ...}}.
type Claims struct {
	User UserClaim `json:"user"`

	jwtlib.RegisteredClaims
}

type Service interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(tokenString string) (uuid.UUID, error)
}

type HMACService struct {
	secret    []byte
	expiresIn time.Duration

	now func() time.Time
}

func NewHMACService(secret string, expiresIn time.Duration) *HMACService {
	return &HMACService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

func (s *HMACService) Issue(userID uuid.UUID) (string, error) {
	if len(s.secret) == 0 || s.expiresIn <= 0 || userID == uuid.Nil {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		User: UserClaim{ID: userID.String()},
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
			Subject:   userID.String(),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) Verify(tokenString string) (uuid.UUID, error) {
	if tokenString == "" || len(s.secret) == 0 {
		return uuid.Nil, ErrTokenInvalid
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return uuid.Nil, ErrTokenInvalid
	}

	id, err := uuid.Parse(c.User.ID)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return id, nil
}

var _ Service = (*HMACService)(nil)
