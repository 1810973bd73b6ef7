package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleOwner = "owner"

var (
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	ErrTokenExpired      = errors.New("token expired")
	ErrInvalidToken      = errors.New("invalid token")
	ErrWrongRole         = errors.New("insufficient permissions")
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the single owner credential. There is
// no user store: the passphrase is the whole identity.
type TokenService struct {
	secret    []byte
	ownerPass string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewTokenService(secret, ownerPass string) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		ownerPass: ownerPass,
		tokenTTL:  24 * time.Hour,
		now:       time.Now,
	}
}

// Issue exchanges the owner passphrase for a signed token valid for 24h.
func (s *TokenService) Issue(passphrase string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(passphrase), []byte(s.ownerPass)) != 1 {
		return "", ErrInvalidPassphrase
	}
	now := s.now()
	claims := &Claims{
		Role: RoleOwner,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry, then the embedded role. Only the
// owner role is ever issued; the role check guards future extension.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleOwner {
		return nil, ErrWrongRole
	}
	return claims, nil
}
