package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	vo "github.com/upkeep-inc/upkeep/internal/domain/user/valueobjects"
	"github.com/upkeep-inc/upkeep/internal/shared/biztime"
)

type Claims struct {
	Username string  `json:"username"`
	Role     vo.Role `json:"role"`
	jwt.RegisteredClaims
}

type Token struct {
	AccessToken string
	ExpiresIn   int64
	ExpiresAt   time.Time
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
}

func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
	}
}

func (s *JWTService) Generate(username string, role vo.Role) (*Token, error) {
	now := biztime.NowUTC()
	exp := now.Add(time.Duration(s.accessExpMinutes) * time.Minute)

	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &Token{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessExpMinutes * 60),
		ExpiresAt:   exp,
	}, nil
}

// Issue generates a token and returns only what the login response carries.
func (s *JWTService) Issue(username string, role vo.Role) (string, int64, error) {
	token, err := s.Generate(username, role)
	if err != nil {
		return "", 0, err
	}
	return token.AccessToken, token.ExpiresIn, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// ShouldRefresh reports whether the token expires within five minutes.
func (s *JWTService) ShouldRefresh(claims *Claims) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return false
	}
	return biztime.NowUTC().Add(5 * time.Minute).After(claims.ExpiresAt.Time)
}

// Refresh issues a new token for the same identity.
func (s *JWTService) Refresh(claims *Claims) (*Token, error) {
	return s.Generate(claims.Username, claims.Role)
}
