package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
)

// TokenIssuer implements ports.TokenIssuer with HS256. Access and refresh
// tokens are signed with distinct secrets so a refresh token can never pass
// access verification and vice versa.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  string
	refreshExpiry string
}

type accessClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`
}

type refreshClaims struct {
	jwt.RegisteredClaims
	Type string `json:"type"`
}

func NewTokenIssuer(accessSecret, refreshSecret, accessExpiry, refreshExpiry string) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (t *TokenIssuer) IssueAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ExpiresInSeconds(t.accessExpiry)) * time.Second)),
		},
		Email:    user.Email,
		Role:     string(user.Role),
		Name:     user.Name,
		FullName: user.FullName,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.accessSecret)
}

func (t *TokenIssuer) IssueRefreshToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ExpiresInSeconds(t.refreshExpiry)) * time.Second)),
		},
		Type: "refresh",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.refreshSecret)
}

func (t *TokenIssuer) VerifyAccessToken(tokenString string) (*ports.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.accessSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.New("invalid token subject")
	}
	return &ports.AccessClaims{
		UserID:   userID,
		Email:    claims.Email,
		Role:     domain.Role(claims.Role),
		Name:     claims.Name,
		FullName: claims.FullName,
	}, nil
}

func (t *TokenIssuer) VerifyRefreshToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &refreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.refreshSecret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	claims, ok := token.Claims.(*refreshClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token claims")
	}
	if claims.Type != "refresh" {
		return uuid.Nil, errors.New("not a refresh token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.New("invalid token subject")
	}
	return userID, nil
}

func (t *TokenIssuer) AccessExpiresIn() int64 {
	return ExpiresInSeconds(t.accessExpiry)
}

// ExpiresInSeconds parses an expiry string with a single trailing unit
// character (s/m/h/d) into seconds. Unrecognized input yields 3600.
func ExpiresInSeconds(expiry string) int64 {
	if len(expiry) < 2 {
		return 3600
	}
	value, err := strconv.ParseInt(expiry[:len(expiry)-1], 10, 64)
	if err != nil {
		return 3600
	}
	switch expiry[len(expiry)-1] {
	case 's':
		return value
	case 'm':
		return value * 60
	case 'h':
		return value * 60 * 60
	case 'd':
		return value * 24 * 60 * 60
	default:
		return 3600
	}
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
