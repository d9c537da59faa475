package ports

import (
	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/taskhub/internal/domain"
)

// PasswordHasher hashes and verifies passwords (bcrypt).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// AccessClaims is the decoded payload of a verified access token.
type AccessClaims struct {
	UserID   uuid.UUID
	Email    string
	Role     domain.Role
	Name     string
	FullName string
}

// TokenIssuer signs and validates JWTs. Access and refresh tokens are
// signed with distinct secrets; refresh tokens carry only the subject and
// a type marker.
type TokenIssuer interface {
	IssueAccessToken(user *domain.User) (string, error)
	IssueRefreshToken(user *domain.User) (string, error)
	VerifyAccessToken(tokenString string) (*AccessClaims, error)
	// VerifyRefreshToken returns the subject user ID. It rejects tokens
	// whose type claim is not "refresh".
	VerifyRefreshToken(tokenString string) (uuid.UUID, error)
	// AccessExpiresIn is the configured access token lifetime in seconds.
	AccessExpiresIn() int64
}
