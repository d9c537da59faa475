package auth

import (
	"context"
	"strings"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
)

// CredentialVerifier checks an email/password pair against stored hashes.
type CredentialVerifier struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewCredentialVerifier(users ports.UserRepository, hasher ports.PasswordHasher) *CredentialVerifier {
	return &CredentialVerifier{users: users, hasher: hasher}
}

// Validate returns the sanitized principal on a match and (nil, nil) on any
// mismatch or missing user. The caller turns nil into an authentication
// failure; a missing user and a wrong password are indistinguishable.
func (v *CredentialVerifier) Validate(ctx context.Context, email, password string) (*domain.Principal, error) {
	user, err := v.lookup(ctx, email, password)
	if err != nil || user == nil {
		return nil, err
	}
	return user.Principal(), nil
}

// lookup is the single place credentials are checked. It case-folds the
// email before the repository lookup and returns the full user row on a
// match, nil on any mismatch.
func (v *CredentialVerifier) lookup(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := v.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !v.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}
