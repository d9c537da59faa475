package auth

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated.
type Refresh struct {
	users  ports.UserRepository
	issuer ports.TokenIssuer
}

func NewRefresh(users ports.UserRepository, issuer ports.TokenIssuer) *Refresh {
	return &Refresh{users: users, issuer: issuer}
}

// Execute verifies the refresh token and re-issues an access token from the
// user's current row, so a role change since issuance shows up in the new
// token. Every failure collapses to ErrInvalidToken.
func (uc *Refresh) Execute(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domerrors.ErrInvalidToken
	}
	userID, err := uc.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", domerrors.ErrInvalidToken
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domerrors.ErrInvalidToken
	}
	return uc.issuer.IssueAccessToken(user)
}
