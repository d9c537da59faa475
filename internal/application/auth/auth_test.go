package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/security"
	"github.com/amirhosseinghanipour/taskhub/internal/listing"

	infraauth "github.com/amirhosseinghanipour/taskhub/internal/infrastructure/auth"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context, _ listing.Params) ([]*domain.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func seedUser(t *testing.T, hasher *security.BcryptHasher, password string) *domain.User {
	t.Helper()
	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &domain.User{
		ID:           uuid.New(),
		Name:         "Grace",
		LastName:     "Hopper",
		FullName:     "Grace Hopper",
		Email:        "grace@example.com",
		PasswordHash: hash,
		Role:         domain.RoleMember,
		IsActive:     true,
	}
}

func TestCredentialVerifier(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	user := seedUser(t, hasher, "pw")
	v := NewCredentialVerifier(newFakeUserRepo(user), hasher)
	ctx := context.Background()

	principal, err := v.Validate(ctx, "GRACE@Example.com ", "pw")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if principal == nil {
		t.Fatal("expected principal for valid credentials")
	}
	if principal.ID != user.ID || principal.Email != user.Email {
		t.Errorf("unexpected principal: %+v", principal)
	}

	principal, err = v.Validate(ctx, "grace@example.com", "wrong")
	if err != nil || principal != nil {
		t.Errorf("wrong password: principal=%v err=%v, want nil/nil", principal, err)
	}

	principal, err = v.Validate(ctx, "nobody@example.com", "pw")
	if err != nil || principal != nil {
		t.Errorf("missing user: principal=%v err=%v, want nil/nil", principal, err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	issuer := infraauth.NewTokenIssuer("access-secret", "refresh-secret", "1h", "7d")
	user := seedUser(t, hasher, "pw")
	login := NewLogin(NewCredentialVerifier(newFakeUserRepo(user), hasher), issuer)

	res, err := login.Execute(context.Background(), LoginInput{Email: "grace@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.TokenType != "Bearer" {
		t.Errorf("token type = %q", res.TokenType)
	}
	if res.ExpiresIn != 3600 {
		t.Errorf("expires in = %d, want 3600", res.ExpiresIn)
	}
	if res.User.ID != user.ID || res.User.Role != domain.RoleMember {
		t.Errorf("unexpected user summary: %+v", res.User)
	}

	claims, err := issuer.VerifyAccessToken(res.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != user.Role ||
		claims.Name != user.Name || claims.FullName != user.FullName {
		t.Errorf("claims do not match stored user: %+v", claims)
	}

	sub, err := issuer.VerifyRefreshToken(res.RefreshToken)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if sub != user.ID {
		t.Errorf("refresh subject = %s, want %s", sub, user.ID)
	}
}

func TestLoginFoldsEmailLikeVerifier(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	issuer := infraauth.NewTokenIssuer("access-secret", "refresh-secret", "1h", "7d")
	user := seedUser(t, hasher, "pw")
	login := NewLogin(NewCredentialVerifier(newFakeUserRepo(user), hasher), issuer)

	// Login and Validate share one credential check, so the same folding
	// applies to both.
	res, err := login.Execute(context.Background(), LoginInput{Email: " GRACE@Example.com ", Password: "pw"})
	if err != nil {
		t.Fatalf("login with unfolded email: %v", err)
	}
	if res.User.ID != user.ID {
		t.Errorf("user = %+v, want %s", res.User, user.ID)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	issuer := infraauth.NewTokenIssuer("a", "b", "1h", "7d")
	user := seedUser(t, hasher, "pw")
	login := NewLogin(NewCredentialVerifier(newFakeUserRepo(user), hasher), issuer)

	if _, err := login.Execute(context.Background(), LoginInput{Email: "grace@example.com", Password: "nope"}); err != domerrors.ErrInvalidCredentials {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := login.Execute(context.Background(), LoginInput{Email: "ghost@example.com", Password: "pw"}); err != domerrors.ErrInvalidCredentials {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshReflectsCurrentRole(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	issuer := infraauth.NewTokenIssuer("access-secret", "refresh-secret", "1h", "7d")
	user := seedUser(t, hasher, "pw")
	repo := newFakeUserRepo(user)
	login := NewLogin(NewCredentialVerifier(repo, hasher), issuer)
	refresh := NewRefresh(repo, issuer)
	ctx := context.Background()

	res, err := login.Execute(ctx, LoginInput{Email: "grace@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Promote between issuance and refresh; the new access token must carry
	// the current role, not the issue-time one.
	user.Role = domain.RoleAdmin

	access, err := refresh.Execute(ctx, res.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	claims, err := issuer.VerifyAccessToken(access)
	if err != nil {
		t.Fatalf("verify refreshed access: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("refreshed role = %s, want admin", claims.Role)
	}
}

func TestRefreshRejections(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	issuer := infraauth.NewTokenIssuer("access-secret", "refresh-secret", "1h", "7d")
	user := seedUser(t, hasher, "pw")
	repo := newFakeUserRepo(user)
	refresh := NewRefresh(repo, issuer)
	ctx := context.Background()

	// Access token in place of a refresh token.
	access, _ := issuer.IssueAccessToken(user)
	if _, err := refresh.Execute(ctx, access); err != domerrors.ErrInvalidToken {
		t.Errorf("access-as-refresh err = %v, want ErrInvalidToken", err)
	}

	// Empty and malformed tokens.
	if _, err := refresh.Execute(ctx, ""); err != domerrors.ErrInvalidToken {
		t.Errorf("empty token err = %v, want ErrInvalidToken", err)
	}
	if _, err := refresh.Execute(ctx, "not.a.jwt"); err != domerrors.ErrInvalidToken {
		t.Errorf("garbage token err = %v, want ErrInvalidToken", err)
	}

	// Valid token whose subject no longer exists.
	tok, _ := issuer.IssueRefreshToken(user)
	if _, err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := refresh.Execute(ctx, tok); err != domerrors.ErrInvalidToken {
		t.Errorf("deleted user err = %v, want ErrInvalidToken", err)
	}
}
