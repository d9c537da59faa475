package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
)

// AuthValidator validates the bearer JWT and sets the principal in context
// (see PrincipalFromContext).
type AuthValidator struct {
	issuer ports.TokenIssuer
}

func NewAuthValidator(issuer ports.TokenIssuer) *AuthValidator {
	return &AuthValidator{issuer: issuer}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeUnauthorized(w, "missing or invalid authorization")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		claims, err := m.issuer.VerifyAccessToken(tokenString)
		if err != nil {
			writeUnauthorized(w, "invalid token")
			return
		}
		ctx := WithPrincipal(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "unauthorized"})
}
