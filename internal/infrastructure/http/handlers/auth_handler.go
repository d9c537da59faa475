package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/auth"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	login    *auth.Login
	refresh  *auth.Refresh
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(login *auth.Login, refresh *auth.Refresh, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		login:    login,
		refresh:  refresh,
		validate: validator.New(),
		log:      log,
	}
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         any    `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r)
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		middleware.RecordAuthAttempt("login", false)
		writeDomainErr(h.log, w, err)
		return
	}
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    result.TokenType,
		ExpiresIn:    result.ExpiresIn,
		User:         result.User,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r)
	var body struct {
		RefreshToken string `json:"refresh_token" validate:"required,max=1024"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusUnauthorized, "refresh token required")
		return
	}
	accessToken, err := h.refresh.Execute(r.Context(), body.RefreshToken)
	if err != nil {
		middleware.RecordAuthAttempt("refresh", false)
		writeDomainErr(h.log, w, err)
		return
	}
	middleware.RecordAuthAttempt("refresh", true)
	writeJSON(w, http.StatusOK, map[string]string{"access_token": accessToken})
}

// Logout is stateless: the token stays valid until expiry and the client is
// expected to discard it.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Session closed. Remove the token from local storage.",
		"success": true,
	})
}

// Me returns the principal decoded from the access token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.PrincipalFromContext(r.Context())
	if claims == nil {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       claims.UserID,
		"email":    claims.Email,
		"name":     claims.Name,
		"fullName": claims.FullName,
		"role":     claims.Role,
	})
}
