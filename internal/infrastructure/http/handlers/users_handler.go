package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/user"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	"github.com/amirhosseinghanipour/taskhub/internal/infrastructure/http/middleware"
)

// UsersHandler handles /user CRUD. Requires JWT auth.
type UsersHandler struct {
	svc      *user.Service
	validate *validator.Validate
	log      zerolog.Logger
}

func NewUsersHandler(svc *user.Service, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{svc: svc, validate: validator.New(), log: log}
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r)
	var body struct {
		Name     string `json:"name" validate:"required,max=300"`
		LastName string `json:"lastName" validate:"required,max=300"`
		FullName string `json:"fullName" validate:"omitempty,max=300"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=8,max=128"`
		Role     string `json:"role" validate:"required,oneof=admin leader member"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.svc.Create(r.Context(), user.CreateInput{
		Name:      body.Name,
		LastName:  body.LastName,
		FullName:  body.FullName,
		Email:     body.Email,
		Password:  body.Password,
		Role:      domain.Role(body.Role),
		CreatedBy: createdBy(r),
	})
	if err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := parsePagination(q)
	page, err := h.svc.List(r.Context(), user.ListQuery{
		Page:      p.Page,
		PageSize:  p.PageSize,
		Role:      q.Get("role"),
		IsActive:  parseBoolParam(q, "isActive"),
		CreatedBy: q.Get("createdBy"),
		Search:    p.Search,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
	})
	if err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid user id")
		return
	}
	view, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid user id")
		return
	}
	limitBody(w, r)
	var body struct {
		Name     *string `json:"name" validate:"omitempty,max=300"`
		LastName *string `json:"lastName" validate:"omitempty,max=300"`
		FullName *string `json:"fullName" validate:"omitempty,max=300"`
		Email    *string `json:"email" validate:"omitempty,email,max=254"`
		Password *string `json:"password" validate:"omitempty,min=8,max=128"`
		Role     *string `json:"role" validate:"omitempty,oneof=admin leader member"`
		IsActive *bool   `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	patch := user.Patch{
		Name:     body.Name,
		LastName: body.LastName,
		FullName: body.FullName,
		Email:    body.Email,
		Password: body.Password,
		IsActive: body.IsActive,
	}
	if body.Role != nil {
		role := domain.Role(*body.Role)
		patch.Role = &role
	}
	view, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// createdBy records which authenticated user performed the write.
func createdBy(r *http.Request) string {
	if claims := middleware.PrincipalFromContext(r.Context()); claims != nil {
		return claims.UserID.String()
	}
	return ""
}
