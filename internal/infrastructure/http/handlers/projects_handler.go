package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/project"
)

// ProjectsHandler handles /project CRUD. Requires JWT auth.
type ProjectsHandler struct {
	svc      *project.Service
	validate *validator.Validate
	log      zerolog.Logger
}

func NewProjectsHandler(svc *project.Service, log zerolog.Logger) *ProjectsHandler {
	return &ProjectsHandler{svc: svc, validate: validator.New(), log: log}
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r)
	var body struct {
		Name        string      `json:"name" validate:"required,max=300"`
		Description string      `json:"description" validate:"max=300"`
		StartDate   time.Time   `json:"startDate" validate:"required"`
		EndDate     time.Time   `json:"endDate" validate:"required"`
		OwnerID     uuid.UUID   `json:"ownerId" validate:"required"`
		MemberIDs   []uuid.UUID `json:"memberIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.svc.Create(r.Context(), project.CreateInput{
		Name:        body.Name,
		Description: body.Description,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		OwnerID:     body.OwnerID,
		MemberIDs:   body.MemberIDs,
		CreatedBy:   createdBy(r),
	})
	if err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := parsePagination(q)
	page, err := h.svc.List(r.Context(), project.ListQuery{
		Page:      p.Page,
		PageSize:  p.PageSize,
		OwnerID:   q.Get("ownerId"),
		MemberID:  q.Get("memberId"),
		TaskID:    q.Get("taskId"),
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

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	view, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	limitBody(w, r)
	var body struct {
		Name        *string      `json:"name" validate:"omitempty,max=300"`
		Description *string      `json:"description" validate:"omitempty,max=300"`
		StartDate   *time.Time   `json:"startDate"`
		EndDate     *time.Time   `json:"endDate"`
		OwnerID     *uuid.UUID   `json:"ownerId"`
		MemberIDs   *[]uuid.UUID `json:"memberIds"`
		IsActive    *bool        `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.svc.Update(r.Context(), id, project.Patch{
		Name:        body.Name,
		Description: body.Description,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		OwnerID:     body.OwnerID,
		MemberIDs:   body.MemberIDs,
		IsActive:    body.IsActive,
	})
	if err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid project id")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
