package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskhub/internal/application/task"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
)

// TasksHandler handles /task CRUD. Requires JWT auth.
type TasksHandler struct {
	svc      *task.Service
	validate *validator.Validate
	log      zerolog.Logger
}

func NewTasksHandler(svc *task.Service, log zerolog.Logger) *TasksHandler {
	return &TasksHandler{svc: svc, validate: validator.New(), log: log}
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r)
	var body struct {
		Title       string    `json:"title" validate:"required,max=300"`
		Description string    `json:"description" validate:"max=300"`
		Status      string    `json:"status" validate:"omitempty,oneof=todo in_progress done"`
		ProjectID   uuid.UUID `json:"projectId" validate:"required"`
		AssigneeID  uuid.UUID `json:"assigneeId" validate:"required"`
		DueDate     time.Time `json:"dueDate" validate:"required"`
		StartDate   time.Time `json:"startDate" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.svc.Create(r.Context(), task.CreateInput{
		Title:       body.Title,
		Description: body.Description,
		Status:      domain.TaskStatus(body.Status),
		ProjectID:   body.ProjectID,
		AssigneeID:  body.AssigneeID,
		DueDate:     body.DueDate,
		StartDate:   body.StartDate,
		CreatedBy:   createdBy(r),
	})
	if err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := parsePagination(q)
	page, err := h.svc.List(r.Context(), task.ListQuery{
		Page:          p.Page,
		PageSize:      p.PageSize,
		Status:        q.Get("status"),
		ProjectID:     q.Get("projectId"),
		AssigneeID:    q.Get("assigneeId"),
		CreatedBy:     q.Get("createdBy"),
		DueDateAfter:  parseTimeParam(q, "dueDateAfter"),
		DueDateBefore: parseTimeParam(q, "dueDateBefore"),
		Search:        p.Search,
		SortBy:        p.SortBy,
		SortOrder:     p.SortOrder,
	})
	if err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid task id")
		return
	}
	view, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid task id")
		return
	}
	limitBody(w, r)
	var body struct {
		Title       *string    `json:"title" validate:"omitempty,max=300"`
		Description *string    `json:"description" validate:"omitempty,max=300"`
		Status      *string    `json:"status" validate:"omitempty,oneof=todo in_progress done"`
		ProjectID   *uuid.UUID `json:"projectId"`
		AssigneeID  *uuid.UUID `json:"assigneeId"`
		DueDate     *time.Time `json:"dueDate"`
		StartDate   *time.Time `json:"startDate"`
		IsActive    *bool      `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	patch := task.Patch{
		Title:       body.Title,
		Description: body.Description,
		ProjectID:   body.ProjectID,
		AssigneeID:  body.AssigneeID,
		DueDate:     body.DueDate,
		StartDate:   body.StartDate,
		IsActive:    body.IsActive,
	}
	if body.Status != nil {
		status := domain.TaskStatus(*body.Status)
		patch.Status = &status
	}
	view, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid task id")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeDomainErr(h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
