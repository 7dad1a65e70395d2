package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/isdelr/resume-builder-be/internal/models"
	"github.com/isdelr/resume-builder-be/internal/pdf"
	"github.com/isdelr/resume-builder-be/internal/services"
)

// ResumeHandler handles draft editing and PDF generation.
type ResumeHandler struct {
	service services.ResumeServiceProvider
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(service services.ResumeServiceProvider) *ResumeHandler {
	return &ResumeHandler{service: service}
}

// StartDraft opens a new editing session.
func (h *ResumeHandler) StartDraft(w http.ResponseWriter, r *http.Request) {
	email, ok := currentEmail(w, r)
	if !ok {
		return
	}
	draft, err := h.service.StartDraft(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draft)
}

// GetDraft returns the accumulated list sections of a session.
func (h *ResumeHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	email, ok := currentEmail(w, r)
	if !ok {
		return
	}
	draft, err := h.service.GetDraft(r.Context(), email, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// DiscardDraft ends a session and drops its entries.
func (h *ResumeHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	email, ok := currentEmail(w, r)
	if !ok {
		return
	}
	if err := h.service.DiscardDraft(r.Context(), email, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResumeHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	var entry models.Education
	h.add(w, r, &entry, func(email, id string) (models.Draft, error) {
		return h.service.AddEducation(r.Context(), email, id, entry)
	})
}

func (h *ResumeHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	var entry models.Experience
	h.add(w, r, &entry, func(email, id string) (models.Draft, error) {
		return h.service.AddExperience(r.Context(), email, id, entry)
	})
}

func (h *ResumeHandler) AddProject(w http.ResponseWriter, r *http.Request) {
	var entry models.Project
	h.add(w, r, &entry, func(email, id string) (models.Draft, error) {
		return h.service.AddProject(r.Context(), email, id, entry)
	})
}

func (h *ResumeHandler) add(w http.ResponseWriter, r *http.Request, entry any, fn func(email, id string) (models.Draft, error)) {
	email, ok := currentEmail(w, r)
	if !ok {
		return
	}
	if !decode(w, r, entry) {
		return
	}
	draft, err := fn(email, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// Generate saves the resume and streams it back as a PDF download.
func (h *ResumeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	email, ok := currentEmail(w, r)
	if !ok {
		return
	}
	var form services.ResumeForm
	if !decode(w, r, &form) {
		return
	}

	out, err := h.service.Generate(r.Context(), email, chi.URLParam(r, "id"), form)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", pdf.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// GetResume returns the last saved resume document.
func (h *ResumeHandler) GetResume(w http.ResponseWriter, r *http.Request) {
	email, ok := currentEmail(w, r)
	if !ok {
		return
	}
	resume, err := h.service.GetResume(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resume)
}
