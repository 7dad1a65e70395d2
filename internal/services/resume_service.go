package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/resume-builder-be/internal/archive"
	"github.com/isdelr/resume-builder-be/internal/layout"
	"github.com/isdelr/resume-builder-be/internal/metrics"
	"github.com/isdelr/resume-builder-be/internal/models"
	"github.com/isdelr/resume-builder-be/internal/pdf"
	"github.com/isdelr/resume-builder-be/internal/session"
	"github.com/isdelr/resume-builder-be/internal/store"
)

// ResumeForm carries the single-value fields of the resume form.
type ResumeForm struct {
	Name         string         `json:"name"`
	Contact      models.Contact `json:"contact"`
	AboutMe      string         `json:"about_me"`
	Skills       string         `json:"skills"`
	Languages    string         `json:"languages"`
	Achievements string         `json:"achievements"`
}

// ResumeServiceProvider defines the interface for resume services.
type ResumeServiceProvider interface {
	StartDraft(ctx context.Context, email string) (models.Draft, error)
	GetDraft(ctx context.Context, email, draftID string) (models.Draft, error)
	AddEducation(ctx context.Context, email, draftID string, e models.Education) (models.Draft, error)
	AddExperience(ctx context.Context, email, draftID string, e models.Experience) (models.Draft, error)
	AddProject(ctx context.Context, email, draftID string, p models.Project) (models.Draft, error)
	DiscardDraft(ctx context.Context, email, draftID string) error
	Generate(ctx context.Context, email, draftID string, form ResumeForm) ([]byte, error)
	GetResume(ctx context.Context, email string) (models.Resume, error)
}

// ResumeService assembles resumes from drafts, persists them and renders PDFs.
type ResumeService struct {
	drafts   session.Store
	resumes  store.ResumeStore
	renderer pdf.Renderer
	archiver archive.Archiver
	events   EventServiceProvider
	metrics  *metrics.Metrics
	page     layout.Page
	now      func() time.Time
}

// NewResumeService creates a new ResumeService. archiver, events and m may be nil.
func NewResumeService(drafts session.Store, resumes store.ResumeStore, renderer pdf.Renderer, archiver archive.Archiver, events EventServiceProvider, m *metrics.Metrics) *ResumeService {
	return &ResumeService{
		drafts:   drafts,
		resumes:  resumes,
		renderer: renderer,
		archiver: archiver,
		events:   events,
		metrics:  m,
		page:     layout.A4(),
		now:      time.Now,
	}
}

func (s *ResumeService) StartDraft(ctx context.Context, email string) (models.Draft, error) {
	d, err := s.drafts.Create(ctx, email)
	return d, translate(err)
}

func (s *ResumeService) GetDraft(ctx context.Context, email, draftID string) (models.Draft, error) {
	d, err := s.drafts.Get(ctx, email, draftID)
	return d, translate(err)
}

func (s *ResumeService) AddEducation(ctx context.Context, email, draftID string, e models.Education) (models.Draft, error) {
	d, err := s.drafts.AddEducation(ctx, email, draftID, e)
	return d, translate(err)
}

func (s *ResumeService) AddExperience(ctx context.Context, email, draftID string, e models.Experience) (models.Draft, error) {
	d, err := s.drafts.AddExperience(ctx, email, draftID, e)
	return d, translate(err)
}

func (s *ResumeService) AddProject(ctx context.Context, email, draftID string, p models.Project) (models.Draft, error) {
	d, err := s.drafts.AddProject(ctx, email, draftID, p)
	return d, translate(err)
}

func (s *ResumeService) DiscardDraft(ctx context.Context, email, draftID string) error {
	return translate(s.drafts.Delete(ctx, email, draftID))
}

// Generate persists the resume built from the draft and form, overwriting any
// previous one, and returns it rendered as PDF.
func (s *ResumeService) Generate(ctx context.Context, email, draftID string, form ResumeForm) ([]byte, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, invalid("name is required")
	}

	draft, err := s.drafts.Get(ctx, email, draftID)
	if err != nil {
		return nil, translate(err)
	}

	resume := models.Resume{
		Name:         form.Name,
		Contact:      form.Contact,
		AboutMe:      form.AboutMe,
		Education:    draft.Education,
		Experience:   draft.Experience,
		Projects:     draft.Projects,
		Skills:       form.Skills,
		Languages:    form.Languages,
		Achievements: form.Achievements,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.resumes.Set(ctx, email, resume); err != nil {
		return nil, translate(err)
	}

	start := time.Now()
	out, err := s.renderer.Render(layout.Compose(resume, s.page))
	if err != nil {
		return nil, fmt.Errorf("failed to render resume: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RenderSeconds.Observe(time.Since(start).Seconds())
		s.metrics.ResumesRendered.Inc()
	}

	if s.archiver != nil {
		if err := s.archiver.Put(ctx, email, out); err != nil {
			log.Error().Err(err).Str("email", email).Msg("Failed to archive resume PDF")
		}
	}

	if s.events != nil {
		if err := s.events.CreateEvent(ctx, "resume.generate", "info", "Resume saved and rendered", email); err != nil {
			log.Error().Err(err).Msg("Failed to record event")
		}
	}
	return out, nil
}

// GetResume returns the last persisted resume of the account.
func (s *ResumeService) GetResume(ctx context.Context, email string) (models.Resume, error) {
	r, err := s.resumes.Get(ctx, email)
	return r, translate(err)
}
