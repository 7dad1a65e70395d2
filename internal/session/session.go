// Package session keeps the per-user draft buffer that list sections are
// accumulated in before a resume is generated.
package session

import (
	"context"
	"errors"

	"github.com/isdelr/resume-builder-be/internal/models"
)

var (
	// ErrNotFound is returned for unknown, expired, or foreign drafts.
	ErrNotFound = errors.New("draft not found")
	// ErrUnavailable wraps backend failures.
	ErrUnavailable = errors.New("draft store unavailable")
	// ErrCorrupt marks a stored draft that cannot be decoded.
	ErrCorrupt = errors.New("corrupt draft")
)

// Store holds drafts. Every mutation is an append; entries are never edited or removed.
// Operations on a draft owned by another email return ErrNotFound.
type Store interface {
	Create(ctx context.Context, email string) (models.Draft, error)
	Get(ctx context.Context, email, id string) (models.Draft, error)
	AddEducation(ctx context.Context, email, id string, e models.Education) (models.Draft, error)
	AddExperience(ctx context.Context, email, id string, e models.Experience) (models.Draft, error)
	AddProject(ctx context.Context, email, id string, p models.Project) (models.Draft, error)
	Delete(ctx context.Context, email, id string) error
}
