package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/resume-builder-be/internal/database"
	"github.com/isdelr/resume-builder-be/internal/models"
)

// ResumeStore is the resume store contract.
type ResumeStore interface {
	Set(ctx context.Context, email string, resume models.Resume) error
	Get(ctx context.Context, email string) (models.Resume, error)
}

// Resumes stores one resume document per email; writes overwrite.
type Resumes struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewResumes creates a new Resumes store.
func NewResumes(db *sql.DB, dialect database.Dialect) *Resumes {
	return &Resumes{db: db, dialect: dialect}
}

// Set replaces the resume stored for email.
func (s *Resumes) Set(ctx context.Context, email string, resume models.Resume) error {
	doc, err := json.Marshal(resume)
	if err != nil {
		return fmt.Errorf("encode resume: %w", err)
	}
	_, err = s.db.ExecContext(ctx, s.dialect.Rebind(`
		INSERT INTO resumes (email, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`),
		email, string(doc), time.Now().UTC())
	if err != nil {
		return unavailable("set resume", err)
	}
	return nil
}

// Get returns the resume stored for email.
func (s *Resumes) Get(ctx context.Context, email string) (models.Resume, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind("SELECT doc FROM resumes WHERE email = ?"), email).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Resume{}, ErrNotFound
		}
		return models.Resume{}, unavailable("get resume", err)
	}

	var resume models.Resume
	if err := json.Unmarshal([]byte(doc), &resume); err != nil {
		return models.Resume{}, fmt.Errorf("decode resume %s: %w", email, err)
	}
	return resume, nil
}
