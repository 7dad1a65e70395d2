package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/isdelr/resume-builder-be/internal/database"
	"github.com/isdelr/resume-builder-be/internal/models"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(ctx context.Context, eventType, level, message, email string) error
	GetRecentEvents(ctx context.Context, email string, limit int) ([]models.Event, error)
}

// EventService records account activity.
type EventService struct {
	db      *sql.DB
	dialect database.Dialect
	now     func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, dialect database.Dialect) *EventService {
	return &EventService{db: db, dialect: dialect, now: time.Now}
}

// CreateEvent logs a new event to the database.
func (s *EventService) CreateEvent(ctx context.Context, eventType, level, message, email string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		Email:     email,
		CreatedAt: s.now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		s.dialect.Rebind("INSERT INTO events (id, type, level, message, email, created_at) VALUES (?, ?, ?, ?, ?, ?)"),
		event.ID, event.Type, event.Level, event.Message, event.Email, event.CreatedAt)
	return err
}

// GetRecentEvents retrieves the most recent events of an account, newest first.
func (s *EventService) GetRecentEvents(ctx context.Context, email string, limit int) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		s.dialect.Rebind("SELECT id, type, level, message, email, created_at FROM events WHERE email = ? ORDER BY created_at DESC LIMIT ?"),
		email, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.Email, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
