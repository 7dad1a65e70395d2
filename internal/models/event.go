package models

import "time"

// Event represents a loggable action on an account.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "account.register", "resume.generate"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
