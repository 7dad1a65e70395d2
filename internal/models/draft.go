package models

import "time"

// Draft accumulates the list sections of a resume during one editing session.
// Entries are only ever appended.
type Draft struct {
	ID         string       `json:"id"`
	Email      string       `json:"email"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
