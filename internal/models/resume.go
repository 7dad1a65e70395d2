package models

import (
	"strings"
	"time"
)

// Contact holds the optional contact line values of a resume.
type Contact struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
	Social   string `json:"social"`
}

// Values returns the contact fields in display order.
func (c Contact) Values() []string {
	return []string{c.Phone, c.Email, c.GitHub, c.LinkedIn, c.Website, c.Social}
}

type Education struct {
	School      string `json:"school"`
	Degree      string `json:"degree"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

type Experience struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Link        string `json:"link"`
}

// Resume is the persisted resume document, one per account.
type Resume struct {
	Name         string       `json:"name"`
	Contact      Contact      `json:"contact"`
	AboutMe      string       `json:"about_me"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Projects     []Project    `json:"projects"`
	Skills       string       `json:"skills"`
	Languages    string       `json:"languages"`
	Achievements string       `json:"achievements"`
	CreatedAt    time.Time    `json:"created_at"`
}

// SkillList parses the comma separated skills field.
func (r Resume) SkillList() []string {
	return SplitList(r.Skills)
}

// LanguageList parses the comma separated languages field.
func (r Resume) LanguageList() []string {
	return SplitList(r.Languages)
}

// SplitList splits a comma separated value into trimmed, non-empty tokens, preserving order.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
