package models

import "time"

// VerificationChallenge is the short-lived code sent to prove ownership of an email address.
type VerificationChallenge struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the challenge is no longer valid at the given instant.
// The expiry instant itself is still valid.
func (c VerificationChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Account represents a registered user, keyed by normalized email.
type Account struct {
	Email        string                 `json:"email"`
	PasswordHash string                 `json:"password_hash"`
	IsVerified   bool                   `json:"is_verified"`
	Verification *VerificationChallenge `json:"verification,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// Public returns a copy that is safe to send to clients.
func (a Account) Public() AccountView {
	return AccountView{
		Email:      a.Email,
		IsVerified: a.IsVerified,
		CreatedAt:  a.CreatedAt,
	}
}

// AccountView is the client-facing projection of an Account.
type AccountView struct {
	Email      string    `json:"email"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}
