package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/resume-builder-be/internal/auth"
	"github.com/isdelr/resume-builder-be/internal/services"
)

// AccountHandler handles registration, verification and login.
type AccountHandler struct {
	service      services.AccountServiceProvider
	events       services.EventServiceProvider
	tokens       *auth.Tokens
	secureCookie bool
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service services.AccountServiceProvider, events services.EventServiceProvider, tokens *auth.Tokens, secureCookie bool) *AccountHandler {
	return &AccountHandler{service: service, events: events, tokens: tokens, secureCookie: secureCookie}
}

// CredentialsPayload is the body of register and login requests.
type CredentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyPayload is the body of verification requests.
type VerifyPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Register handles new account registration.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if !decode(w, r, &payload) {
		return
	}

	if err := h.service.Register(r.Context(), payload.Email, payload.Password); err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Registration refused")
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Registration successful! Verification code sent to your email.")
}

// Verify handles email verification.
func (h *AccountHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var payload VerifyPayload
	if !decode(w, r, &payload) {
		return
	}

	if err := h.service.Verify(r.Context(), payload.Email, payload.Code); err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Verification refused")
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Email verified successfully!")
}

// Login checks credentials and issues a session token.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if !decode(w, r, &payload) {
		return
	}

	account, err := h.service.CheckLogin(r.Context(), payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	token, err := h.tokens.Generate(account.Email)
	if err != nil {
		log.Error().Err(err).Str("email", account.Email).Msg("Failed to generate JWT")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to generate token"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"token":   token,
		"account": account.Public(),
	})
}

// Logout clears the session cookie.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	writeMessage(w, http.StatusOK, "logged out")
}

// GetMe returns the logged-in account.
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	email, ok := currentEmail(w, r)
	if !ok {
		return
	}
	account, err := h.service.GetAccount(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account.Public())
}

// GetEvents lists recent activity of the logged-in account.
func (h *AccountHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	email, ok := currentEmail(w, r)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20 // Default limit
	}

	events, err := h.events.GetRecentEvents(r.Context(), email, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve events")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to retrieve events"})
		return
	}
	writeJSON(w, http.StatusOK, events)
}
