package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/resume-builder-be/internal/auth"
	"github.com/isdelr/resume-builder-be/internal/mailer"
	"github.com/isdelr/resume-builder-be/internal/metrics"
	"github.com/isdelr/resume-builder-be/internal/models"
	"github.com/isdelr/resume-builder-be/internal/store"
)

// codeAlphabet leaves out 0/O and 1/I so codes survive being read aloud or retyped.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// AccountServiceProvider defines the interface for account services.
type AccountServiceProvider interface {
	Register(ctx context.Context, email, password string) error
	Verify(ctx context.Context, email, code string) error
	CheckLogin(ctx context.Context, email, password string) (models.Account, error)
	GetAccount(ctx context.Context, email string) (models.Account, error)
}

// AccountOptions tunes the verification challenge.
type AccountOptions struct {
	CodeTTL    time.Duration
	CodeLength int
	// StrictDelivery refuses to persist an account whose code could not be delivered.
	// When false the account is persisted after the delivery attempt regardless of its outcome.
	StrictDelivery bool
}

// AccountService drives an account from registered to verified and checks logins.
type AccountService struct {
	accounts store.AccountStore
	mailer   mailer.Deliverer
	hasher   auth.PasswordHasher
	events   EventServiceProvider
	metrics  *metrics.Metrics
	opts     AccountOptions

	now     func() time.Time
	newCode func(n int) (string, error)
}

// NewAccountService creates a new AccountService. events and m may be nil.
func NewAccountService(accounts store.AccountStore, d mailer.Deliverer, h auth.PasswordHasher, events EventServiceProvider, m *metrics.Metrics, opts AccountOptions) *AccountService {
	if opts.CodeTTL == 0 {
		opts.CodeTTL = 15 * time.Minute
	}
	if opts.CodeLength < 6 {
		opts.CodeLength = 6
	}
	return &AccountService{
		accounts: accounts,
		mailer:   d,
		hasher:   h,
		events:   events,
		metrics:  m,
		opts:     opts,
		now:      time.Now,
		newCode:  generateCode,
	}
}

// NormalizeEmail is the key form used for every account lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified account and sends it a challenge code.
func (s *AccountService) Register(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return invalid("email and password are required")
	}

	_, err := s.accounts.Get(ctx, email)
	switch {
	case err == nil:
		s.metrics.Account("register", "already_registered")
		return ErrAlreadyRegistered
	case !errors.Is(err, store.ErrNotFound):
		return translate(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	code, err := s.newCode(s.opts.CodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	now := s.now().UTC()
	if err := s.mailer.Deliver(ctx, email, code); err != nil {
		if s.opts.StrictDelivery {
			s.metrics.Account("register", "delivery_failed")
			log.Warn().Err(err).Str("email", email).Msg("Verification delivery failed, account not created")
			return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
		}
		s.record(ctx, "account.register.delivery_failed", "warn", "Verification code could not be delivered", email)
		log.Warn().Err(err).Str("email", email).Msg("Verification delivery failed, persisting account anyway")
	}

	account := models.Account{
		Email:        email,
		PasswordHash: hash,
		Verification: &models.VerificationChallenge{
			Code:      code,
			ExpiresAt: now.Add(s.opts.CodeTTL),
		},
		CreatedAt: now,
	}
	if err := s.accounts.Set(ctx, account); err != nil {
		return translate(err)
	}

	s.metrics.Account("register", "ok")
	s.record(ctx, "account.register", "info", "Account registered", email)
	return nil
}

// errAlreadyVerified aborts the store update without writing.
var errAlreadyVerified = errors.New("already verified")

// Verify checks the submitted code and marks the account verified.
// Verifying an already verified account succeeds without changes.
func (s *AccountService) Verify(ctx context.Context, email, code string) error {
	email = NormalizeEmail(email)
	now := s.now()

	err := s.accounts.Update(ctx, email, func(a *models.Account) error {
		if a.IsVerified {
			return errAlreadyVerified
		}
		if a.Verification == nil || subtle.ConstantTimeCompare([]byte(a.Verification.Code), []byte(code)) != 1 {
			return ErrCodeMismatch
		}
		if a.Verification.Expired(now) {
			return ErrCodeExpired
		}
		a.IsVerified = true
		a.Verification = nil
		return nil
	})

	switch {
	case err == nil:
		s.metrics.Account("verify", "ok")
		s.record(ctx, "account.verify", "info", "Email verified", email)
		return nil
	case errors.Is(err, errAlreadyVerified):
		s.metrics.Account("verify", "already_verified")
		return nil
	case errors.Is(err, ErrCodeMismatch):
		s.metrics.Account("verify", "code_mismatch")
		return ErrCodeMismatch
	case errors.Is(err, ErrCodeExpired):
		s.metrics.Account("verify", "code_expired")
		return ErrCodeExpired
	}
	return translate(err)
}

// CheckLogin verifies credentials of a verified account.
func (s *AccountService) CheckLogin(ctx context.Context, email, password string) (models.Account, error) {
	email = NormalizeEmail(email)

	account, err := s.accounts.Get(ctx, email)
	if err != nil {
		return models.Account{}, translate(err)
	}
	if !account.IsVerified {
		s.metrics.Account("login", "not_verified")
		return models.Account{}, ErrNotVerified
	}
	if !s.hasher.Verify(account.PasswordHash, password) {
		s.metrics.Account("login", "bad_credentials")
		s.record(ctx, "account.login.fail", "warn", "Failed login attempt", email)
		return models.Account{}, ErrBadCredentials
	}

	s.metrics.Account("login", "ok")
	s.record(ctx, "account.login", "info", "Logged in", email)
	return account, nil
}

// GetAccount returns the account for email.
func (s *AccountService) GetAccount(ctx context.Context, email string) (models.Account, error) {
	account, err := s.accounts.Get(ctx, NormalizeEmail(email))
	if err != nil {
		return models.Account{}, translate(err)
	}
	return account, nil
}

func (s *AccountService) record(ctx context.Context, eventType, level, message, email string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(ctx, eventType, level, message, email); err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}

// generateCode returns n characters drawn uniformly from codeAlphabet.
func generateCode(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid code length %d", n)
	}
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
