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

// AccountStore is the credential store contract.
type AccountStore interface {
	Get(ctx context.Context, email string) (models.Account, error)
	Set(ctx context.Context, account models.Account) error
	Update(ctx context.Context, email string, mutate func(*models.Account) error) error
}

// Accounts stores accounts in the accounts table.
type Accounts struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewAccounts creates a new Accounts store.
func NewAccounts(db *sql.DB, dialect database.Dialect) *Accounts {
	return &Accounts{db: db, dialect: dialect}
}

// Get returns the account stored under email.
func (s *Accounts) Get(ctx context.Context, email string) (models.Account, error) {
	return s.get(ctx, s.db, email)
}

// Set upserts the full account document.
func (s *Accounts) Set(ctx context.Context, account models.Account) error {
	return s.set(ctx, s.db, account)
}

// Update reads the account, applies mutate and writes it back in one transaction.
// An error from mutate aborts the update unchanged.
func (s *Accounts) Update(ctx context.Context, email string, mutate func(*models.Account) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin account update", err)
	}
	defer tx.Rollback()

	account, err := s.get(ctx, tx, email)
	if err != nil {
		return err
	}
	if err := mutate(&account); err != nil {
		return err
	}
	account.Email = email
	if err := s.set(ctx, tx, account); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit account update", err)
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Accounts) get(ctx context.Context, q queryer, email string) (models.Account, error) {
	var doc string
	err := q.QueryRowContext(ctx, s.dialect.Rebind("SELECT doc FROM accounts WHERE email = ?"), email).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrNotFound
		}
		return models.Account{}, unavailable("get account", err)
	}

	var account models.Account
	if err := json.Unmarshal([]byte(doc), &account); err != nil {
		return models.Account{}, fmt.Errorf("decode account %s: %w", email, err)
	}
	return account, nil
}

func (s *Accounts) set(ctx context.Context, q queryer, account models.Account) error {
	doc, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}
	_, err = q.ExecContext(ctx, s.dialect.Rebind(`
		INSERT INTO accounts (email, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`),
		account.Email, string(doc), time.Now().UTC())
	if err != nil {
		return unavailable("set account", err)
	}
	return nil
}
