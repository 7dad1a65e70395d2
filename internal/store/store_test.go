package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/resume-builder-be/internal/database"
	"github.com/isdelr/resume-builder-be/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(database.SQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, database.SQLite))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAccounts_GetMissing(t *testing.T) {
	s := NewAccounts(newTestDB(t), database.SQLite)

	_, err := s.Get(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAccounts_SetGetUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewAccounts(newTestDB(t), database.SQLite)
	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	acc := models.Account{
		Email:        "jane@example.com",
		PasswordHash: "hash",
		Verification: &models.VerificationChallenge{Code: "ABC123", ExpiresAt: expires},
		CreatedAt:    expires.Add(-15 * time.Minute),
	}
	require.NoError(t, s.Set(ctx, acc))

	got, err := s.Get(ctx, acc.Email)
	require.NoError(t, err)
	assert.Equal(t, acc, got)

	err = s.Update(ctx, acc.Email, func(a *models.Account) error {
		a.IsVerified = true
		a.Verification = nil
		return nil
	})
	require.NoError(t, err)

	got, err = s.Get(ctx, acc.Email)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.Nil(t, got.Verification)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestAccounts_UpdateAbortsOnMutateError(t *testing.T) {
	ctx := context.Background()
	s := NewAccounts(newTestDB(t), database.SQLite)
	require.NoError(t, s.Set(ctx, models.Account{Email: "a@example.com", PasswordHash: "h"}))

	boom := errors.New("boom")
	err := s.Update(ctx, "a@example.com", func(a *models.Account) error {
		a.IsVerified = true
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, got.IsVerified)
}

func TestAccounts_UpdateMissing(t *testing.T) {
	s := NewAccounts(newTestDB(t), database.SQLite)

	err := s.Update(context.Background(), "ghost@example.com", func(*models.Account) error { return nil })
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAccounts_BackendFailureIsUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT doc FROM accounts").WillReturnError(errors.New("connection refused"))
	mock.ExpectExec("INSERT INTO accounts").WillReturnError(errors.New("connection refused"))

	s := NewAccounts(db, database.SQLite)
	_, err = s.Get(context.Background(), "a@example.com")
	require.ErrorIs(t, err, ErrUnavailable)

	err = s.Set(context.Background(), models.Account{Email: "a@example.com"})
	require.ErrorIs(t, err, ErrUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccounts_PostgresPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT doc FROM accounts WHERE email = \$1`).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(`{"email":"a@example.com","is_verified":true}`))

	s := NewAccounts(db, database.Postgres)
	got, err := s.Get(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResumes_RoundTripPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := NewResumes(newTestDB(t), database.SQLite)

	resume := models.Resume{
		Name:    "Jane Doe",
		Contact: models.Contact{Phone: "555-0100", GitHub: "github.com/jane"},
		AboutMe: "Builder.\nShipper.",
		Education: []models.Education{
			{School: "MIT", Degree: "BSc", Start: "2010", End: "2014"},
			{School: "Stanford", Degree: "MSc", Start: "2014", End: "2016", Description: "Thesis"},
		},
		Experience: []models.Experience{
			{Position: "Engineer", Company: "Acme", Start: "2016", End: "2020"},
		},
		Projects: []models.Project{
			{Name: "z-last", Link: "https://example.com/z"},
			{Name: "a-first", Start: "2021"},
		},
		Skills:       "Go, Rust, Python",
		Languages:    "English",
		Achievements: "Award",
		CreatedAt:    time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Set(ctx, "jane@example.com", resume))

	got, err := s.Get(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, resume, got)
}

func TestResumes_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewResumes(newTestDB(t), database.SQLite)

	require.NoError(t, s.Set(ctx, "jane@example.com", models.Resume{Name: "First", Skills: "Go"}))
	require.NoError(t, s.Set(ctx, "jane@example.com", models.Resume{Name: "Second"}))

	got, err := s.Get(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)
	assert.Empty(t, got.Skills)

	_, err = s.Get(ctx, "other@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}
