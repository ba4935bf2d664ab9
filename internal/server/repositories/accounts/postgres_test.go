package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/common"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	_ "modernc.org/sqlite"
)

func newMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("error creating sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func testAccount() *models.Account {
	return &models.Account{
		ID:          "acc-1",
		UserName:    "alice",
		Salt:        []byte{1, 2},
		Verifier:    []byte{3, 4},
		Email:       "alice@example.com",
		Gender:      "F",
		DateOfBirth: "1990-01-02",
	}
}

func accountColumns() []string {
	return []string{"id", "username", "salt", "verifier", "email", "gender", "date_of_birth", "created_at"}
}

func accountRow(a *models.Account) *sqlmock.Rows {
	return sqlmock.NewRows(accountColumns()).
		AddRow(a.ID, a.UserName, a.Salt, a.Verifier, a.Email, a.Gender, a.DateOfBirth, time.Now())
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newMock(t)
	account := testAccount()

	mock.ExpectExec(`(?s)INSERT\s+INTO accounts`).
		WithArgs(account.ID, account.UserName, account.Salt, account.Verifier,
			account.Email, account.Gender, account.DateOfBirth).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), account)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != account.ID {
		t.Fatalf("id mismatch: got %q want %q", got.ID, account.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock := newMock(t)
	account := testAccount()

	mock.ExpectExec(`(?s)INSERT\s+INTO accounts`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), account)
	if !errors.Is(err, common.ErrDuplicateAccount) {
		t.Fatalf("want common.ErrDuplicateAccount, got %v", err)
	}
}

func TestGetByUsername_Success(t *testing.T) {
	repo, mock := newMock(t)
	account := testAccount()

	mock.ExpectQuery(`(?s)SELECT .* FROM accounts WHERE username = \$1`).
		WithArgs(account.UserName).
		WillReturnRows(accountRow(account))

	got, err := repo.GetByUsername(context.Background(), account.UserName)
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.ID != account.ID || got.Email != account.Email {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`(?s)SELECT .* FROM accounts WHERE username = \$1`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(accountColumns()))

	_, err := repo.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_Success(t *testing.T) {
	repo, mock := newMock(t)
	account := testAccount()

	mock.ExpectQuery(`(?s)SELECT .* FROM accounts WHERE id = \$1`).
		WithArgs(account.ID).
		WillReturnRows(accountRow(account))

	got, err := repo.GetByID(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.UserName != account.UserName {
		t.Fatalf("unexpected account: %+v", got)
	}
}

// newSqliteRepo runs against a real database so parameter binding is
// exercised, not just matched as strings. The schema mirrors the
// migration, in particular the text id column.
func newSqliteRepo(t *testing.T) *PostgresRepository {
	t.Helper()
	db, err := sql.Open("sqlite", "file:accounts_tests?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("error opening database: %v", err)
	}
	db.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS accounts (
		id text PRIMARY KEY,
		username text NOT NULL UNIQUE,
		salt blob,
		verifier blob,
		email text NOT NULL DEFAULT '',
		gender text NOT NULL DEFAULT '',
		date_of_birth text NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		t.Fatalf("error creating table: %v", err)
	}
	if _, err := db.Exec(`DELETE FROM accounts`); err != nil {
		t.Fatalf("error truncating table: %v", err)
	}
	return NewPostgresRepository(db)
}

// Federated identities are looked up by provider uid and anonymous
// callers by a sentinel; neither is a uuid, and both must miss cleanly
// rather than fail the bind.
func TestGetByID_NonUUIDIdentity(t *testing.T) {
	repo := newSqliteRepo(t)
	ctx := context.Background()

	for _, id := range []string{"104312678954217838491", "anonymous"} {
		if _, err := repo.GetByID(ctx, id); !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("GetByID(%q): want common.ErrorNotFound, got %v", id, err)
		}
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`(?s)SELECT .* FROM accounts WHERE email = \$1`).
		WithArgs("absent@example.com").
		WillReturnRows(sqlmock.NewRows(accountColumns()))

	_, err := repo.GetByEmail(context.Background(), "absent@example.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
