// Package services contains server-side business logic. This file
// implements UserService, which handles account registration and profile
// lookups for both the local and federated identity strategies.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/common"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/dbx"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/auth"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/models"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// RegisterParams carries the registration payload. Password is empty for
// federated accounts, where the identity provider owns the credential and
// Username carries the provider-issued uid.
type RegisterParams struct {
	Username    string
	Password    string
	Email       string
	Gender      string
	DateOfBirth string
}

// UserService provides account-related operations: registration, profile
// lookup and the account source the local identity strategy authenticates
// against.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserService constructs a UserService over the shared database handle.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// Register creates a new account. The uniqueness check and insert run in
// one transaction; a concurrent duplicate that slips past the check is
// still caught by the unique constraint and reported the same way.
// Plaintext passwords are hashed before the account ever reaches storage
// and are never logged.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*models.Account, error) {
	if p.Username == "" {
		return nil, fmt.Errorf("%w: username is required", common.ErrValidation)
	}

	account := &models.Account{
		ID:          uuid.NewString(),
		UserName:    p.Username,
		Email:       p.Email,
		Gender:      p.Gender,
		DateOfBirth: p.DateOfBirth,
	}
	if p.Password != "" {
		account.Salt = auth.NewSalt()
		account.Verifier = auth.HashPassword([]byte(p.Password), account.Salt)
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		if _, err := repo.GetByUsername(ctx, p.Username); err == nil {
			return common.ErrDuplicateAccount
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		_, err := repo.Create(ctx, account)
		return err
	}); err != nil {
		return nil, err
	}

	return account, nil
}

// GetByUsername resolves an account by username. Implements
// auth.AccountSource for the local identity strategy.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
}

// Profile returns the stored account for a resolved identity. Local
// identities carry the account id; federated identities carry the
// provider uid, which is stored as the username, so both lookups are
// tried before reporting ErrorNotFound.
func (s *UserService) Profile(ctx context.Context, ident *auth.Identity) (*models.Account, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByID(ctx, ident.ID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	return repo.GetByUsername(ctx, ident.ID)
}

// EmailExists reports whether any account has registered the given email.
func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
