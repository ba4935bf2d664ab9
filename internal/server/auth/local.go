package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/common"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/models"
)

// AccountSource is the account lookup the local strategy needs. Satisfied
// by the user service.
type AccountSource interface {
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
}

// Local authenticates self-issued bearer tokens signed with a process-wide
// secret and issues them in exchange for a valid username/password pair.
type Local struct {
	source   AccountSource
	secret   []byte
	tokenTTL time.Duration
}

func NewLocal(source AccountSource, secretKey string, tokenTTL time.Duration) *Local {
	return &Local{source: source, secret: []byte(secretKey), tokenTTL: tokenTTL}
}

// Authenticate verifies the token's signature, structure and expiry,
// extracts the username claim and resolves it to a live account. A token
// for an account that no longer exists is rejected.
func (l *Local) Authenticate(ctx context.Context, credential string) (*Identity, error) {
	username, err := GetUsernameFromToken(credential, l.secret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	account, err := l.source.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return &Identity{ID: account.ID, Email: account.Email}, nil
}

// IssueToken verifies the password against the stored verifier and mints a
// signed bearer token. Unknown usernames still pay the hashing cost so
// account existence does not leak through timing.
func (l *Local) IssueToken(ctx context.Context, username, password string) (string, error) {
	account, err := l.source.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			HashPassword([]byte(password), NewSalt())
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if len(account.Verifier) == 0 || !VerifyPassword([]byte(password), account.Salt, account.Verifier) {
		return "", common.ErrorUnauthorized
	}

	token, err := GenerateToken(username, l.secret, l.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}
