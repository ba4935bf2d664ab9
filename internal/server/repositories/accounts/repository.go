// Package accounts provides persistence for registered accounts.
package accounts

import (
	"context"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}
