// Package repomanager wires concrete repository implementations to a
// database handle. Repositories are constructed per call against a
// dbx.DBTX so the same code path serves plain connections and
// transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/dbx"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/repositories/accounts"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/repositories/predictions"
)

type RepositoryManager interface {
	Accounts(db dbx.DBTX) accounts.Repository
	Predictions(db dbx.DBTX) predictions.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
