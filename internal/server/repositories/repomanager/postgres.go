package repomanager

import (
	"context"
	"database/sql"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/dbx"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/migrations"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/repositories/accounts"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/repositories/predictions"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Predictions(db dbx.DBTX) predictions.Repository {
	return predictions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
