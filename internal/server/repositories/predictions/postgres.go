package predictions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/common"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/dbx"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/models"
)

// PostgresRepository implements record storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Feature vectors are stored as a jsonb column so
// the row always carries features, label and owner together.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a record with its features, label and owner in a single
// atomic statement.
func (r *PostgresRepository) Create(ctx context.Context, record *models.PredictionRecord) error {
	featuresJSON, err := json.Marshal(record.Features)
	if err != nil {
		return fmt.Errorf("error encoding features: %w", err)
	}

	query := `
		INSERT INTO predictions (id, user_id, features, label)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query,
		record.ID, record.OwnerID, featuresJSON, record.Label); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// ListByOwner returns all records owned by ownerID in insertion order.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.PredictionRecord, error) {
	query := `
		SELECT id, user_id, features, label, created_at
		FROM predictions
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.PredictionRecord
	for rows.Next() {
		var item models.PredictionRecord
		var featuresJSON []byte
		if err := rows.Scan(&item.ID, &item.OwnerID, &featuresJSON, &item.Label, &item.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(featuresJSON, &item.Features); err != nil {
			return nil, fmt.Errorf("error decoding features: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByOwner deletes the record iff the id exists and its owner matches.
// Zero rows affected means either the id does not exist or it belongs to a
// different owner; both report common.ErrorNotFound.
func (r *PostgresRepository) DeleteByOwner(ctx context.Context, ownerID, recordID string) error {
	query := `
		DELETE FROM predictions
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, recordID, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
