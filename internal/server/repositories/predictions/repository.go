// Package predictions provides owner-scoped persistence for prediction
// records. Every read and delete carries the owner id in the SQL filter,
// so a record is never visible or mutable outside the identity that
// created it.
package predictions

import (
	"context"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, record *models.PredictionRecord) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.PredictionRecord, error)

	// DeleteByOwner removes the record iff it exists and belongs to
	// ownerID. A record owned by someone else yields the same
	// common.ErrorNotFound as a nonexistent id.
	DeleteByOwner(ctx context.Context, ownerID, recordID string) error
}
