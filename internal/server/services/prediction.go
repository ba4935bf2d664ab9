package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/inference"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/models"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PredictionService runs the predict-and-persist pipeline and serves
// owner-scoped history reads and deletes. A record is only written after
// the label has been computed, and the insert carries features, label and
// owner in a single statement, so no partial record can exist.
type PredictionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	classifier  *inference.Classifier
}

func NewPredictionService(db *sql.DB, m repomanager.RepositoryManager, c *inference.Classifier) *PredictionService {
	return &PredictionService{db: db, repomanager: m, classifier: c}
}

// Predict classifies the vector and persists the outcome under ownerID.
// Label computation is deterministic and side-effect-free, so a failed
// insert leaves nothing behind and the caller can safely resubmit.
func (s *PredictionService) Predict(ctx context.Context, ownerID string, vector [models.FeatureCount]float64) (*models.PredictionRecord, error) {
	label := s.classifier.Predict(vector)

	record := &models.PredictionRecord{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Features: vector,
		Label:    label,
	}

	repo := s.repomanager.Predictions(s.db)
	if err := repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("error saving prediction: %w", err)
	}

	return record, nil
}

// History returns all records owned by ownerID, oldest first.
func (s *PredictionService) History(ctx context.Context, ownerID string) ([]*models.PredictionRecord, error) {
	return s.repomanager.Predictions(s.db).ListByOwner(ctx, ownerID)
}

// Delete removes a record owned by ownerID. Records owned by other
// identities report the same common.ErrorNotFound as nonexistent ids.
func (s *PredictionService) Delete(ctx context.Context, ownerID, recordID string) error {
	return s.repomanager.Predictions(s.db).DeleteByOwner(ctx, ownerID, recordID)
}
