package models

import "time"

// FeatureCount is the number of inputs the classifier was trained on.
const FeatureCount = 13

// PredictionRecord is a persisted classifier outcome tied to the feature
// vector that produced it and the identity that requested it. OwnerID is
// immutable once set; every read and delete of a record goes through an
// owner filter.
type PredictionRecord struct {
	ID        string
	OwnerID   string
	Features  [FeatureCount]float64
	Label     int
	CreatedAt time.Time
}
