// Package inference wraps the pre-trained heart-disease classifier behind
// a single pure Predict function. The model parameters are loaded once at
// startup from an immutable artifact; a load failure is fatal and the
// server must not serve traffic without a model.
package inference

import (
	"fmt"
	"math"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/models"
)

// Model is a standardized logistic-regression parameter set exported from
// the training pipeline: per-feature means and scales for standardization
// plus the fitted coefficients and intercept.
type Model struct {
	Means        [models.FeatureCount]float64 `json:"means"`
	Scales       [models.FeatureCount]float64 `json:"scales"`
	Coefficients [models.FeatureCount]float64 `json:"coefficients"`
	Intercept    float64                      `json:"intercept"`
}

// Classifier is a stateless scorer over an immutable Model. Safe for
// concurrent use.
type Classifier struct {
	model Model
}

// NewClassifier validates the parameter set and returns a ready scorer.
func NewClassifier(model Model) (*Classifier, error) {
	for i, s := range model.Scales {
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("invalid scale for feature %d: %v", i+1, s)
		}
	}
	return &Classifier{model: model}, nil
}

// Predict returns the class label (0 or 1) for a well-formed feature
// vector. Prediction never fails given valid model parameters.
func (c *Classifier) Predict(vector [models.FeatureCount]float64) int {
	z := c.model.Intercept
	for i, x := range vector {
		z += c.model.Coefficients[i] * (x - c.model.Means[i]) / c.model.Scales[i]
	}
	// sigmoid(z) >= 0.5 iff z >= 0
	if z >= 0 {
		return 1
	}
	return 0
}
