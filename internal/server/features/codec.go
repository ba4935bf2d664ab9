// Package features validates and normalizes raw prediction payloads into
// the fixed-order numeric vector the classifier expects.
//
// The payload carries thirteen named fields, feature1..feature13, in the
// classifier's training order: age, sex, cp, trestbps, chol, fbs, restecg,
// thalach, exang, oldpeak, slope, ca, thal. feature2 (sex) is categorical
// and is encoded to 1.0 ("M") or 0.0 ("F").
package features

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/common"
	"github.com/BhaskarParab/Heart-Disease-Predictor/internal/server/models"
)

// request mirrors the JSON body of POST /predict. Pointers distinguish
// absent fields from zero values.
type request struct {
	Feature1  *float64 `json:"feature1"`  // Age
	Feature2  *string  `json:"feature2"`  // Sex ("M"/"F")
	Feature3  *float64 `json:"feature3"`  // CP
	Feature4  *float64 `json:"feature4"`  // TrestBPS
	Feature5  *float64 `json:"feature5"`  // Chol
	Feature6  *float64 `json:"feature6"`  // FBS
	Feature7  *float64 `json:"feature7"`  // RestECG
	Feature8  *float64 `json:"feature8"`  // Thalch
	Feature9  *float64 `json:"feature9"`  // Exang
	Feature10 *float64 `json:"feature10"` // Oldpeak
	Feature11 *float64 `json:"feature11"` // Slope
	Feature12 *float64 `json:"feature12"` // CA
	Feature13 *float64 `json:"feature13"` // Thal
}

// Decode parses a raw prediction payload and returns the ordered feature
// vector. Missing fields, non-numeric values and unknown sex categories
// all fail with an error matching common.ErrValidation.
func Decode(raw []byte) ([models.FeatureCount]float64, error) {
	var vector [models.FeatureCount]float64

	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		return vector, fmt.Errorf("%w: malformed payload: %v", common.ErrValidation, err)
	}

	numeric := []struct {
		name  string
		value *float64
	}{
		{"feature1", req.Feature1},
		{"feature3", req.Feature3},
		{"feature4", req.Feature4},
		{"feature5", req.Feature5},
		{"feature6", req.Feature6},
		{"feature7", req.Feature7},
		{"feature8", req.Feature8},
		{"feature9", req.Feature9},
		{"feature10", req.Feature10},
		{"feature11", req.Feature11},
		{"feature12", req.Feature12},
		{"feature13", req.Feature13},
	}
	for _, f := range numeric {
		if f.value == nil {
			return vector, fmt.Errorf("%w: %s is required", common.ErrValidation, f.name)
		}
	}
	if req.Feature2 == nil {
		return vector, fmt.Errorf("%w: feature2 is required", common.ErrValidation)
	}

	sex, err := EncodeSex(*req.Feature2)
	if err != nil {
		return vector, err
	}

	vector = [models.FeatureCount]float64{
		*req.Feature1, sex, *req.Feature3, *req.Feature4,
		*req.Feature5, *req.Feature6, *req.Feature7, *req.Feature8,
		*req.Feature9, *req.Feature10, *req.Feature11, *req.Feature12,
		*req.Feature13,
	}
	return vector, nil
}

// EncodeSex maps the categorical sex field to its numeric code:
// "M"/"m" -> 1.0, "F"/"f" -> 0.0.
func EncodeSex(value string) (float64, error) {
	switch strings.ToUpper(value) {
	case "M":
		return 1.0, nil
	case "F":
		return 0.0, nil
	default:
		return 0, fmt.Errorf("%w: gender must be 'M' or 'F'", common.ErrValidation)
	}
}

// Payload renders a stored vector back into the feature1..feature13 JSON
// shape. The sex component stays in its encoded numeric form, matching
// what was persisted.
func Payload(vector [models.FeatureCount]float64) map[string]any {
	p := make(map[string]any, models.FeatureCount)
	for i, v := range vector {
		p[fmt.Sprintf("feature%d", i+1)] = v
	}
	return p
}
