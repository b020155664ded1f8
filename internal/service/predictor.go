package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lripredict/backend/internal/domain"
	"github.com/lripredict/backend/internal/model"
	"github.com/lripredict/backend/pkg/utils"
)

// Predictor is the inference engine. It is constructed once at startup
// with a validated model registry and is immutable afterwards, so a
// single instance safely serves all concurrent requests.
type Predictor struct {
	registry *model.Registry
	logger   zerolog.Logger
}

// NewPredictor creates the inference engine.
func NewPredictor(registry *model.Registry, logger zerolog.Logger) *Predictor {
	return &Predictor{
		registry: registry,
		logger:   logger.With().Str("component", "predictor").Logger(),
	}
}

// Predict runs the full auto-select pipeline: build features, apply the
// clinical threshold gate, classify the arcuate type, then predict the
// length with the matching regressor.
//
// The gate sees the raw Barrett K magnitude from the input, not a
// projected value.
func (p *Predictor) Predict(ctx context.Context, patient domain.PatientRecord) (domain.PredictionResult, error) {
	features, err := BuildFeatures(patient)
	if err != nil {
		return domain.PredictionResult{}, err
	}

	if res := ApplyThresholdGate(patient.BarrettKMagnitude, features[domain.FeatureBIKAxisCos]); res != nil {
		p.logger.Debug().
			Float64("barrett_k_magnitude", patient.BarrettKMagnitude).
			Float64("bik_axis_cos", features[domain.FeatureBIKAxisCos]).
			Msg("threshold gate fired, no arcuates")
		return *res, nil
	}

	score, err := p.registry.Score(ctx, model.RoleClassifier, features)
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("classifier model: %w", err)
	}

	arcuateType, err := domain.ArcuateTypeFromCode(int(score))
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("classifier model: %w", err)
	}

	switch arcuateType {
	case domain.ArcuateNone:
		return noneResult("No arcuates recommended"), nil
	case domain.ArcuateSingle:
		return p.lengthResult(ctx, model.RoleSingleLength, domain.ArcuateSingle, patient, features)
	case domain.ArcuatePaired:
		return p.lengthResult(ctx, model.RolePairedLength, domain.ArcuatePaired, patient, features)
	default:
		return domain.PredictionResult{}, fmt.Errorf("unhandled arcuate type %v", arcuateType)
	}
}

// PredictSingle skips the gate and the classifier and predicts a single
// arcuate directly. Used when the surgeon has already chosen single.
func (p *Predictor) PredictSingle(ctx context.Context, patient domain.PatientRecord) (domain.PredictionResult, error) {
	features, err := BuildFeatures(patient)
	if err != nil {
		return domain.PredictionResult{}, err
	}
	return p.lengthResult(ctx, model.RoleSingleLength, domain.ArcuateSingle, patient, features)
}

// PredictPaired skips the gate and the classifier and predicts paired
// arcuates directly.
func (p *Predictor) PredictPaired(ctx context.Context, patient domain.PatientRecord) (domain.PredictionResult, error) {
	features, err := BuildFeatures(patient)
	if err != nil {
		return domain.PredictionResult{}, err
	}
	return p.lengthResult(ctx, model.RolePairedLength, domain.ArcuatePaired, patient, features)
}

// lengthResult invokes a length regressor and assembles the final result.
// The incision axis is the Barrett Integrated-K axis truncated to whole
// degrees; length is rounded to one decimal.
func (p *Predictor) lengthResult(ctx context.Context, role model.Role, arcuateType domain.ArcuateType, patient domain.PatientRecord, features domain.FeatureVector) (domain.PredictionResult, error) {
	raw, err := p.registry.Score(ctx, role, features)
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("%s model: %w", role, err)
	}

	length := utils.RoundTo(raw, 1)
	axis := int(patient.BarrettKAxis)

	count := 1
	recommendation := fmt.Sprintf("Single arcuate: %.1f° length at %d° axis", length, axis)
	if arcuateType == domain.ArcuatePaired {
		count = 2
		recommendation = fmt.Sprintf("Paired arcuates: %.1f° length each at %d° axis", length, axis)
	}

	return domain.PredictionResult{
		ArcuateType:    arcuateType.String(),
		ArcuateCode:    arcuateType.Code(),
		LRILength:      &length,
		LRIAxis:        &axis,
		NumArcuates:    count,
		Recommendation: recommendation,
	}, nil
}
