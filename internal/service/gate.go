package service

import (
	"github.com/lripredict/backend/internal/domain"
)

// Clinically authored minimum magnitudes per astigmatism orientation.
// The cosine cutoffs are deliberately asymmetric (0.5 vs -0.55) and the
// thresholds differ per orientation; these literals come from surgeon
// judgment, not from a formula, and must not be regularized.
const (
	atrCosineCutoff = 0.5   // cos(2·axis) above this: against-the-rule
	wtrCosineCutoff = -0.55 // cos(2·axis) below this: with-the-rule

	atrMinMagnitude     = 0.1 // diopters
	wtrMinMagnitude     = 0.3
	obliqueMinMagnitude = 0.2
)

// ApplyThresholdGate short-circuits the pipeline to a terminal "no
// arcuates" result when the primary (Barrett Integrated-K) astigmatism is
// strictly below the clinical minimum for its orientation. A magnitude
// exactly at the threshold proceeds to the classifier. Returns nil when
// the pipeline should continue.
func ApplyThresholdGate(primaryMagnitude, axisCos float64) *domain.PredictionResult {
	switch {
	case axisCos > atrCosineCutoff:
		if primaryMagnitude < atrMinMagnitude {
			res := noneResult("No arcuates recommended (ATR astigmatism below threshold)")
			return &res
		}
	case axisCos < wtrCosineCutoff:
		if primaryMagnitude < wtrMinMagnitude {
			res := noneResult("No arcuates recommended (WTR astigmatism below threshold)")
			return &res
		}
	default:
		if primaryMagnitude < obliqueMinMagnitude {
			res := noneResult("No arcuates recommended (oblique astigmatism below threshold)")
			return &res
		}
	}

	return nil
}

// noneResult builds the terminal no-incision result.
func noneResult(recommendation string) domain.PredictionResult {
	return domain.PredictionResult{
		ArcuateType:    domain.ArcuateNone.String(),
		ArcuateCode:    domain.ArcuateNone.Code(),
		LRILength:      nil,
		LRIAxis:        nil,
		NumArcuates:    0,
		Recommendation: recommendation,
	}
}
