package domain

import "fmt"

// ArcuateType is the closed set of recommendation categories. Keeping it
// a tagged enum forces an exhaustive switch at the decision router, so a
// retrained classifier emitting an unexpected class code surfaces as an
// error instead of a silently mishandled category.
type ArcuateType int

const (
	ArcuateNone ArcuateType = iota
	ArcuateSingle
	ArcuatePaired
)

// ArcuateTypeFromCode maps a classifier class code to its category.
func ArcuateTypeFromCode(code int) (ArcuateType, error) {
	switch code {
	case 0:
		return ArcuateNone, nil
	case 1:
		return ArcuateSingle, nil
	case 2:
		return ArcuatePaired, nil
	default:
		return ArcuateNone, fmt.Errorf("unknown arcuate class code %d", code)
	}
}

func (t ArcuateType) String() string {
	switch t {
	case ArcuateSingle:
		return "Single"
	case ArcuatePaired:
		return "Paired"
	default:
		return "None"
	}
}

// Code returns the numeric class code (0/1/2) for the category.
func (t ArcuateType) Code() int {
	return int(t)
}

// PredictionResult is the structured outcome of one prediction. Length
// and axis are present iff the category is not None.
type PredictionResult struct {
	ArcuateType    string   `json:"arcuate_type"`
	ArcuateCode    int      `json:"arcuate_code"`
	LRILength      *float64 `json:"lri_length"` // degrees of arc
	LRIAxis        *int     `json:"lri_axis"`   // degrees, truncated BIK axis
	NumArcuates    int      `json:"num_arcuates"`
	Recommendation string   `json:"recommendation"`
}

// FeatureVector maps canonical feature names to their computed values.
// Built once per prediction and read-only afterwards.
type FeatureVector map[string]float64

// Canonical feature names. These strings come from the training
// pipeline's model configuration and must match it byte for byte.
const (
	FeatureAge               = "Age"
	FeatureLaterality        = "Laterality"
	FeatureBarrettKMagnitude = "Barrett Integrated-K magnitude (D)"
	FeatureBIKAxisCos        = "BIK_axis_cos"
	FeatureBIKAxisSin        = "BIK_axis_sin"
	FeatureDeltaTKAtBIK      = "deltaTK_IOL700_cyl_atBIKaxis"
	FeatureManifestCylAtBIK  = "Manifest_cyl_at_BIKaxis"
	FeatureDeltaKAtBIK       = "deltaK_IOL700_cyl_atBIKaxis"
	FeaturePostAstigAtBIK    = "PostAstig_IOL700_cyl_atBIKaxis"
	FeaturePentacamAtBIK     = "Pentacam_cyl_atBIKaxis"
	FeatureAxialLength       = "Axial length (mm)"
)

// FeatureNames returns every canonical feature name the Feature Builder
// produces. Model configurations are validated against this set at
// startup.
func FeatureNames() []string {
	return []string{
		FeatureAge,
		FeatureLaterality,
		FeatureBarrettKMagnitude,
		FeatureBIKAxisCos,
		FeatureBIKAxisSin,
		FeatureDeltaTKAtBIK,
		FeatureManifestCylAtBIK,
		FeatureDeltaKAtBIK,
		FeaturePostAstigAtBIK,
		FeaturePentacamAtBIK,
		FeatureAxialLength,
	}
}
