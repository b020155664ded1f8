package service

import (
	"fmt"
	"strings"

	"github.com/lripredict/backend/internal/domain"
	"github.com/lripredict/backend/pkg/astig"
)

// BuildFeatures assembles the model feature vector for one patient.
//
// The Barrett Integrated-K axis is the projection target: the manifest
// cylinder and the three tomography/keratometry deltas are all expressed
// as their magnitude at that one axis, so a downstream model can compare
// and combine them directly. The BIK axis itself is encoded as cos/sin of
// the doubled angle.
func BuildFeatures(patient domain.PatientRecord) (domain.FeatureVector, error) {
	lateralityCode, err := encodeLaterality(patient.Laterality)
	if err != nil {
		return nil, err
	}

	bikAxis := patient.BarrettKAxis
	bikCos, bikSin := astig.AxisDoubleAngle(bikAxis)

	// Manifest refraction arrives in negative-cylinder notation from most
	// phoropters; convert only when the sign says so.
	posCyl := patient.ManifestCylinder
	posAxis := patient.ManifestAxis
	if patient.ManifestCylinder < 0 {
		posCyl, posAxis = astig.ToPositiveCylinder(patient.ManifestCylinder, patient.ManifestAxis)
	}
	manifestAtBIK := astig.MagnitudeAtAxis(posCyl, posAxis, bikAxis)

	deltaKAtBIK := astig.MagnitudeAtAxis(patient.DeltaKIOL700Magnitude, patient.DeltaKIOL700Axis, bikAxis)
	deltaTKAtBIK := astig.MagnitudeAtAxis(patient.DeltaTKIOL700Magnitude, patient.DeltaTKIOL700Axis, bikAxis)
	postAstigAtBIK := astig.MagnitudeAtAxis(patient.PostAstigIOL700Magnitude, patient.PostAstigIOL700Axis, bikAxis)
	pentacamAtBIK := astig.MagnitudeAtAxis(patient.PentacamDeltaKMagnitude, patient.PentacamDeltaKAxis, bikAxis)

	return domain.FeatureVector{
		domain.FeatureAge:               float64(patient.Age),
		domain.FeatureLaterality:        lateralityCode,
		domain.FeatureBarrettKMagnitude: patient.BarrettKMagnitude,
		domain.FeatureBIKAxisCos:        bikCos,
		domain.FeatureBIKAxisSin:        bikSin,
		domain.FeatureDeltaTKAtBIK:      deltaTKAtBIK,
		domain.FeatureManifestCylAtBIK:  manifestAtBIK,
		domain.FeatureDeltaKAtBIK:       deltaKAtBIK,
		domain.FeaturePostAstigAtBIK:    postAstigAtBIK,
		domain.FeaturePentacamAtBIK:     pentacamAtBIK,
		domain.FeatureAxialLength:       patient.AxialLength,
	}, nil
}

// encodeLaterality maps OD to 0 and OS to 1, case-insensitively.
func encodeLaterality(laterality string) (float64, error) {
	switch strings.ToUpper(laterality) {
	case "OD":
		return 0, nil
	case "OS":
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: got %q", domain.ErrInvalidLaterality, laterality)
	}
}
