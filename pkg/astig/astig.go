// Package astig provides the vector math for astigmatism measurements.
// Astigmatism axes are 180°-periodic, so all angular computations work on
// the doubled angle.
package astig

import (
	"math"
)

// MagnitudeAtAxis projects an astigmatism measurement onto a target axis.
// The measurement is a rank-2 (bidirectional) vector, so the projection
// uses the doubled angle: m * cos(2 * (target - axis)).
func MagnitudeAtAxis(magnitude, axisDeg, targetAxisDeg float64) float64 {
	if magnitude == 0 {
		return 0
	}

	angleRad := 2 * (targetAxisDeg - axisDeg) * math.Pi / 180
	return magnitude * math.Cos(angleRad)
}

// ToPositiveCylinder converts a cylinder expressed in negative notation to
// positive notation: the magnitude flips sign and the axis rotates 90°,
// wrapped back into (0, 180].
func ToPositiveCylinder(negCyl, negAxisDeg float64) (float64, float64) {
	posCyl := -negCyl
	posAxis := negAxisDeg + 90
	if posAxis > 180 {
		posAxis -= 180
	}

	return posCyl, posAxis
}

// AxisDoubleAngle returns cos(2·axis) and sin(2·axis). Models never see a
// raw degrees value, which is discontinuous at the 0°/180° wrap; the
// double-angle pair encodes the axis continuously.
func AxisDoubleAngle(axisDeg float64) (cos, sin float64) {
	rad := 2 * axisDeg * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}
