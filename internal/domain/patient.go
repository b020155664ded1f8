package domain

import (
	"encoding/json"
	"fmt"
)

// PatientRecord holds the raw per-eye astigmatism measurements for one
// prediction. Axis values are degrees on a half-circle (180°-periodic).
type PatientRecord struct {
	Age                      int     `json:"age"`
	Laterality               string  `json:"laterality"` // "OD" or "OS"
	ManifestCylinder         float64 `json:"manifest_cylinder"`
	ManifestAxis             float64 `json:"manifest_axis"`
	BarrettKMagnitude        float64 `json:"barrett_k_magnitude"`
	BarrettKAxis             float64 `json:"barrett_k_axis"`
	DeltaKIOL700Magnitude    float64 `json:"delta_k_iol700_magnitude"`
	DeltaKIOL700Axis         float64 `json:"delta_k_iol700_axis"`
	DeltaTKIOL700Magnitude   float64 `json:"delta_tk_iol700_magnitude"`
	DeltaTKIOL700Axis        float64 `json:"delta_tk_iol700_axis"`
	PostAstigIOL700Magnitude float64 `json:"post_astig_iol700_magnitude"`
	PostAstigIOL700Axis      float64 `json:"post_astig_iol700_axis"`
	PentacamDeltaKMagnitude  float64 `json:"pentacam_delta_k_magnitude"`
	PentacamDeltaKAxis       float64 `json:"pentacam_delta_k_axis"`
	AxialLength              float64 `json:"axial_length"`
}

// RequiredFields lists every JSON field a prediction request must carry.
var RequiredFields = []string{
	"age", "laterality", "manifest_cylinder", "manifest_axis",
	"barrett_k_magnitude", "barrett_k_axis",
	"delta_k_iol700_magnitude", "delta_k_iol700_axis",
	"delta_tk_iol700_magnitude", "delta_tk_iol700_axis",
	"post_astig_iol700_magnitude", "post_astig_iol700_axis",
	"pentacam_delta_k_magnitude", "pentacam_delta_k_axis",
	"axial_length",
}

// ParsePatientRecord decodes a request body into a PatientRecord and
// verifies that all required fields are present. A zero-valued field and
// an absent field are different things clinically, so presence is checked
// on the raw JSON keys before decoding.
func ParsePatientRecord(data []byte) (PatientRecord, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return PatientRecord{}, fmt.Errorf("patient: invalid JSON: %w", err)
	}

	var missing []string
	for _, field := range RequiredFields {
		if _, ok := raw[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return PatientRecord{}, &MissingFieldsError{Fields: missing}
	}

	var patient PatientRecord
	if err := json.Unmarshal(data, &patient); err != nil {
		return PatientRecord{}, fmt.Errorf("patient: decode failed: %w", err)
	}

	return patient, nil
}
