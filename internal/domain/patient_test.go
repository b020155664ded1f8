package domain

import (
	"errors"
	"strings"
	"testing"
)

const fullBody = `{
	"age": 68,
	"laterality": "OD",
	"manifest_cylinder": -1.50,
	"manifest_axis": 180,
	"barrett_k_magnitude": 1.25,
	"barrett_k_axis": 85,
	"delta_k_iol700_magnitude": 0.45,
	"delta_k_iol700_axis": 88,
	"delta_tk_iol700_magnitude": 0.52,
	"delta_tk_iol700_axis": 92,
	"post_astig_iol700_magnitude": 0.38,
	"post_astig_iol700_axis": 95,
	"pentacam_delta_k_magnitude": 0.41,
	"pentacam_delta_k_axis": 87,
	"axial_length": 23.5
}`

func TestParsePatientRecord(t *testing.T) {
	patient, err := ParsePatientRecord([]byte(fullBody))
	if err != nil {
		t.Fatalf("ParsePatientRecord failed: %v", err)
	}

	if patient.Age != 68 {
		t.Errorf("Age = %d, want 68", patient.Age)
	}
	if patient.Laterality != "OD" {
		t.Errorf("Laterality = %q, want OD", patient.Laterality)
	}
	if patient.ManifestCylinder != -1.50 {
		t.Errorf("ManifestCylinder = %v, want -1.50", patient.ManifestCylinder)
	}
	if patient.BarrettKAxis != 85 {
		t.Errorf("BarrettKAxis = %v, want 85", patient.BarrettKAxis)
	}
	if patient.AxialLength != 23.5 {
		t.Errorf("AxialLength = %v, want 23.5", patient.AxialLength)
	}
}

func TestParsePatientRecordMissingFields(t *testing.T) {
	_, err := ParsePatientRecord([]byte(`{"age": 68, "laterality": "OD"}`))
	if err == nil {
		t.Fatal("expected error for missing fields")
	}

	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %T: %v", err, err)
	}
	if len(missing.Fields) != 13 {
		t.Errorf("expected 13 missing fields, got %d: %v", len(missing.Fields), missing.Fields)
	}
	if !strings.Contains(err.Error(), "axial_length") {
		t.Errorf("error should name the missing fields, got %q", err.Error())
	}
}

func TestParsePatientRecordInvalidJSON(t *testing.T) {
	if _, err := ParsePatientRecord([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParsePatientRecordZeroValuedFieldIsPresent(t *testing.T) {
	body := strings.Replace(fullBody, `"barrett_k_magnitude": 1.25`, `"barrett_k_magnitude": 0`, 1)
	patient, err := ParsePatientRecord([]byte(body))
	if err != nil {
		t.Fatalf("zero-valued field must count as present: %v", err)
	}
	if patient.BarrettKMagnitude != 0 {
		t.Errorf("BarrettKMagnitude = %v, want 0", patient.BarrettKMagnitude)
	}
}

func TestArcuateTypeFromCode(t *testing.T) {
	for code, want := range map[int]ArcuateType{0: ArcuateNone, 1: ArcuateSingle, 2: ArcuatePaired} {
		got, err := ArcuateTypeFromCode(code)
		if err != nil {
			t.Fatalf("ArcuateTypeFromCode(%d) failed: %v", code, err)
		}
		if got != want {
			t.Errorf("ArcuateTypeFromCode(%d) = %v, want %v", code, got, want)
		}
		if got.Code() != code {
			t.Errorf("Code() = %d, want %d", got.Code(), code)
		}
	}

	if _, err := ArcuateTypeFromCode(3); err == nil {
		t.Error("expected error for class code 3")
	}
	if _, err := ArcuateTypeFromCode(-1); err == nil {
		t.Error("expected error for class code -1")
	}
}

func TestArcuateTypeString(t *testing.T) {
	if ArcuateNone.String() != "None" || ArcuateSingle.String() != "Single" || ArcuatePaired.String() != "Paired" {
		t.Errorf("unexpected category names: %s/%s/%s", ArcuateNone, ArcuateSingle, ArcuatePaired)
	}
}

func TestFeatureNamesComplete(t *testing.T) {
	names := FeatureNames()
	if len(names) != 11 {
		t.Fatalf("expected 11 canonical features, got %d", len(names))
	}

	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate feature name %q", n)
		}
		seen[n] = true
	}
}
