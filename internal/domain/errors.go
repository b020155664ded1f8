package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLaterality indicates a laterality string other than OD/OS.
var ErrInvalidLaterality = errors.New(`laterality must be "OD" or "OS"`)

// MissingFieldsError reports request fields absent from the input JSON.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: [%s]", strings.Join(e.Fields, ", "))
}

// MissingFeatureError indicates a model configuration requesting a feature
// the builder never produces. This is a deployment error, not a
// per-request condition: the prediction must abort rather than substitute
// a default value.
type MissingFeatureError struct {
	Model   string
	Feature string
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("model %s: feature %q not present in feature vector", e.Model, e.Feature)
}
