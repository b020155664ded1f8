package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lripredict/backend/internal/domain"
	"github.com/lripredict/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	predictor *service.Predictor
	logger    zerolog.Logger
}

// NewHandler creates a new handler
func NewHandler(predictor *service.Predictor, logger zerolog.Logger) *Handler {
	return &Handler{
		predictor: predictor,
		logger:    logger.With().Str("component", "http").Logger(),
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"message": "LRI Prediction API is running",
	})
}

// Predict handles auto-select mode: the classifier decides the arcuate
// type, then the matching length regressor runs.
func (h *Handler) Predict(c *fiber.Ctx) error {
	return h.predict(c, h.predictor.Predict)
}

// PredictSingle handles forced-single mode (classifier skipped).
func (h *Handler) PredictSingle(c *fiber.Ctx) error {
	return h.predict(c, h.predictor.PredictSingle)
}

// PredictPaired handles forced-paired mode (classifier skipped).
func (h *Handler) PredictPaired(c *fiber.Ctx) error {
	return h.predict(c, h.predictor.PredictPaired)
}

// predict parses and validates the patient payload, runs the given
// pipeline entry point, and writes the result. Missing fields and other
// malformed input map to 400; pipeline failures map to 500. The result
// body is the prediction itself, not an envelope, so the API layer stays
// a pure pass-through.
func (h *Handler) predict(c *fiber.Ctx, run func(context.Context, domain.PatientRecord) (domain.PredictionResult, error)) error {
	body := c.Body()
	if len(body) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "No JSON data provided")
	}

	patient, err := domain.ParsePatientRecord(body)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := run(c.Context(), patient)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLaterality) {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Str("path", c.Path()).Msg("prediction failed")
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(result)
}

// APIInfo returns API information and the expected input format.
func (h *Handler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    "LRI Prediction API",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"POST /predict_warring":        "Auto-select mode (classifier decides, then length model)",
			"POST /predict_warring/single": "Single arcuate mode (length model only)",
			"POST /predict_warring/paired": "Paired arcuates mode (length model only)",
			"GET /health_warring":          "Health check",
			"GET /api/info_warring":        "This endpoint",
		},
		"input_fields": fiber.Map{
			"age":                         "Patient age (integer)",
			"laterality":                  "OD or OS",
			"manifest_cylinder":           "Manifest cylinder in negative notation (e.g., -1.50)",
			"manifest_axis":               "Manifest axis in degrees (1-180)",
			"barrett_k_magnitude":         "Barrett Integrated-K magnitude in diopters",
			"barrett_k_axis":              "Barrett Integrated-K axis in degrees (1-180)",
			"delta_k_iol700_magnitude":    "ΔK IOL 700 magnitude in diopters",
			"delta_k_iol700_axis":         "ΔK IOL 700 axis in degrees",
			"delta_tk_iol700_magnitude":   "ΔTK IOL 700 magnitude in diopters",
			"delta_tk_iol700_axis":        "ΔTK IOL 700 axis in degrees",
			"post_astig_iol700_magnitude": "Posterior astigmatism IOL 700 magnitude in diopters",
			"post_astig_iol700_axis":      "Posterior astigmatism IOL 700 axis in degrees",
			"pentacam_delta_k_magnitude":  "ΔK Pentacam magnitude in diopters",
			"pentacam_delta_k_axis":       "ΔK Pentacam axis in degrees",
			"axial_length":                "Axial length in mm",
		},
	})
}

// errorJSON writes the error payload shape the frontend expects.
func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
