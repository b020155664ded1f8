package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/lripredict/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, predictor *service.Predictor, logger zerolog.Logger) {
	handler := NewHandler(predictor, logger)

	// Health check and API documentation
	app.Get("/health_warring", handler.HealthCheck)
	app.Get("/api/info_warring", handler.APIInfo)

	// Prediction endpoints
	app.Post("/predict_warring", handler.Predict)
	app.Post("/predict_warring/single", handler.PredictSingle)
	app.Post("/predict_warring/paired", handler.PredictPaired)
}
